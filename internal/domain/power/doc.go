/*
Package power implements the shell's power state machine.

	active --Lock--> locked --Unlock--> active
	active --Sleep--> sleeping --Wake--> active
	active --Shutdown--> shutting-down --(delay)--> boot
	active --Restart--> restarting --(delay)--> boot

Every transition persists the new state. Entering any non-active state
closes the transient surfaces; open windows are left alone. Shutdown and
Restart arm a one-shot timer that clears the session keys and reloads the
shell. The timer cannot be cancelled.
*/
package power
