package main

import "github.com/GriffinCanCode/WebDesk/backend/cmd/webdesk/cmd"

func main() {
	cmd.Execute()
}
