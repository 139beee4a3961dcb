package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the persisted session",
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget recent items and the power state, as a sign-out does",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, done, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		if err := st.ClearSession(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the keys held by the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, done, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		keys, err := st.Keys(cmd.Context())
		if err != nil {
			return err
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionClearCmd)
	rootCmd.AddCommand(sessionCmd, keysCmd)
}
