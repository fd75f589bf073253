package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the current contest",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var resetForgetCookie bool

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetForgetCookie, "forget-cookie", false, "Also delete the saved session cookie")
}

func runReset(cmd *cobra.Command, args []string) error {
	a, _, err := resume()
	if err != nil {
		return err
	}
	if err := a.controller.Reset(); err != nil {
		return err
	}
	if resetForgetCookie {
		if err := a.identities.ForgetCredential(); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Contest reset.")
	return nil
}
