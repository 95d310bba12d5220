package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sess := a.ctrl.Session()
		if !sess.Authenticated() {
			fmt.Println("Not logged in")
			return nil
		}
		fmt.Printf("Email: %s\n", sess.Email)
		fmt.Printf("Role:  %s\n", sess.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
