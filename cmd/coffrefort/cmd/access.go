package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accessCmd = &cobra.Command{
	Use:   "access",
	Short: "Check access and grant access windows (admin)",
}

var accessCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Ask the service whether access is currently allowed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		status, err := a.ctrl.Check(cmd.Context())
		if err != nil {
			return err
		}
		if status.Allowed {
			fmt.Println("Access allowed")
		} else {
			fmt.Println("Access denied")
		}
		if status.WindowStart != "" || status.WindowEnd != "" {
			fmt.Printf("Window: %s - %s\n", status.WindowStart, status.WindowEnd)
		}
		return nil
	},
}

var (
	grantFrom string
	grantTo   string
)

var accessGrantCmd = &cobra.Command{
	Use:   "grant <user-id>",
	Short: "Grant a user an access window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.windows.Grant(cmd.Context(), args[0], grantFrom, grantTo); err != nil {
			return err
		}
		fmt.Printf("Granted %s access from %s to %s\n", args[0], grantFrom, grantTo)
		return nil
	},
}

var accessShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show a user's access window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		w, err := a.windows.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Window: %s - %s\n", w.StartTime, w.EndTime)
		return nil
	},
}

func init() {
	accessGrantCmd.Flags().StringVar(&grantFrom, "from", "", "window start, HH:MM")
	accessGrantCmd.Flags().StringVar(&grantTo, "to", "", "window end, HH:MM")
	_ = accessGrantCmd.MarkFlagRequired("from")
	_ = accessGrantCmd.MarkFlagRequired("to")
	accessCmd.AddCommand(accessCheckCmd, accessGrantCmd, accessShowCmd)
	rootCmd.AddCommand(accessCmd)
}
