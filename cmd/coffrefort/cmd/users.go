package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts (admin)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := a.users.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No users")
			return nil
		}
		for _, u := range list {
			state := "active"
			if !u.Active {
				state = "disabled"
			}
			fmt.Printf("%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, state)
		}
		return nil
	},
}

var (
	addPassword string
	addFullName string
	addRole     string
)

var usersAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.users.Create(cmd.Context(), coffrefort.NewUser{
			Email:    args[0],
			Password: addPassword,
			FullName: addFullName,
			Role:     coffrefort.Role(addRole),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created %s (%s)\n", u.Email, u.ID)
		return nil
	},
}

var usersRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.users.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

func init() {
	usersAddCmd.Flags().StringVar(&addPassword, "password", "", "password for the new account")
	usersAddCmd.Flags().StringVar(&addFullName, "full-name", "", "full name")
	usersAddCmd.Flags().StringVar(&addRole, "role", "user", "role (user or admin)")
	usersCmd.AddCommand(usersListCmd, usersAddCmd, usersRmCmd)
	rootCmd.AddCommand(usersCmd)
}
