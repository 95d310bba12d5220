package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
)

var (
	loginPassword string
	loginRole     string
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate against the service and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		email := args[0]
		password := loginPassword
		if password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimSpace(line)
		}

		sess, err := a.ctrl.Login(cmd.Context(), email, password, coffrefort.Role(loginRole))
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", sess.Email, sess.Role)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginRole, "role", "user", "role to request (user or admin)")
	rootCmd.AddCommand(loginCmd)
}
