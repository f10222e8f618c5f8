package cmd

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

var (
	loginUsername string
	loginPassword string

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Authenticate to the export daemon",
		Long: `Exchange credentials for a daemon session token.

The token is stored in the system keyring keyed by the daemon address, so
subsequent commands authenticate without logging in again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			username := loginUsername
			if username == "" {
				fmt.Print("Username: ")
				if _, err := fmt.Fscanln(os.Stdin, &username); err != nil {
					return err
				}
			}
			password := loginPassword
			if password == "" {
				fmt.Print("Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Println()
				if err != nil {
					return err
				}
				password = strings.TrimSpace(string(raw))
			}

			if err := client.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			if err := keyring.Set(keyringService, cfg.Daemon.BaseURL, client.Token()); err != nil {
				logger.Warn("failed to save token to keyring", "error", err)
			}
			fmt.Println("Logged in.")
			return nil
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the daemon session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Logout(cmd.Context()); err != nil {
				logger.Warn("remote logout failed, clearing local token anyway", "error", err)
			}
			if err := keyring.Delete(keyringService, cfg.Daemon.BaseURL); err != nil {
				logger.Debug("keyring delete failed", "error", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
)

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "daemon username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "daemon password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
