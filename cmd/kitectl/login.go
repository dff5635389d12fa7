package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginRequestToken string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Run the interactive login flow",
	Long: `Without flags, prints the login URL to open in a browser. After the
redirect, pass the request_token from the redirect URL back in:

  kitectl login --request-token <token>

The resulting access token is printed so it can be stored in the configured
token file. Requires credentials.api_secret in the config for the exchange
step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		if loginRequestToken == "" {
			fmt.Println(client.LoginURL())
			return nil
		}

		if cfg.Credentials.APISecret == "" {
			return fmt.Errorf("credentials.api_secret is required to exchange a request token")
		}
		session, err := client.GenerateSession(cmd.Context(), loginRequestToken, cfg.Credentials.APISecret)
		if err != nil {
			return err
		}

		fmt.Printf("user:         %s (%s)\n", session.UserName, session.UserID)
		fmt.Printf("access_token: %s\n", session.AccessToken)
		if session.RefreshToken != "" {
			fmt.Printf("refresh_token: %s\n", session.RefreshToken)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidate the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}
		if err := client.InvalidateSession(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("session invalidated")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginRequestToken, "request-token", "", "request token from the login redirect")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
