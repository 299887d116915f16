package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	playerCmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	playerCmd.AddCommand(newPlayerGuestCmd())
	playerCmd.AddCommand(newPlayerRegisterCmd())
	playerCmd.AddCommand(newPlayerLoginCmd())
	playerCmd.AddCommand(newPlayerMeCmd())

	return playerCmd
}

func newPlayerGuestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guest <display-name>",
		Short: "Create a guest player and save the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AuthResult
			body := map[string]string{"display_name": args[0]}
			if err := client.Post("/api/v1/players/guest", body, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newPlayerRegisterCmd() *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Register a new player account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := displayName
			if name == "" {
				name = args[0]
			}

			var result AuthResult
			body := map[string]string{
				"username":     args[0],
				"password":     args[1],
				"display_name": name,
			}
			if err := client.Post("/api/v1/players/register", body, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name (defaults to username)")

	return cmd
}

func newPlayerLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and save the session token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AuthResult
			body := map[string]string{
				"username": args[0],
				"password": args[1],
			}
			if err := client.Post("/api/v1/players/login", body, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newPlayerMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the current player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerResult
			if err := client.Get("/api/v1/players/me", &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}
