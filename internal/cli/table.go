package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTableCmd() *cobra.Command {
	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "Table management commands",
	}

	tableCmd.AddCommand(newTableCreateCmd())
	tableCmd.AddCommand(newTableGetCmd())
	tableCmd.AddCommand(newTableJoinCmd())
	tableCmd.AddCommand(newTableLeaveCmd())
	tableCmd.AddCommand(newTableTransferHostCmd())
	tableCmd.AddCommand(newTableBotCmd())

	return tableCmd
}

func newTableCreateCmd() *cobra.Command {
	var maxPlayers int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var body any
			if maxPlayers > 0 {
				body = map[string]int{"max_players": maxPlayers}
			}

			var result TableResult
			if err := client.Post("/api/v1/tables", body, &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}

	cmd.Flags().IntVar(&maxPlayers, "max-players", 0, "Maximum players at the table (3-7)")

	return cmd
}

func newTableGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Show a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TableResult
			if err := client.Get(tablePath(args[0]), &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newTableJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TableResult
			if err := client.Post(tablePath(args[0])+"/join", nil, &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newTableLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <code>",
		Short: "Leave a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(tablePath(args[0])+"/leave", nil, nil); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(fmt.Sprintf("Left table %s", strings.ToUpper(args[0])))
		},
	}
}

func newTableTransferHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer-host <code> <player-id>",
		Short: "Transfer table host to another player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TableResult
			body := map[string]string{"new_host_id": args[1]}
			if err := client.Post(tablePath(args[0])+"/transfer-host", body, &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newTableBotCmd() *cobra.Command {
	botCmd := &cobra.Command{
		Use:   "bot",
		Short: "Bot management commands",
	}

	botCmd.AddCommand(newTableBotAddCmd())
	botCmd.AddCommand(newTableBotRemoveCmd())

	return botCmd
}

func newTableBotAddCmd() *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Add a bot to a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body any
			if style != "" {
				body = map[string]string{"style": style}
			}

			var result TableResult
			if err := client.Post(tablePath(args[0])+"/bots", body, &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Bot style: easy, standard, greedy (default standard)")

	return cmd
}

func newTableBotRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <code> <player-id>",
		Short: "Remove a bot from a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(tablePath(args[0]) + "/bots/" + args[1]); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(fmt.Sprintf("Removed bot %s", args[1]))
		},
	}
}

// tablePath builds the API path for a table, normalizing the code
func tablePath(code string) string {
	return "/api/v1/tables/" + strings.ToUpper(code)
}
