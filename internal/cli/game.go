package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	gameCmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	gameCmd.AddCommand(newGameStartCmd())
	gameCmd.AddCommand(newGameGetCmd())
	gameCmd.AddCommand(newGamePassCmd())
	gameCmd.AddCommand(newGameTakeCmd())
	gameCmd.AddCommand(newGameScoresCmd())
	gameCmd.AddCommand(newGameAbandonCmd())

	return gameCmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start a game at a table (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameResult
			if err := client.Post(tablePath(args[0])+"/game", nil, &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Show the current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameResult
			if err := client.Get(tablePath(args[0])+"/game", &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newGamePassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass <code>",
		Short: "Pass on the active card, paying one chip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendAction(args[0], "pass")
		},
	}
}

func newGameTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <code>",
		Short: "Take the active card and the chips on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendAction(args[0], "take")
		},
	}
}

func sendAction(code, action string) error {
	var result ActionResult
	body := map[string]string{"action": action}
	if err := client.Post(tablePath(code)+"/game/action", body, &result); err != nil {
		return err
	}

	return NewOutput(cfg.Output).Print(&result)
}

func newGameScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores <code>",
		Short: "Show scores for the latest game at a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var scores []ScoreEntryResult
			if err := client.Get(tablePath(args[0])+"/game/scores", &scores); err != nil {
				return err
			}

			result := &ScoresResult{Scores: scores}
			if len(scores) > 0 {
				result.Winner = &scores[0].DisplayName
			}

			return NewOutput(cfg.Output).Print(result)
		},
	}
}

func newGameAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <code>",
		Short: "Abandon the current game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(tablePath(args[0]) + "/game"); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(fmt.Sprintf("Abandoned game at table %s", args[0]))
		},
	}
}
