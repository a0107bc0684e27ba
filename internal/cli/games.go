package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/lateguess/internal/api/response"
)

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games [id]",
		Short: "List games, or show one game with its guesses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				var result []response.Game
				if err := client.Get(cmd.Context(), "/api/games", &result); err != nil {
					return err
				}
				output(cmd).Print(result)
				return nil
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("game id must be a positive integer, got %q", args[0])
			}

			var result response.GameDetail
			if err := client.Get(cmd.Context(), fmt.Sprintf("/api/games/%d", id), &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}
