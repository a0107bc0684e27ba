package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/lateguess/internal/api/response"
)

func newPostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List blog posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Post
			if err := client.Get(cmd.Context(), "/api/posts", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newPointsboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pointsboard",
		Short: "Show players ranked by points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Standing
			if err := client.Get(cmd.Context(), "/api/pointsboard", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
