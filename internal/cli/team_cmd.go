package cli

import (
	"context"
	"fmt"

	"github.com/planscope/planscope/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Inspect baseline teams",
	}

	cmd.AddCommand(newTeamListCmd(app))

	return cmd
}

func newTeamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := app.Planner.Teams(context.Background())
			if err != nil {
				return err
			}
			if len(teams) == 0 {
				fmt.Println("No teams found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTeamList(teams))
			return nil
		},
	}
}
