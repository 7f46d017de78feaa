package cli

import (
	"context"
	"fmt"

	"github.com/planscope/planscope/internal/cli/formatter"
	"github.com/planscope/planscope/internal/contract"
	"github.com/spf13/cobra"
)

func newCapacityCmd(app *App) *cobra.Command {
	var projects, teams, states []string
	var mode string
	var byProject bool

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show the per-day capacity table for the active scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			req := contract.CapacityRequest{Mode: mode}
			// Only selections the user explicitly passed override the
			// scenario's own filters; --teams with no value shows nothing.
			if cmd.Flags().Changed("projects") {
				req.SelectedProjects = projects
			}
			if cmd.Flags().Changed("teams") {
				req.SelectedTeams = teams
			}
			if cmd.Flags().Changed("states") {
				req.SelectedStates = states
			}

			table, err := app.Planner.Capacity(ctx, req)
			if err != nil {
				return err
			}

			if byProject {
				allProjects, err := app.Planner.Projects(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("%s", formatter.FormatProjectLoad(table, allProjects))
				return nil
			}

			allTeams, err := app.Planner.Teams(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s", formatter.FormatCapacityTable(table, allTeams))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&projects, "projects", nil, "Project ids to include (default: scenario selection)")
	cmd.Flags().StringSliceVar(&teams, "teams", nil, "Team ids to include (default: scenario selection)")
	cmd.Flags().StringSliceVar(&states, "states", nil, "Feature states to include (default: scenario selection)")
	cmd.Flags().StringVar(&mode, "mode", "", "Epic accounting mode (ignore-if-has-children|gap-fill)")
	cmd.Flags().BoolVar(&byProject, "by-project", false, "Show normalized per-project load instead of team load")

	return cmd
}
