package cli

import (
	"github.com/planscope/planscope/internal/service"
	"github.com/spf13/cobra"
)

// App holds the service interfaces used by CLI commands.
type App struct {
	Planner service.PlannerService
}

// NewRootCmd creates the top-level "planscope" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planscope",
		Short: "Roadmap scenario planner and capacity explorer",
	}

	root.AddCommand(
		newImportCmd(app),
		newProjectCmd(app),
		newTeamCmd(app),
		newFeatureCmd(app),
		newScenarioCmd(app),
		newCapacityCmd(app),
		newModeCmd(app),
	)

	return root
}
