package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a dataset from a JSON file, replacing the current baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Planner.ImportDataSet(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d projects, %d teams, %d features\n",
				result.ProjectCount, result.TeamCount, result.FeatureCount)
			return nil
		},
	}
}
