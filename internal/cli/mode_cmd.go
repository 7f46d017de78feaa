package cli

import (
	"context"
	"fmt"

	"github.com/planscope/planscope/internal/domain"
	"github.com/spf13/cobra"
)

func newModeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Show or set the epic accounting mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := app.Planner.EpicMode(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(string(mode))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set MODE",
		Short: "Set the epic accounting mode (ignore-if-has-children|gap-fill)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := domain.EpicMode(args[0])
			if err := app.Planner.SetEpicMode(context.Background(), mode); err != nil {
				return err
			}
			fmt.Printf("Epic mode set to %s\n", mode)
			return nil
		},
	})

	return cmd
}
