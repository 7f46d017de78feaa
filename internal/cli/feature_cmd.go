package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/planscope/planscope/internal/cli/formatter"
	"github.com/planscope/planscope/internal/domain"
	"github.com/planscope/planscope/internal/resolve"
	"github.com/spf13/cobra"
)

func newFeatureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feature",
		Short: "Inspect and reschedule features",
	}

	cmd.AddCommand(
		newFeatureListCmd(app),
		newFeatureShowCmd(app),
		newFeatureMoveCmd(app),
		newFeatureRevertCmd(app),
	)

	return cmd
}

func newFeatureListCmd(app *App) *cobra.Command {
	var changedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List features with the active scenario applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			features, err := app.Planner.EffectiveFeatures(context.Background())
			if err != nil {
				return err
			}
			if changedOnly {
				kept := features[:0]
				for _, f := range features {
					if f.Dirty {
						kept = append(kept, f)
					}
				}
				features = kept
			}
			if len(features) == 0 {
				fmt.Println("No features found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatFeatureList(features))
			return nil
		},
	}

	cmd.Flags().BoolVar(&changedOnly, "changed", false, "Only features the active scenario moved")

	return cmd
}

func newFeatureShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show feature details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := app.Planner.EffectiveFeature(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s", formatter.FormatFeatureDetail(f))
			return nil
		},
	}
}

func newFeatureMoveCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Override a feature's dates in the active scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := resolve.DateUpdate{ID: args[0]}
			var err error
			if update.Start, err = parseDateFlag("start", start); err != nil {
				return err
			}
			if update.End, err = parseDateFlag("end", end); err != nil {
				return err
			}
			if update.Start == nil && update.End == nil {
				return fmt.Errorf("at least one of --start or --end is required")
			}

			changed, err := app.Planner.MoveFeatures(context.Background(), []resolve.DateUpdate{update})
			if err != nil {
				return err
			}
			if len(changed) == 0 {
				fmt.Println("No changes applied.")
				return nil
			}
			fmt.Printf("Moved %d feature(s): %v\n", len(changed), changed)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")

	return cmd
}

func newFeatureRevertCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "revert ID",
		Short: "Drop the active scenario's override for a feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reverted, err := app.Planner.RevertFeature(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !reverted {
				fmt.Println("No override to revert.")
				return nil
			}
			fmt.Printf("Reverted %s to baseline dates\n", args[0])
			return nil
		},
	}
}

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: %w", name, value, err)
	}
	return domain.DatePtr(d), nil
}
