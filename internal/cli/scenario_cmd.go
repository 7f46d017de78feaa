package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/planscope/planscope/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// baselineRef is the name users type to address the implicit baseline.
const baselineRef = "baseline"

// resolveScenarioRef maps user input to a scenario id: the baseline keyword,
// an exact name match (case-insensitive), an exact id, or a unique id
// prefix.
func resolveScenarioRef(ctx context.Context, app *App, input string) (string, error) {
	if input == "" || strings.EqualFold(input, baselineRef) {
		return "", nil
	}

	infos, err := app.Planner.Scenarios(ctx)
	if err != nil {
		return "", err
	}

	for _, info := range infos {
		if info.ID != "" && strings.EqualFold(info.Name, input) {
			return info.ID, nil
		}
	}
	for _, info := range infos {
		if info.ID == input {
			return info.ID, nil
		}
	}

	var matches []string
	for _, info := range infos {
		if info.ID != "" && strings.HasPrefix(info.ID, input) {
			matches = append(matches, info.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("scenario not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("scenario reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newScenarioCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Manage what-if scenarios",
	}

	cmd.AddCommand(
		newScenarioListCmd(app),
		newScenarioCreateCmd(app),
		newScenarioRenameCmd(app),
		newScenarioRemoveCmd(app),
		newScenarioSwitchCmd(app),
		newScenarioSaveCmd(app),
	)

	return cmd
}

func newScenarioListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := app.Planner.Scenarios(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatScenarioList(infos))
			return nil
		},
	}
}

func newScenarioCreateCmd(app *App) *cobra.Command {
	var from, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a scenario from the baseline or another scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sourceID, err := resolveScenarioRef(ctx, app, from)
			if err != nil {
				return err
			}
			info, err := app.Planner.CreateScenario(ctx, sourceID, name)
			if err != nil {
				return err
			}
			fmt.Printf("Created scenario %q (%s)\n", info.Name, info.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", baselineRef, "Source scenario (name, id, or \"baseline\")")
	cmd.Flags().StringVar(&name, "name", "", "Scenario name (auto-generated when omitted)")

	return cmd
}

func newScenarioRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename SCENARIO NAME",
		Short: "Rename a scenario",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveScenarioRef(ctx, app, args[0])
			if err != nil {
				return err
			}
			if id == "" {
				return fmt.Errorf("the baseline cannot be renamed")
			}
			if err := app.Planner.RenameScenario(ctx, id, args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed scenario %s to %q\n", id, args[1])
			return nil
		},
	}
}

func newScenarioRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SCENARIO",
		Short: "Delete a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveScenarioRef(ctx, app, args[0])
			if err != nil {
				return err
			}
			if id == "" {
				return fmt.Errorf("the baseline cannot be deleted")
			}
			if err := app.Planner.DeleteScenario(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed scenario %s\n", id)
			return nil
		},
	}
}

func newScenarioSwitchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "switch SCENARIO",
		Short: "Activate a scenario (or \"baseline\")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveScenarioRef(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Planner.SwitchScenario(ctx, id); err != nil {
				return err
			}
			if id == "" {
				fmt.Println("Switched to baseline")
			} else {
				fmt.Printf("Switched to scenario %s\n", id)
			}
			return nil
		},
	}
}

func newScenarioSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Persist all unsaved scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := app.Planner.SaveScenarios(context.Background())
			if err != nil {
				return err
			}
			if saved == 0 {
				fmt.Println("Nothing to save.")
				return nil
			}
			fmt.Printf("Saved %d scenario(s)\n", saved)
			return nil
		},
	}
}
