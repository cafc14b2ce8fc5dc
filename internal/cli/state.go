package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/errors"
)

// stateCommand creates the state command group for managing saved collapse
// states.
func (c *CLI) stateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Manage saved collapse states",
		Long: `State manages the collapse states saved from the interactive viewer.
States are stored as JSON files in the config directory and can be applied to
any document with render --state or view --state.`,
	}

	cmd.AddCommand(stateListCommand())
	cmd.AddCommand(stateShowCommand())
	cmd.AddCommand(stateDeleteCommand())
	cmd.AddCommand(stateClearCommand())

	return cmd
}

func stateListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved collapse states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStateList(cmd.Context())
		},
	}
}

func stateShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the collapsed paths of a saved state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStateShow(cmd.Context(), args[0])
		},
	}
}

func stateDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStateDelete(cmd.Context(), args[0])
		},
	}
}

func stateClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New(errors.ErrCodeInvalidInput, "pass --yes to confirm clearing all saved states")
			}
			return runStateClear(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion of all saved states")

	return cmd
}

func runStateList(ctx context.Context) error {
	store, err := newStateStore()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		printInfo("No saved states")
		return nil
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].UpdatedAt.After(recs[j].UpdatedAt) })

	for _, rec := range recs {
		name := rec.Name
		if name == "" {
			name = StyleDim.Render("(unnamed)")
		}
		fmt.Printf("%s  %s\n", StyleHighlight.Render(rec.ID), name)
		printDetail("%d collapsed · updated %s", len(rec.Paths), rec.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runStateShow(ctx context.Context, id string) error {
	store, err := newStateStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New(errors.ErrCodeStateNotFound, "state %q not found", id)
	}

	printKeyValue("id", rec.ID)
	if rec.Name != "" {
		printKeyValue("name", rec.Name)
	}
	printKeyValue("created", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	printKeyValue("updated", rec.UpdatedAt.Format("2006-01-02 15:04:05"))
	if len(rec.Paths) == 0 {
		printInfo("No collapsed paths (fully expanded)")
		return nil
	}
	for _, p := range rec.Paths {
		printDetail("%s", p)
	}
	return nil
}

func runStateDelete(ctx context.Context, id string) error {
	store, err := newStateStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New(errors.ErrCodeStateNotFound, "state %q not found", id)
	}
	if err := store.Delete(ctx, id); err != nil {
		return err
	}
	printSuccess("Deleted state %s", id)
	return nil
}

func runStateClear(ctx context.Context) error {
	store, err := newStateStore()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if err := store.Delete(ctx, rec.ID); err != nil {
			return err
		}
	}
	printSuccess("Deleted %d state(s)", len(recs))
	return nil
}
