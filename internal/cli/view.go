package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/statestore"
)

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	source  sourceOpts
	stateID string // saved collapse state to start from
	depth   int    // collapse containers at or below this depth (-1 disables)
	theme   string // theme file overriding the config directory theme
	name    string // name for the state saved from the viewer
}

// viewCommand creates the view command, the interactive tree explorer.
func (c *CLI) viewCommand() *cobra.Command {
	opts := viewOpts{depth: -1}

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Explore a document interactively",
		Long: `View opens a document in an interactive tree explorer. Containers
collapse and expand with enter, enter on a value selects it (its path is
printed on exit), digits collapse everything below a depth, and "s" saves the
current collapse state for later use with render --state.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), args, &opts)
		},
	}

	registerSourceFlags(cmd, &opts.source)
	cmd.Flags().StringVar(&opts.stateID, "state", "", "start from a saved collapse state")
	cmd.Flags().IntVar(&opts.depth, "depth", opts.depth, "collapse containers at or below this depth")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme file (defaults to the config directory theme)")
	cmd.Flags().StringVar(&opts.name, "name", "", "name for states saved from the viewer")

	return cmd
}

func runView(ctx context.Context, args []string, opts *viewOpts) error {
	src, name, err := resolveSource(args, &opts.source)
	if err != nil {
		return err
	}

	var spin *Spinner
	if remoteSource(&opts.source) {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Fetching %s", name))
		spin.Start()
	}
	tree, err := loadTree(ctx, src, name)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	state, err := initialState(ctx, tree, opts.stateID, opts.depth)
	if err != nil {
		return err
	}

	palette, err := loadPalette(opts.theme)
	if err != nil {
		return err
	}

	model := NewTreeModel(tree, state, palette)
	program := tea.NewProgram(model, tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		return err
	}

	result, ok := final.(TreeModel)
	if !ok {
		return nil
	}

	if p := result.SelectedPath(); p != "" {
		printKeyValue("selected", p)
		printNextStep("Render it highlighted", fmt.Sprintf("jsonscope render %s --highlight '%s'", name, p))
	}

	if result.SaveRequested == nil {
		return nil
	}

	stateName := opts.name
	if stateName == "" {
		stateName = name
	}
	rec := statestore.NewRecord(stateName, *result.SaveRequested)
	store, err := newStateStore()
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Set(ctx, rec); err != nil {
		return err
	}

	printSuccess("Saved state %s", rec.ID)
	printDetail("%d collapsed path(s)", len(rec.Paths))
	printNextStep("Apply it", fmt.Sprintf("jsonscope render %s --state %s", name, rec.ID))
	return nil
}
