package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/io"
	"github.com/matzehuels/jsonscope/pkg/jsontree"
	"github.com/matzehuels/jsonscope/pkg/render/html"
	"github.com/matzehuels/jsonscope/pkg/render/text"
	"github.com/matzehuels/jsonscope/pkg/source"
)

const (
	outputText = "text" // styled terminal output
	outputHTML = "html" // standalone HTML page
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	source   sourceOpts
	fromTree string // load a previously exported tree instead of a raw document
	to       string // output format: text or html
	output   string // output file path; empty writes to stdout
	stateID   string // saved collapse state to apply
	depth     int    // collapse containers at or below this depth (-1 disables)
	highlight string // path of a node to emphasize in text output
	theme     string // theme file overriding the config directory theme
}

// renderCommand creates the render command for non-interactive tree output.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{depth: -1}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document as a styled tree",
		Long: `Render prints a document as a tree with collapsed containers shown as
stubs. Output is styled terminal text by default, or a standalone HTML page
with --to html. A saved collapse state can be applied with --state, containers
below a depth can be collapsed with --depth, and a single node can be
emphasized with --highlight.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.to != outputText && opts.to != outputHTML {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid output %q (must be 'text' or 'html')", opts.to)
			}
			return runRender(cmd.Context(), args, &opts)
		},
	}

	registerSourceFlags(cmd, &opts.source)
	cmd.Flags().StringVar(&opts.fromTree, "from-tree", "", "load an exported tree file instead of a raw document")
	cmd.Flags().StringVar(&opts.to, "to", outputText, "output format: text (default), html")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults to stdout)")
	cmd.Flags().StringVar(&opts.stateID, "state", "", "apply a saved collapse state by id")
	cmd.Flags().IntVar(&opts.depth, "depth", opts.depth, "collapse containers at or below this depth")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "emphasize the node at this path (text output)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme file (defaults to the config directory theme)")

	return cmd
}

func runRender(ctx context.Context, args []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	var tree jsontree.Node
	var name string
	var err error

	if opts.fromTree != "" {
		if len(args) > 0 {
			return errors.New(errors.ErrCodeInvalidInput, "cannot combine --from-tree with a file argument")
		}
		name = opts.fromTree
		tree, err = io.ImportJSON(opts.fromTree)
		if err != nil {
			return err
		}
		logger.Debugf("Imported tree from %s", name)
	} else {
		var src source.Source
		src, name, err = resolveSource(args, &opts.source)
		if err != nil {
			return err
		}
		tree, err = loadTree(ctx, src, name)
		if err != nil {
			return err
		}
	}

	state, err := initialState(ctx, tree, opts.stateID, opts.depth)
	if err != nil {
		return err
	}

	palette, err := loadPalette(opts.theme)
	if err != nil {
		return err
	}

	var out string
	switch opts.to {
	case outputHTML:
		out = html.Document(tree, state, html.Options{Palette: palette, Title: name})
	default:
		out = text.Render(tree, state, text.Options{Palette: palette, Highlight: opts.highlight})
	}

	if opts.output == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	printSuccess("Rendered %s", name)
	printFile(opts.output)
	return nil
}
