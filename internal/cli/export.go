package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/render/dot"
)

const (
	formatDOT = "dot" // Graphviz source
	formatSVG = "svg" // rendered SVG
	formatPNG = "png" // rendered PNG
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	source   sourceOpts
	to       string // diagram format: dot, svg, png
	output   string // output file path; empty derives from the input name
	maxLabel int    // truncate scalar labels longer than this
}

// exportCommand creates the export command for Graphviz diagrams.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{to: formatSVG}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a document as a Graphviz diagram",
		Long: `Export converts the annotated tree into a Graphviz diagram. Every node
becomes a box labeled with its accessor; edges run from containers to their
children. Supported formats are dot (Graphviz source), svg, and png.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.to != formatDOT && opts.to != formatSVG && opts.to != formatPNG {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be 'dot', 'svg', or 'png')", opts.to)
			}
			return runExport(cmd.Context(), args, &opts)
		},
	}

	registerSourceFlags(cmd, &opts.source)
	cmd.Flags().StringVar(&opts.to, "to", opts.to, "diagram format: svg (default), dot, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults to the input name)")
	cmd.Flags().IntVar(&opts.maxLabel, "max-label", 0, "truncate scalar labels longer than this many characters")

	return cmd
}

func runExport(ctx context.Context, args []string, opts *exportOpts) error {
	logger := loggerFromContext(ctx)

	src, name, err := resolveSource(args, &opts.source)
	if err != nil {
		return err
	}
	tree, err := loadTree(ctx, src, name)
	if err != nil {
		return err
	}

	graph := dot.ToDOT(tree, dot.Options{MaxLabel: opts.maxLabel})
	logger.Debugf("Generated DOT: %d bytes", len(graph))

	var data []byte
	switch opts.to {
	case formatDOT:
		data = []byte(graph)
	case formatSVG:
		logger.Info("Rendering SVG")
		data, err = dot.RenderSVG(ctx, graph)
	case formatPNG:
		logger.Info("Rendering PNG")
		data, err = dot.RenderPNG(ctx, graph)
	}
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = deriveOutput(name, "."+opts.to)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}

	printSuccess("Exported %s", name)
	printFile(output)
	return nil
}
