package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/io"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	source sourceOpts
	output string // output file path; empty writes to stdout
}

// parseCommand creates the parse command, which builds the annotated tree
// from a document and exports it with every node's path and kind.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Build and export the annotated tree of a document",
		Long: `Parse reads a JSON or YAML document, builds the annotated tree, and
exports it as JSON with every node's path and kind. The exported tree can be
fed back into render via --from-tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), args, &opts)
		},
	}

	registerSourceFlags(cmd, &opts.source)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults to stdout)")

	return cmd
}

func runParse(ctx context.Context, args []string, opts *parseOpts) error {
	src, name, err := resolveSource(args, &opts.source)
	if err != nil {
		return err
	}

	tree, err := loadTree(ctx, src, name)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return io.WriteJSON(tree, os.Stdout)
	}
	if err := io.ExportJSON(tree, opts.output); err != nil {
		return err
	}

	nodes, containers, depth := treeStats(tree)
	printSuccess("Parsed %s", name)
	printStats(nodes, containers, depth)
	printFile(opts.output)
	printNextStep("Render it", fmt.Sprintf("jsonscope render --from-tree %s", opts.output))
	return nil
}

// deriveOutput builds an output path from the input name and extension when
// no explicit output is given.
func deriveOutput(input, ext string) string {
	base := filepath.Base(input)
	if base == "-" || base == "stdin" {
		base = "document"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}
