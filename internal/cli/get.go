package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/theory/jsonpath"

	"github.com/matzehuels/jsonscope/pkg/errors"
)

// getOpts holds the command-line flags for the get command.
type getOpts struct {
	source sourceOpts
	first  bool // print only the first match
}

// getCommand creates the get command for JSONPath queries against a document.
func (c *CLI) getCommand() *cobra.Command {
	var opts getOpts

	cmd := &cobra.Command{
		Use:   "get <jsonpath> [file]",
		Short: "Query a document with a JSONPath expression",
		Long: `Get evaluates a JSONPath expression (RFC 9535) against a document and
prints the matches as a JSON array, or the single match with --first.

Examples:
  jsonscope get '$.user.name' doc.json
  jsonscope get '$..items[0]' --url https://example.com/data.json
  cat doc.json | jsonscope get '$.meta' -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), args[0], args[1:], &opts)
		},
	}

	registerSourceFlags(cmd, &opts.source)
	cmd.Flags().BoolVar(&opts.first, "first", false, "print only the first match")

	return cmd
}

func runGet(ctx context.Context, expr string, args []string, opts *getOpts) error {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "invalid JSONPath %q", expr)
	}

	src, name, err := resolveSource(args, &opts.source)
	if err != nil {
		return err
	}

	var spin *Spinner
	if remoteSource(&opts.source) {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Fetching %s", name))
		spin.Start()
	}

	doc, err := src.Load(ctx)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	results := path.Select(doc)
	if len(results) == 0 {
		return errors.New(errors.ErrCodeNotFound, "no match for %q in %s", expr, name)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if opts.first {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}
