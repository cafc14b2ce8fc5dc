package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/collapse"
	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/jsontree"
	"github.com/matzehuels/jsonscope/pkg/source"
)

// sourceOpts holds the shared flags selecting where a document comes from.
// Exactly one of the positional file argument, --url, or the --mongo-* group
// may be used.
type sourceOpts struct {
	url        string // fetch the document over HTTP(S)
	format     string // input format: json (default) or yaml
	mongoURI   string // MongoDB connection string
	mongoDB    string // MongoDB database name
	mongoColl  string // MongoDB collection name
	mongoDocID string // _id of the MongoDB document
}

// registerSourceFlags adds the document source flags to cmd.
func registerSourceFlags(cmd *cobra.Command, opts *sourceOpts) {
	cmd.Flags().StringVar(&opts.url, "url", "", "fetch the document from a URL")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "input format: json (default), yaml")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection string")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "", "MongoDB database name")
	cmd.Flags().StringVar(&opts.mongoColl, "mongo-collection", "", "MongoDB collection name")
	cmd.Flags().StringVar(&opts.mongoDocID, "mongo-id", "", "MongoDB document _id")
}

// resolveSource picks the document source from the positional argument and
// flags. It returns the source plus a short display name for log output.
func resolveSource(args []string, opts *sourceOpts) (source.Source, string, error) {
	format, err := source.ParseFormat(opts.format)
	if err != nil {
		return nil, "", err
	}

	switch {
	case opts.mongoURI != "":
		if opts.mongoDB == "" || opts.mongoColl == "" || opts.mongoDocID == "" {
			return nil, "", errors.New(errors.ErrCodeInvalidInput, "--mongo-uri requires --mongo-db, --mongo-collection, and --mongo-id")
		}
		if len(args) > 0 || opts.url != "" {
			return nil, "", errors.New(errors.ErrCodeInvalidInput, "cannot combine a MongoDB source with a file or URL")
		}
		name := fmt.Sprintf("%s.%s/%s", opts.mongoDB, opts.mongoColl, opts.mongoDocID)
		return source.NewMongoSource(source.MongoConfig{
			URI:        opts.mongoURI,
			Database:   opts.mongoDB,
			Collection: opts.mongoColl,
			ID:         opts.mongoDocID,
		}), name, nil

	case opts.url != "":
		if len(args) > 0 {
			return nil, "", errors.New(errors.ErrCodeInvalidInput, "cannot combine --url with a file argument")
		}
		return source.NewURLSource(opts.url, format), opts.url, nil

	case len(args) > 0:
		name := args[0]
		if name == "-" {
			name = "stdin"
		}
		return source.NewFileSource(args[0], format), name, nil
	}

	return nil, "", errors.New(errors.ErrCodeInvalidInput, "no document given: pass a file (or - for stdin), --url, or --mongo-uri")
}

// remoteSource reports whether the source fetches over the network, which
// warrants a spinner.
func remoteSource(opts *sourceOpts) bool {
	return opts.url != "" || opts.mongoURI != ""
}

// loadTree loads the document from src and builds the annotated tree.
func loadTree(ctx context.Context, src source.Source, name string) (jsontree.Node, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := src.Load(ctx)
	if err != nil {
		return jsontree.Node{}, err
	}

	tree, err := jsontree.Parse(doc)
	if err != nil {
		return jsontree.Node{}, err
	}

	nodes, _, _ := treeStats(tree)
	prog.done(fmt.Sprintf("Loaded %s: %d nodes", name, nodes))
	return tree, nil
}

// treeStats counts the nodes and containers in a tree and reports its depth.
func treeStats(tree jsontree.Node) (nodes, containers, depth int) {
	jsontree.Walk(tree, func(n jsontree.Node, _ int) bool {
		nodes++
		if n.IsContainer() {
			containers++
		}
		return true
	})
	return nodes, containers, jsontree.Depth(tree)
}

// initialState builds the starting collapse state for a tree: a saved state
// when stateID is set, a depth cutoff when maxDepth is non-negative, and the
// fully expanded default otherwise.
func initialState(ctx context.Context, tree jsontree.Node, stateID string, maxDepth int) (collapse.State, error) {
	if stateID != "" {
		if maxDepth >= 0 {
			printWarning("--depth is ignored when --state is set")
		}
		store, err := newStateStore()
		if err != nil {
			return collapse.State{}, err
		}
		defer store.Close()

		rec, err := store.Get(ctx, stateID)
		if err != nil {
			return collapse.State{}, err
		}
		if rec == nil {
			return collapse.State{}, errors.New(errors.ErrCodeStateNotFound, "state %q not found", stateID)
		}
		return rec.State(), nil
	}
	if maxDepth >= 0 {
		return collapse.BelowDepth(tree, maxDepth), nil
	}
	return collapse.DefaultState(), nil
}
