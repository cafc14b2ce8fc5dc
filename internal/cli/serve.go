package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/internal/server"
	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/statestore"
)

const (
	storeMemory = "memory" // in-process, lost on exit
	storeFile   = "file"   // config directory files
	storeRedis  = "redis"  // shared Redis instance
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	source    sourceOpts
	addr      string // listen address
	store     string // state backend: memory, file, redis
	redisAddr string // Redis address for --store redis
	redisDB   int    // Redis database for --store redis
	theme     string // theme file overriding the config directory theme
}

// serveCommand creates the serve command, which exposes a document over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: "localhost:8080", store: storeMemory}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a document as an explorable HTML page",
		Long: `Serve loads a document once and exposes it over HTTP: an HTML tree
page at /, the annotated tree at /api/tree, and a collapse state API under
/api/states. States live in memory by default; --store file persists them in
the config directory and --store redis shares them across instances.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args, &opts)
		},
	}

	registerSourceFlags(cmd, &opts.source)
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.store, "store", opts.store, "state backend: memory (default), file, redis")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "Redis address for --store redis")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database for --store redis")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme file (defaults to the config directory theme)")

	return cmd
}

func runServe(ctx context.Context, args []string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	src, name, err := resolveSource(args, &opts.source)
	if err != nil {
		return err
	}
	tree, err := loadTree(ctx, src, name)
	if err != nil {
		return err
	}

	palette, err := loadPalette(opts.theme)
	if err != nil {
		return err
	}

	store, err := newServeStore(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(server.Config{
		Tree:    tree,
		Store:   store,
		Palette: palette,
		Title:   name,
		Logger:  logger,
	})

	httpServer := &http.Server{
		Addr:         opts.addr,
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	logger.Infof("Serving %s on http://%s", name, opts.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// newServeStore builds the state backend selected by --store.
func newServeStore(ctx context.Context, opts *serveOpts) (statestore.Store, error) {
	switch opts.store {
	case storeMemory:
		return statestore.NewMemoryStore(), nil
	case storeFile:
		return newStateStore()
	case storeRedis:
		return statestore.NewRedisStore(ctx, statestore.RedisConfig{
			Addr: opts.redisAddr,
			DB:   opts.redisDB,
		})
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "invalid store %q (must be 'memory', 'file', or 'redis')", opts.store)
}
