// Package cli implements the boost command line front end.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/riftgate/boost/internal/catalog"
	"github.com/riftgate/boost/internal/engine"
	"github.com/riftgate/boost/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath      string
	CatalogPath string
	Verbose     bool
	Format      string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the boost CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "boost",
		Short: "Boost - assistance grant lifecycle",
		Long:  "Request, accept, consume and inspect time-boxed assistance grants between actors.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "boost.db", "path to the grant database")
	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "", "effect catalog file (default: built-in catalog)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewRequestCommand(opts))
	cmd.AddCommand(NewAcceptCommand(opts))
	cmd.AddCommand(NewCancelCommand(opts))
	cmd.AddCommand(NewConsumeCommand(opts))
	cmd.AddCommand(NewActiveCommand(opts))
	cmd.AddCommand(NewPendingCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewActorCommand(opts))
	cmd.AddCommand(NewPurgeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openEngine opens the store and builds an engine from the global flags.
// The caller owns closing the returned store.
func openEngine(opts *RootOptions, logSink io.Writer) (*engine.Engine, *store.Store, error) {
	s, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	cat := catalog.Default()
	if opts.CatalogPath != "" {
		cat, err = catalog.Load(opts.CatalogPath)
		if err != nil {
			s.Close()
			return nil, nil, err
		}
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logSink, &slog.HandlerOptions{Level: level}))

	eng := engine.New(s, s, cat, engine.WithLogger(logger))
	return eng, s, nil
}
