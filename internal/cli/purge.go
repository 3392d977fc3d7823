package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/riftgate/boost/internal/store"
)

// NewPurgeCommand creates the purge maintenance command.
func NewPurgeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete grant records past their retention window",
		Long: `Delete grant records past their retention window.

Terminal and long-expired grants stay on disk for audit until their
purge deadline passes. This removes the ones whose deadline is behind
the current time.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurge(rootOpts, cmd)
		},
	}
	return cmd
}

func runPurge(opts *RootOptions, cmd *cobra.Command) error {
	s, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer s.Close()

	n, err := s.PurgeExpired(cmd.Context(), time.Now().UTC())
	if err != nil {
		return WrapExitError(ExitCommandError, "purge", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(fmt.Sprintf("Purged %d grant(s)", n))
}
