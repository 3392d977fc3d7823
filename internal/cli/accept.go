package cli

import (
	"github.com/spf13/cobra"

	"github.com/riftgate/boost/internal/boost"
)

// AcceptOptions holds flags for the accept command.
type AcceptOptions struct {
	*RootOptions
	As string
}

// NewAcceptCommand creates the accept command.
func NewAcceptCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AcceptOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "accept <grant-id>",
		Short: "Accept a pending boost request",
		Long: `Accept a pending boost request.

Only the named booster may accept. Acceptance activates the grant,
snapshots the effect, and starts the boost window.

Example:
  boost accept req-1a2b3c4d --as wilmet`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccept(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "", "actor accepting the request (required)")
	cmd.MarkFlagRequired("as")

	return cmd
}

func runAccept(opts *AcceptOptions, id string, cmd *cobra.Command) error {
	eng, s, err := openEngine(opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "setup failed", err)
	}
	defer s.Close()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	r, err := eng.Accept(cmd.Context(), id, opts.As)
	if err != nil {
		if boost.IsDomain(err) {
			return out.DomainError(err)
		}
		return WrapExitError(ExitCommandError, "accept failed", err)
	}

	return out.Success(r)
}
