package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riftgate/boost/internal/boost"
)

// CancelOptions holds flags for the cancel command.
type CancelOptions struct {
	*RootOptions
	As string
}

// NewCancelCommand creates the cancel command.
func NewCancelCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CancelOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cancel <grant-id>",
		Short: "Cancel a pending or active grant",
		Long: `Cancel a pending or active grant.

Only the beneficiary or the booster of the grant may cancel it.

Example:
  boost cancel req-1a2b3c4d --as bryn`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCancel(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "", "actor cancelling the grant (required)")
	cmd.MarkFlagRequired("as")

	return cmd
}

func runCancel(opts *CancelOptions, id string, cmd *cobra.Command) error {
	eng, s, err := openEngine(opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "setup failed", err)
	}
	defer s.Close()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if err := eng.Cancel(cmd.Context(), id, opts.As); err != nil {
		if boost.IsDomain(err) {
			return out.DomainError(err)
		}
		return WrapExitError(ExitCommandError, "cancel failed", err)
	}

	return out.Success(fmt.Sprintf("Grant %s cancelled", id))
}
