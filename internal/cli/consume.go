package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riftgate/boost/internal/boost"
)

// ConsumeOptions holds flags for the consume command.
type ConsumeOptions struct {
	*RootOptions
}

// NewConsumeCommand creates the consume command.
func NewConsumeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConsumeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "consume <grant-id>",
		Short: "Retire an active single-use grant",
		Long: `Retire an active single-use grant.

Consumption is idempotent: consuming a grant that already reached a
terminal state is a no-op, and losing a race to another consumer is
reported as success.

Example:
  boost consume req-1a2b3c4d`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsume(opts, args[0], cmd)
		},
	}

	return cmd
}

func runConsume(opts *ConsumeOptions, id string, cmd *cobra.Command) error {
	eng, s, err := openEngine(opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "setup failed", err)
	}
	defer s.Close()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if err := eng.Consume(cmd.Context(), id); err != nil {
		if boost.IsDomain(err) {
			return out.DomainError(err)
		}
		return WrapExitError(ExitCommandError, "consume failed", err)
	}

	return out.Success(fmt.Sprintf("Grant %s consumed", id))
}
