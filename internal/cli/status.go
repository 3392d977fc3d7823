package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riftgate/boost/internal/boost"
)

// NewActiveCommand creates the active command.
func NewActiveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "active <beneficiary>",
		Short: "Show the beneficiary's active boost, if any",
		Long: `Show the beneficiary's active boost, if any.

Looking up an actor also reconciles their cached booster reference and
persists any expiry observed along the way.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(rootOpts, args[0], cmd, true)
		},
	}
	return cmd
}

// NewPendingCommand creates the pending command.
func NewPendingCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pending <beneficiary>",
		Short:         "Show the beneficiary's pending boost request, if any",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(rootOpts, args[0], cmd, false)
		},
	}
	return cmd
}

func runLookup(opts *RootOptions, beneficiary string, cmd *cobra.Command, active bool) error {
	eng, s, err := openEngine(opts, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "setup failed", err)
	}
	defer s.Close()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	var r *boost.Request
	if active {
		r, err = eng.ActiveBoost(cmd.Context(), beneficiary)
	} else {
		r, err = eng.PendingBoost(cmd.Context(), beneficiary)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "lookup failed", err)
	}

	if r == nil {
		kind := "active"
		if !active {
			kind = "pending"
		}
		return out.Success(fmt.Sprintf("No %s boost for %s", kind, beneficiary))
	}
	return out.Success(r)
}
