package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riftgate/boost/internal/boost"
	"github.com/riftgate/boost/internal/engine"
)

// RequestOptions holds flags for the request command.
type RequestOptions struct {
	*RootOptions
	Requester string
	Target    string
	Remote    bool
	Refs      []string
}

// NewRequestCommand creates the request command.
func NewRequestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RequestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "request <beneficiary> <booster> <category>",
		Short: "Request a boost from another actor",
		Long: `Request a boost from another actor.

Creates a pending grant that the booster must accept before it takes
effect. At most one live grant may exist per beneficiary.

Example:
  boost request bryn wilmet crafting
  boost request bryn garrick travel --target emberfall`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(opts, args[0], args[1], args[2], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Requester, "requester", "", "actor issuing the request (default: the beneficiary)")
	cmd.Flags().StringVar(&opts.Target, "target", "", "target village for effects that need one")
	cmd.Flags().BoolVar(&opts.Remote, "remote", false, "allow booster and beneficiary in different villages")
	cmd.Flags().StringSliceVar(&opts.Refs, "ref", nil, "presentation reference to attach (repeatable)")

	return cmd
}

func runRequest(opts *RequestOptions, beneficiary, booster, rawCategory string, cmd *cobra.Command) error {
	category, ok := boost.ParseCategory(rawCategory)
	if !ok {
		return WrapExitError(ExitCommandError, fmt.Sprintf("unknown category %q", rawCategory), nil)
	}
	if opts.Requester == "" {
		opts.Requester = beneficiary
	}

	eng, s, err := openEngine(opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "setup failed", err)
	}
	defer s.Close()

	in := engine.RequestInput{
		Beneficiary:      beneficiary,
		Booster:          booster,
		Category:         category,
		Requester:        opts.Requester,
		AllowRemote:      opts.Remote,
		PresentationRefs: opts.Refs,
	}
	if opts.Target != "" {
		in.Context = map[string]string{boost.TargetVillageKey: opts.Target}
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	r, err := eng.Request(cmd.Context(), in)
	if err != nil {
		if boost.IsDomain(err) {
			return out.DomainError(err)
		}
		return WrapExitError(ExitCommandError, "request failed", err)
	}

	if err := out.Success(r); err != nil {
		return err
	}
	if opts.Format == "text" {
		fmt.Fprintf(cmd.OutOrStdout(), "Accept with: boost accept %s --as %s\n", r.ID, booster)
	}
	return nil
}
