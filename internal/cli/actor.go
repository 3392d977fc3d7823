package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riftgate/boost/internal/boost"
	"github.com/riftgate/boost/internal/store"
)

// ActorOptions holds flags for the actor set command.
type ActorOptions struct {
	*RootOptions
	Job      string
	TempJob  string
	Location string
}

// NewActorCommand creates the actor command group.
func NewActorCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actor",
		Short: "Manage actor records",
	}
	cmd.AddCommand(newActorSetCommand(rootOpts))
	cmd.AddCommand(newActorShowCommand(rootOpts))
	return cmd
}

func newActorSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ActorOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or update an actor",
		Long: `Create or update an actor.

Unset flags keep the existing value when the actor already exists.

Example:
  boost actor set wilmet --job smith --location thornwick`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActorSet(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Job, "job", "", "permanent job")
	cmd.Flags().StringVar(&opts.TempJob, "temp-job", "", "temporary job override")
	cmd.Flags().StringVar(&opts.Location, "location", "", "home village")

	return cmd
}

func newActorShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <name>",
		Short:         "Show an actor record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActorShow(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runActorSet(opts *ActorOptions, name string, cmd *cobra.Command) error {
	s, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	a, err := s.GetActor(ctx, name)
	if err != nil {
		return WrapExitError(ExitCommandError, "load actor", err)
	}
	if a == nil {
		a = &boost.Actor{Name: name}
	}

	if cmd.Flags().Changed("job") {
		a.Job = opts.Job
	}
	if cmd.Flags().Changed("temp-job") {
		a.TempJob = opts.TempJob
	}
	if cmd.Flags().Changed("location") {
		a.Location = opts.Location
	}

	if err := s.SaveActor(ctx, a); err != nil {
		return WrapExitError(ExitCommandError, "save actor", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(a)
	}
	return out.Success(fmt.Sprintf("Actor %s: job=%s location=%s", a.Name, a.EffectiveJob(), a.Location))
}

func runActorShow(opts *RootOptions, name string, cmd *cobra.Command) error {
	s, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer s.Close()

	a, err := s.GetActor(cmd.Context(), name)
	if err != nil {
		return WrapExitError(ExitCommandError, "load actor", err)
	}
	if a == nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("actor %s not found", name), nil)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(a)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Actor %s\n", a.Name)
	fmt.Fprintf(w, "  job: %s\n", a.Job)
	if a.TempJob != "" {
		fmt.Fprintf(w, "  temp job: %s\n", a.TempJob)
	}
	fmt.Fprintf(w, "  location: %s\n", a.Location)
	if a.ActiveBooster != "" {
		fmt.Fprintf(w, "  active booster: %s\n", a.ActiveBooster)
	}
	return nil
}
