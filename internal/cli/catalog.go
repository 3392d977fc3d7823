package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/riftgate/boost/internal/boost"
	"github.com/riftgate/boost/internal/catalog"
)

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate effect catalogs",
	}
	cmd.AddCommand(newCatalogValidateCommand(rootOpts))
	cmd.AddCommand(newCatalogShowCommand(rootOpts))
	return cmd
}

func newCatalogValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a catalog file against the effect schema",
		Long: `Validate a catalog file against the effect schema.

Exits non-zero if the file is malformed, violates the schema, names an
unknown category, or contains duplicate (job, category) entries.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func newCatalogShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effect catalog in use",
		Long: `Show the effect catalog in use.

Honors the global --catalog flag; without it the built-in catalog is
shown.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogShow(rootOpts, cmd)
		},
	}
	return cmd
}

func runCatalogValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	cat, err := catalog.Load(path)
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("catalog %s is invalid", path), err)
	}

	return out.Success(fmt.Sprintf("Catalog %s is valid (%d entries)", path, cat.Len()))
}

// catalogEntry is the JSON shape for catalog show output.
type catalogEntry struct {
	Job            string `json:"job"`
	Category       string `json:"category"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Passive        bool   `json:"passive,omitempty"`
	RequiresTarget bool   `json:"requires_target,omitempty"`
}

func runCatalogShow(opts *RootOptions, cmd *cobra.Command) error {
	cat := catalog.Default()
	if opts.CatalogPath != "" {
		loaded, err := catalog.Load(opts.CatalogPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "load catalog", err)
		}
		cat = loaded
	}

	var entries []catalogEntry
	for _, category := range boost.Categories {
		jobs := cat.Jobs(category)
		if eff, ok := cat.ResolveExact(catalog.WildcardJob, category); ok {
			entries = append(entries, newCatalogEntry(catalog.WildcardJob, category, eff))
		}
		sort.Strings(jobs)
		for _, job := range jobs {
			eff, ok := cat.ResolveExact(job, category)
			if !ok {
				continue
			}
			entries = append(entries, newCatalogEntry(job, category, eff))
		}
	}

	if opts.Format == "json" {
		out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return out.Success(entries)
	}

	w := cmd.OutOrStdout()
	for _, e := range entries {
		marks := ""
		if e.Passive {
			marks += " [passive]"
		}
		if e.RequiresTarget {
			marks += " [requires target]"
		}
		fmt.Fprintf(w, "%-10s %-12s %s%s\n", e.Job, e.Category, e.Name, marks)
		fmt.Fprintf(w, "%-10s %-12s   %s\n", "", "", e.Description)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "Catalog is empty")
	}
	return nil
}

func newCatalogEntry(job string, category boost.Category, eff boost.Effect) catalogEntry {
	return catalogEntry{
		Job:            job,
		Category:       string(category),
		Name:           eff.Name,
		Description:    eff.Description,
		Passive:        eff.Passive,
		RequiresTarget: eff.RequiresTarget,
	}
}
