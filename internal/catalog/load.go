package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/riftgate/boost/internal/boost"
)

//go:embed schema.cue
var schemaCUE string

// Document is the on-disk shape of a catalog file.
type Document struct {
	Effects []Entry `yaml:"effects" json:"effects"`
}

// Entry is one (job, category) → effect row in a catalog file.
type Entry struct {
	Job            string `yaml:"job" json:"job"`
	Category       string `yaml:"category" json:"category"`
	Name           string `yaml:"name" json:"name"`
	Description    string `yaml:"description" json:"description"`
	Passive        bool   `yaml:"passive,omitempty" json:"passive,omitempty"`
	RequiresTarget bool   `yaml:"requires_target,omitempty" json:"requires_target,omitempty"`
}

// Load reads a YAML catalog file, validates it against the embedded CUE
// schema, and builds a catalog from it.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse validates and builds a catalog from raw YAML bytes.
func Parse(raw []byte) (*Catalog, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return build(&doc)
}

// Validate checks a decoded catalog document against the CUE schema.
// Schema violations are returned with CUE's positional detail.
func Validate(doc *Document) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	val := ctx.Encode(doc)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode catalog document: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(val)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return fmt.Errorf("catalog schema violation: %s", cueerrors.Details(err, nil))
	}
	return nil
}

// build converts a validated document into a catalog, rejecting duplicate
// (job, category) pairs. The CUE schema has already vetted field shapes.
func build(doc *Document) (*Catalog, error) {
	c := New()
	for i, entry := range doc.Effects {
		category, ok := boost.ParseCategory(entry.Category)
		if !ok {
			return nil, fmt.Errorf("entry %d: unknown category %q", i, entry.Category)
		}
		if err := validateEntry(entry.Job, category); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, exists := c.effects[key{job: entry.Job, category: category}]; exists {
			return nil, fmt.Errorf("entry %d: duplicate effect for (%s, %s)", i, entry.Job, category)
		}
		c.Set(entry.Job, category, boost.Effect{
			Name:           entry.Name,
			Description:    entry.Description,
			Passive:        entry.Passive,
			RequiresTarget: entry.RequiresTarget,
		})
	}
	return c, nil
}
