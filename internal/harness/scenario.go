package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riftgate/boost/internal/boost"
)

// Scenario defines a lifecycle conformance scenario: a cast of actors, a
// sequence of operations against the engine, and per-step expectations.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden traces are stored
	// under this name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Start pins the clock's initial instant (RFC3339). Defaults to
	// 2025-06-01T12:00:00Z so golden traces stay stable.
	Start string `yaml:"start,omitempty"`

	// Catalog optionally points at a catalog file. Empty means the
	// built-in catalog.
	Catalog string `yaml:"catalog,omitempty"`

	// Actors are seeded into the store before any step runs.
	Actors []ActorSetup `yaml:"actors"`

	// Steps are executed in order against a fresh engine.
	Steps []Step `yaml:"steps"`
}

// ActorSetup seeds one actor record.
type ActorSetup struct {
	Name     string `yaml:"name"`
	Job      string `yaml:"job"`
	TempJob  string `yaml:"temp_job,omitempty"`
	Location string `yaml:"location"`
}

// Step is one operation in a scenario flow.
//
// Op selects the operation; the remaining fields feed whichever operation
// was selected. "advance" moves the manual clock and takes only By.
type Step struct {
	// Op is one of: request, accept, cancel, consume, redeem, active,
	// pending, advance.
	Op string `yaml:"op"`

	// Request fields.
	Beneficiary string `yaml:"beneficiary,omitempty"`
	Booster     string `yaml:"booster,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Target      string `yaml:"target,omitempty"`
	Remote      bool   `yaml:"remote,omitempty"`

	// ID names a grant for accept/cancel/consume. Sequence ids are
	// deterministic: the first request is req-1, the second req-2, and
	// so on.
	ID string `yaml:"id,omitempty"`

	// As is the acting actor for accept/cancel.
	As string `yaml:"as,omitempty"`

	// By is the clock advance for the advance op, e.g. "49h" or "30m".
	By string `yaml:"by,omitempty"`

	// Expect validates the step outcome. Nil means the step must simply
	// not fail.
	Expect *Expectation `yaml:"expect,omitempty"`
}

// Expectation is a subset match on a step's outcome.
type Expectation struct {
	// Status is the expected grant status label (PENDING, ACCEPTED, ...).
	Status string `yaml:"status,omitempty"`

	// Error is the expected refusal code (CONFLICT, INELIGIBLE, ...).
	// A step expecting an error fails if the operation succeeds.
	Error string `yaml:"error,omitempty"`

	// Effect is the expected snapshotted effect name.
	Effect string `yaml:"effect,omitempty"`

	// None asserts that a lookup or redeem resolved to no grant.
	None bool `yaml:"none,omitempty"`
}

// Known step operations.
const (
	OpRequest = "request"
	OpAccept  = "accept"
	OpCancel  = "cancel"
	OpConsume = "consume"
	OpRedeem  = "redeem"
	OpActive  = "active"
	OpPending = "pending"
	OpAdvance = "advance"
)

// DefaultStart is the clock instant scenarios begin at unless they pin
// their own.
var DefaultStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos fail loudly instead of silently relaxing a check.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// startTime resolves the scenario's initial clock instant.
func (s *Scenario) startTime() (time.Time, error) {
	if s.Start == "" {
		return DefaultStart, nil
	}
	t, err := time.Parse(time.RFC3339, s.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time: %w", err)
	}
	return t.UTC(), nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if _, err := s.startTime(); err != nil {
		return err
	}

	for i, a := range s.Actors {
		if a.Name == "" || a.Job == "" || a.Location == "" {
			return fmt.Errorf("actors[%d]: name, job and location are required", i)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step *Step) error {
	switch step.Op {
	case OpRequest:
		if step.Beneficiary == "" || step.Booster == "" || step.Category == "" {
			return fmt.Errorf("steps[%d]: request needs beneficiary, booster and category", index)
		}
		if _, ok := boost.ParseCategory(step.Category); !ok {
			return fmt.Errorf("steps[%d]: unknown category %q", index, step.Category)
		}
	case OpAccept, OpCancel:
		if step.ID == "" || step.As == "" {
			return fmt.Errorf("steps[%d]: %s needs id and as", index, step.Op)
		}
	case OpConsume:
		if step.ID == "" {
			return fmt.Errorf("steps[%d]: consume needs id", index)
		}
	case OpRedeem:
		if step.Beneficiary == "" || step.Category == "" {
			return fmt.Errorf("steps[%d]: redeem needs beneficiary and category", index)
		}
		if _, ok := boost.ParseCategory(step.Category); !ok {
			return fmt.Errorf("steps[%d]: unknown category %q", index, step.Category)
		}
	case OpActive, OpPending:
		if step.Beneficiary == "" {
			return fmt.Errorf("steps[%d]: %s needs beneficiary", index, step.Op)
		}
	case OpAdvance:
		if step.By == "" {
			return fmt.Errorf("steps[%d]: advance needs by", index)
		}
		if _, err := time.ParseDuration(step.By); err != nil {
			return fmt.Errorf("steps[%d]: invalid duration %q", index, step.By)
		}
		if step.Expect != nil {
			return fmt.Errorf("steps[%d]: advance takes no expect clause", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}
	return nil
}
