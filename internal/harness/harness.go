// Package harness executes lifecycle conformance scenarios against a real
// engine backed by a fresh in-memory store.
//
// Scenarios are YAML files describing actors, a sequence of operations, and
// expectations. Each run uses a manual clock and sequenced grant ids, so the
// resulting trace is fully deterministic and can be compared against golden
// files.
package harness

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/riftgate/boost/internal/boost"
	"github.com/riftgate/boost/internal/catalog"
	"github.com/riftgate/boost/internal/engine"
	"github.com/riftgate/boost/internal/store"
	"github.com/riftgate/boost/internal/testutil"
)

// TraceEvent records the outcome of one scenario step.
type TraceEvent struct {
	Seq     int    `json:"seq"`
	Op      string `json:"op"`
	At      string `json:"at"`
	By      string `json:"by,omitempty"`
	GrantID string `json:"grant_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Effect  string `json:"effect,omitempty"`
	Error   string `json:"error,omitempty"`
	None    bool   `json:"none,omitempty"`
}

// Result holds the outcome of a scenario run.
type Result struct {
	ScenarioName string
	Passed       bool
	Failures     []string
	Trace        []TraceEvent
}

type harness struct {
	store  *store.Store
	engine *engine.Engine
	clock  *testutil.ManualClock
}

// Run executes a scenario and returns its result. Each scenario runs in a
// fresh in-memory database for isolation; a returned error means the run
// itself broke, not that an expectation failed.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	defer st.Close()

	start, err := scenario.startTime()
	if err != nil {
		return nil, err
	}

	cat := catalog.Default()
	if scenario.Catalog != "" {
		cat, err = catalog.Load(scenario.Catalog)
		if err != nil {
			return nil, err
		}
	}

	clock := testutil.NewManualClock(start)
	eng := engine.New(st, st, cat,
		engine.WithClock(clock),
		engine.WithIDs(testutil.NewSequenceIDs("req")),
		engine.WithLogger(slog.New(slog.DiscardHandler)),
	)

	h := &harness{store: st, engine: eng, clock: clock}
	ctx := context.Background()

	for _, a := range scenario.Actors {
		actor := &boost.Actor{Name: a.Name, Job: a.Job, TempJob: a.TempJob, Location: a.Location}
		if err := st.SaveActor(ctx, actor); err != nil {
			return nil, fmt.Errorf("seed actor %s: %w", a.Name, err)
		}
	}

	result := &Result{ScenarioName: scenario.Name, Passed: true}
	for i, step := range scenario.Steps {
		event, err := h.execute(ctx, i+1, &step)
		if err != nil {
			return nil, fmt.Errorf("steps[%d] %s: %w", i, step.Op, err)
		}
		result.Trace = append(result.Trace, *event)
		for _, failure := range checkExpect(i, &step, event) {
			result.Passed = false
			result.Failures = append(result.Failures, failure)
		}
	}
	return result, nil
}

// execute runs one step. Domain refusals are recorded in the trace; only
// infrastructure errors propagate.
func (h *harness) execute(ctx context.Context, seq int, step *Step) (*TraceEvent, error) {
	event := &TraceEvent{Seq: seq, Op: step.Op, At: h.clock.Now().Format(time.RFC3339)}

	switch step.Op {
	case OpAdvance:
		d, err := time.ParseDuration(step.By)
		if err != nil {
			return nil, err
		}
		h.clock.Advance(d)
		event.By = step.By
		event.At = h.clock.Now().Format(time.RFC3339)
		return event, nil

	case OpRequest:
		category, _ := boost.ParseCategory(step.Category)
		in := engine.RequestInput{
			Beneficiary: step.Beneficiary,
			Booster:     step.Booster,
			Category:    category,
			Requester:   step.Beneficiary,
			AllowRemote: step.Remote,
		}
		if step.Target != "" {
			in.Context = map[string]string{boost.TargetVillageKey: step.Target}
		}
		r, err := h.engine.Request(ctx, in)
		return h.finish(event, r, err)

	case OpAccept:
		r, err := h.engine.Accept(ctx, step.ID, step.As)
		return h.finish(event, r, err)

	case OpCancel:
		err := h.engine.Cancel(ctx, step.ID, step.As)
		if err != nil {
			return h.finish(event, nil, err)
		}
		return h.reread(ctx, event, step.ID)

	case OpConsume:
		err := h.engine.Consume(ctx, step.ID)
		if err != nil {
			return h.finish(event, nil, err)
		}
		return h.reread(ctx, event, step.ID)

	case OpRedeem:
		category, _ := boost.ParseCategory(step.Category)
		r, err := h.engine.Redeem(ctx, step.Beneficiary, category)
		return h.finish(event, r, err)

	case OpActive:
		r, err := h.engine.ActiveBoost(ctx, step.Beneficiary)
		return h.finish(event, r, err)

	case OpPending:
		r, err := h.engine.PendingBoost(ctx, step.Beneficiary)
		return h.finish(event, r, err)
	}

	return nil, fmt.Errorf("unknown op %q", step.Op)
}

// finish folds an operation outcome into the trace event.
func (h *harness) finish(event *TraceEvent, r *boost.Request, err error) (*TraceEvent, error) {
	if err != nil {
		code := boost.CodeOf(err)
		if code == "" {
			return nil, err
		}
		event.Error = string(code)
		return event, nil
	}
	if r == nil {
		event.None = true
		return event, nil
	}
	event.GrantID = r.ID
	event.Status = boost.StatusLabel(r.Status)
	if r.Effect != nil {
		event.Effect = r.Effect.Name
	}
	return event, nil
}

// reread records the stored state of a grant after a void operation.
func (h *harness) reread(ctx context.Context, event *TraceEvent, id string) (*TraceEvent, error) {
	r, err := h.store.GetGrant(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		event.None = true
		return event, nil
	}
	event.GrantID = r.ID
	event.Status = boost.StatusLabel(r.Status)
	return event, nil
}

// checkExpect evaluates a step's expectation against its trace event.
func checkExpect(index int, step *Step, event *TraceEvent) []string {
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf("steps[%d] %s: ", index, step.Op)+fmt.Sprintf(format, args...))
	}

	exp := step.Expect
	if exp == nil {
		if event.Error != "" {
			fail("unexpected refusal %s", event.Error)
		}
		return failures
	}

	if exp.Error != "" {
		if event.Error != exp.Error {
			fail("expected refusal %s, got %q", exp.Error, event.Error)
		}
		return failures
	}
	if event.Error != "" {
		fail("unexpected refusal %s", event.Error)
		return failures
	}

	if exp.None && !event.None {
		fail("expected no grant, got %s", event.GrantID)
	}
	if exp.Status != "" && event.Status != exp.Status {
		fail("expected status %s, got %s", exp.Status, event.Status)
	}
	if exp.Effect != "" && event.Effect != exp.Effect {
		fail("expected effect %s, got %q", exp.Effect, event.Effect)
	}
	return failures
}
