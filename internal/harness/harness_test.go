package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInline(t *testing.T, raw string) *Result {
	t.Helper()
	s, err := ParseScenario([]byte(raw))
	require.NoError(t, err)
	result, err := Run(s)
	require.NoError(t, err)
	return result
}

func TestRun_HappyPath(t *testing.T) {
	result := runInline(t, `
name: happy-path
description: request then accept
actors:
  - name: bryn
    job: herbalist
    location: thornwick
  - name: wilmet
    job: smith
    location: thornwick
steps:
  - op: request
    beneficiary: bryn
    booster: wilmet
    category: Crafting
    expect:
      status: PENDING
  - op: accept
    id: req-1
    as: wilmet
    expect:
      status: ACCEPTED
      effect: sure-hands
`)

	assert.True(t, result.Passed, "failures: %v", result.Failures)
	require.Len(t, result.Trace, 2)
	assert.Equal(t, "req-1", result.Trace[0].GrantID)
	assert.Equal(t, "PENDING", result.Trace[0].Status)
	assert.Equal(t, "sure-hands", result.Trace[1].Effect)
}

func TestRun_RecordsRefusalsInTrace(t *testing.T) {
	result := runInline(t, `
name: refusal
description: ineligible job is traced, not fatal
actors:
  - name: bryn
    job: herbalist
    location: thornwick
  - name: osric
    job: rogue
    location: thornwick
steps:
  - op: request
    beneficiary: bryn
    booster: osric
    category: Crafting
    expect:
      error: INELIGIBLE
`)

	assert.True(t, result.Passed, "failures: %v", result.Failures)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, "INELIGIBLE", result.Trace[0].Error)
}

func TestRun_ExpectationMismatchFails(t *testing.T) {
	result := runInline(t, `
name: mismatch
description: wrong expected status is a scenario failure
actors:
  - name: bryn
    job: herbalist
    location: thornwick
  - name: wilmet
    job: smith
    location: thornwick
steps:
  - op: request
    beneficiary: bryn
    booster: wilmet
    category: Crafting
    expect:
      status: ACCEPTED
`)

	assert.False(t, result.Passed)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "expected status ACCEPTED")
}

func TestRun_UnexpectedRefusalFailsStepWithoutExpect(t *testing.T) {
	result := runInline(t, `
name: surprise-refusal
description: a refusal on a bare step is a failure
actors:
  - name: bryn
    job: herbalist
    location: thornwick
steps:
  - op: request
    beneficiary: bryn
    booster: ghost
    category: Crafting
`)

	assert.False(t, result.Passed)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "unexpected refusal NOT_FOUND")
}

func TestRun_AdvanceDrivesExpiry(t *testing.T) {
	result := runInline(t, `
name: advance-expiry
description: clock advance lapses an unaccepted request
actors:
  - name: bryn
    job: herbalist
    location: thornwick
  - name: wilmet
    job: smith
    location: thornwick
steps:
  - op: request
    beneficiary: bryn
    booster: wilmet
    category: Crafting
  - op: advance
    by: 49h
  - op: pending
    beneficiary: bryn
    expect:
      none: true
  - op: request
    beneficiary: bryn
    booster: wilmet
    category: Crafting
    expect:
      status: PENDING
`)

	assert.True(t, result.Passed, "failures: %v", result.Failures)
	assert.Equal(t, "req-2", result.Trace[3].GrantID)
}
