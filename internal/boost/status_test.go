package boost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_PendingEdges(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusAccepted))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusPending, StatusExpired))

	// pending never fulfills directly
	assert.False(t, CanTransition(StatusPending, StatusFulfilled))
}

func TestCanTransition_AcceptedEdges(t *testing.T) {
	assert.True(t, CanTransition(StatusAccepted, StatusFulfilled))
	assert.True(t, CanTransition(StatusAccepted, StatusCancelled))
	assert.True(t, CanTransition(StatusAccepted, StatusExpired))

	// no edge re-enters pending
	assert.False(t, CanTransition(StatusAccepted, StatusPending))
}

func TestCanTransition_TerminalStatesHaveNoEdges(t *testing.T) {
	terminals := []Status{StatusFulfilled, StatusExpired, StatusCancelled}
	targets := []Status{StatusPending, StatusAccepted, StatusFulfilled, StatusExpired, StatusCancelled}

	for _, from := range terminals {
		for _, to := range targets {
			assert.False(t, CanTransition(from, to),
				"%s -> %s must be illegal", StatusLabel(from), StatusLabel(to))
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusAccepted.Terminal())
	assert.True(t, StatusFulfilled.Terminal())
	assert.True(t, StatusExpired.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestStatusLabel_RoundTrip(t *testing.T) {
	statuses := []Status{StatusPending, StatusAccepted, StatusFulfilled, StatusExpired, StatusCancelled}
	for _, s := range statuses {
		assert.Equal(t, s, StatusFromLabel(StatusLabel(s)))
	}
}

func TestStatusFromLabel_CaseInsensitive(t *testing.T) {
	assert.Equal(t, StatusAccepted, StatusFromLabel(" accepted "))
	assert.Equal(t, StatusUnspecified, StatusFromLabel("bogus"))
}
