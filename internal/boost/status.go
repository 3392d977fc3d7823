package boost

import "strings"

// Status represents the lifecycle status of a boost request.
type Status int

const (
	// StatusUnspecified represents an invalid status.
	StatusUnspecified Status = iota
	// StatusPending indicates a request waiting for the booster to accept.
	StatusPending
	// StatusAccepted indicates an active grant with a running duration.
	StatusAccepted
	// StatusFulfilled indicates a single-use grant retired by consumption.
	StatusFulfilled
	// StatusExpired indicates a request or grant whose deadline passed.
	StatusExpired
	// StatusCancelled indicates a request withdrawn by either party.
	StatusCancelled
)

// transitions encodes the legal forward edges of the lifecycle.
// Terminal states have no outgoing edges; no edge re-enters pending.
var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusCancelled, StatusExpired},
	StatusAccepted: {StatusFulfilled, StatusCancelled, StatusExpired},
}

// Terminal reports whether the status has no outgoing transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusFulfilled, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether from → to is a legal lifecycle edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusLabel returns the string label for a status.
func StatusLabel(s Status) string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusAccepted:
		return "ACCEPTED"
	case StatusFulfilled:
		return "FULFILLED"
	case StatusExpired:
		return "EXPIRED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "UNSPECIFIED"
	}
}

// StatusFromLabel converts a status label to a Status value.
func StatusFromLabel(label string) Status {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "PENDING":
		return StatusPending
	case "ACCEPTED":
		return StatusAccepted
	case "FULFILLED":
		return StatusFulfilled
	case "EXPIRED":
		return StatusExpired
	case "CANCELLED":
		return StatusCancelled
	default:
		return StatusUnspecified
	}
}
