package boost

import (
	"errors"
	"fmt"
	"time"
)

// Error represents a domain error from the lifecycle engine or the
// eligibility validator.
//
// Domain errors are terminal for the calling operation and represent
// user-correctable conditions, not transient failures. They carry enough
// structured context (category, competing booster, remaining time) for a
// front end to explain why the operation failed and what to do next.
//
// Store I/O failures are ordinary wrapped errors, never *Error; callers
// distinguish the two with errors.As.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// RequestID identifies the affected request, when one exists.
	RequestID string

	// Beneficiary and Booster identify the actors involved.
	Beneficiary string
	Booster     string

	// Category is the grant category involved, when relevant.
	Category Category

	// Details contains additional context, e.g. remaining time on conflicts.
	Details map[string]string
}

// ErrorCode categorizes domain errors.
type ErrorCode string

const (
	// ErrCodeConflict indicates an unexpired pending or accepted grant
	// already exists for the beneficiary.
	ErrCodeConflict ErrorCode = "CONFLICT"

	// ErrCodeIneligible indicates the booster's effective job lacks the perk
	// for the requested category.
	ErrCodeIneligible ErrorCode = "INELIGIBLE"

	// ErrCodePassiveEffect indicates the resolved effect applies
	// automatically and cannot be manually granted.
	ErrCodePassiveEffect ErrorCode = "PASSIVE_EFFECT"

	// ErrCodeNotFound indicates an unknown request id.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeWrongState indicates the operation is invalid for the record's
	// current status.
	ErrCodeWrongState ErrorCode = "WRONG_STATE"

	// ErrCodeAlreadyExpired indicates the request's acceptance window closed.
	ErrCodeAlreadyExpired ErrorCode = "ALREADY_EXPIRED"

	// ErrCodeAlreadyTerminal indicates the record reached a terminal status.
	ErrCodeAlreadyTerminal ErrorCode = "ALREADY_TERMINAL"

	// ErrCodeBoosterMismatch indicates the accepting actor is not the
	// record's booster.
	ErrCodeBoosterMismatch ErrorCode = "BOOSTER_MISMATCH"

	// ErrCodeUnauthorized indicates the actor is neither beneficiary nor
	// booster of the record.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s: %s (request=%s)", e.Code, e.Message, e.RequestID)
	}
	if e.Beneficiary != "" {
		return fmt.Sprintf("%s: %s (beneficiary=%s)", e.Code, e.Message, e.Beneficiary)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsDomain reports whether err is a domain error (as opposed to store I/O).
func IsDomain(err error) bool {
	var de *Error
	return errors.As(err, &de)
}

// CodeOf returns the domain error code, or "" for non-domain errors.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsConflict reports whether err is a single-active-grant conflict.
func IsConflict(err error) bool { return CodeOf(err) == ErrCodeConflict }

// IsNotFound reports whether err is an unknown-request error.
func IsNotFound(err error) bool { return CodeOf(err) == ErrCodeNotFound }

// IsAlreadyExpired reports whether err is an expired-window error.
func IsAlreadyExpired(err error) bool { return CodeOf(err) == ErrCodeAlreadyExpired }

// IsUnauthorized reports whether err is an authorization error.
func IsUnauthorized(err error) bool { return CodeOf(err) == ErrCodeUnauthorized }

// NewConflictError creates a domain error for the single-active-grant
// invariant, surfacing the competing record so the caller can cancel or wait.
func NewConflictError(competing *Request, now time.Time) *Error {
	details := map[string]string{
		"competing_request": competing.ID,
		"competing_status":  StatusLabel(competing.Status),
	}
	if deadline := competing.Deadline(); !deadline.IsZero() {
		details["remaining"] = deadline.Sub(now).Round(time.Second).String()
	}
	return &Error{
		Code:        ErrCodeConflict,
		Message:     "an active boost already exists for this beneficiary",
		RequestID:   competing.ID,
		Beneficiary: competing.Beneficiary,
		Booster:     competing.Booster,
		Category:    competing.Category,
		Details:     details,
	}
}

// NewIneligibleError creates a domain error for a job/category mismatch.
func NewIneligibleError(booster, job string, category Category) *Error {
	return &Error{
		Code:     ErrCodeIneligible,
		Message:  fmt.Sprintf("job %q cannot provide %s boosts", job, category),
		Booster:  booster,
		Category: category,
		Details:  map[string]string{"job": job},
	}
}

// NewPassiveEffectError creates a domain error for a passive effect.
func NewPassiveEffectError(effect Effect, category Category) *Error {
	return &Error{
		Code:     ErrCodePassiveEffect,
		Message:  fmt.Sprintf("effect %q applies automatically and cannot be granted", effect.Name),
		Category: category,
		Details:  map[string]string{"effect": effect.Name},
	}
}

// NewNotFoundError creates a domain error for an unknown request id.
func NewNotFoundError(id string) *Error {
	return &Error{
		Code:      ErrCodeNotFound,
		Message:   "no boost request with this id",
		RequestID: id,
	}
}

// NewWrongStateError creates a domain error for an illegal operation on the
// record's current status.
func NewWrongStateError(r *Request, op string) *Error {
	return &Error{
		Code:      ErrCodeWrongState,
		Message:   fmt.Sprintf("cannot %s a %s request", op, StatusLabel(r.Status)),
		RequestID: r.ID,
		Category:  r.Category,
		Details:   map[string]string{"status": StatusLabel(r.Status)},
	}
}

// NewAlreadyExpiredError creates a domain error for a closed acceptance
// window.
func NewAlreadyExpiredError(r *Request, now time.Time) *Error {
	return &Error{
		Code:      ErrCodeAlreadyExpired,
		Message:   "the request expired before it was accepted",
		RequestID: r.ID,
		Category:  r.Category,
		Details: map[string]string{
			"expired_ago": now.Sub(r.PendingExpiresAt).Round(time.Second).String(),
		},
	}
}

// NewAlreadyTerminalError creates a domain error for a record past the point
// of cancellation.
func NewAlreadyTerminalError(r *Request) *Error {
	return &Error{
		Code:      ErrCodeAlreadyTerminal,
		Message:   fmt.Sprintf("request is already %s", StatusLabel(r.Status)),
		RequestID: r.ID,
		Category:  r.Category,
		Details:   map[string]string{"status": StatusLabel(r.Status)},
	}
}

// NewBoosterMismatchError creates a domain error for an accept attempt by the
// wrong actor.
func NewBoosterMismatchError(r *Request, actor string) *Error {
	return &Error{
		Code:      ErrCodeBoosterMismatch,
		Message:   fmt.Sprintf("only %s can accept this request", r.Booster),
		RequestID: r.ID,
		Booster:   r.Booster,
		Category:  r.Category,
		Details:   map[string]string{"actor": actor},
	}
}

// NewUnauthorizedError creates a domain error for a cancel attempt by an
// unrelated actor.
func NewUnauthorizedError(r *Request, actor string) *Error {
	return &Error{
		Code:        ErrCodeUnauthorized,
		Message:     "only the beneficiary or booster can cancel this request",
		RequestID:   r.ID,
		Beneficiary: r.Beneficiary,
		Booster:     r.Booster,
		Details:     map[string]string{"actor": actor},
	}
}
