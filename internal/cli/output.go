package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/riftgate/boost/internal/boost"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Domain refusal (conflict, ineligible, wrong state, etc.)
	ExitCommandError = 2 // Command error (invalid paths, database not found, etc.)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string            `json:"code"`              // "CONFLICT", "INELIGIBLE", etc.
	Message string            `json:"message"`           // human-readable message
	Details map[string]string `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
// In text mode a *boost.Request gets a dedicated rendering; everything
// else is printed as-is.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	if r, ok := data.(*boost.Request); ok {
		writeGrantText(f.Writer, r)
		return nil
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// DomainError renders a refusal from the engine. Non-domain errors are
// returned unchanged so the caller can surface them as command errors.
func (f *OutputFormatter) DomainError(err error) error {
	var domainErr *boost.Error
	if !errors.As(err, &domainErr) {
		return err
	}

	if f.Format == "json" {
		if encErr := json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
				Details: domainErr.Details,
			},
		}); encErr != nil {
			return encErr
		}
		return &ExitError{Code: ExitFailure, Message: domainErr.Message, Err: err}
	}

	fmt.Fprintf(f.Writer, "Refused [%s]: %s\n", domainErr.Code, domainErr.Message)
	for _, k := range sortedKeys(domainErr.Details) {
		fmt.Fprintf(f.Writer, "  %s: %s\n", k, domainErr.Details[k])
	}
	return &ExitError{Code: ExitFailure, Message: domainErr.Message, Err: err}
}

func writeGrantText(w io.Writer, r *boost.Request) {
	fmt.Fprintf(w, "Grant %s [%s]\n", r.ID, boost.StatusLabel(r.Status))
	fmt.Fprintf(w, "  %s boosts %s (%s)\n", r.Booster, r.Beneficiary, r.Category)
	if r.Effect != nil {
		fmt.Fprintf(w, "  effect: %s - %s\n", r.Effect.Name, r.Effect.Description)
	}
	switch r.Status {
	case boost.StatusPending:
		fmt.Fprintf(w, "  awaiting acceptance until %s\n", r.PendingExpiresAt.Format(time.RFC3339))
	case boost.StatusAccepted:
		fmt.Fprintf(w, "  active until %s\n", r.BoostExpiresAt.Format(time.RFC3339))
	case boost.StatusFulfilled:
		fmt.Fprintf(w, "  fulfilled at %s\n", r.FulfilledAt.Format(time.RFC3339))
	}
	if len(r.Context) > 0 {
		pairs := make([]string, 0, len(r.Context))
		for _, k := range sortedKeys(r.Context) {
			pairs = append(pairs, k+"="+r.Context[k])
		}
		fmt.Fprintf(w, "  context: %s\n", strings.Join(pairs, " "))
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
