package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/roach88/airq/internal/chat"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Query failed or the answer is an error reply
	ExitCommandError = 2 // Command error (bad flags, unreadable config, etc.)
)

// ExitError represents an error with a specific exit code.
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

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
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
	Status    string    `json:"status"` // "ok" or "error"
	Data      any       `json:"data,omitempty"`
	Error     *CLIError `json:"error,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"` // reply kind, e.g. "not_found"
	Message string `json:"message"`
}

// Reply prints a chat reply. Error replies are reported through the
// returned ExitError so the process exits non-zero.
func (f *OutputFormatter) Reply(r chat.Reply) error {
	if f.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: r, RequestID: r.RequestID}
		if r.Kind == chat.KindError {
			resp = CLIResponse{
				Status:    "error",
				Error:     &CLIError{Code: string(r.Kind), Message: r.Text},
				RequestID: r.RequestID,
			}
		}
		if err := json.NewEncoder(f.Writer).Encode(resp); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(f.Writer, r.Text)
	}

	if r.Kind == chat.KindError {
		return NewExitError(ExitFailure, "query failed")
	}
	return nil
}

// Success outputs an arbitrary payload in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Table renders rows as a text table. In JSON mode the rows are
// emitted as data instead.
func (f *OutputFormatter) Table(header []string, rows [][]string) error {
	if f.Format == "json" {
		return f.Success(rows)
	}
	t := tablewriter.NewWriter(f.Writer)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.AppendBulk(rows)
	t.Render()
	return nil
}
