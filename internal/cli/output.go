package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ridwanfathin/supplier-invoice-service/internal/client"
	"github.com/ridwanfathin/supplier-invoice-service/internal/composer"
)

// Exit codes for CLI commands
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // API rejected the request or a submission failed
	ExitCommandError = 2 // Bad flags or arguments
)

// ExitError represents an error with a specific exit code
type ExitError struct {
	Code    int
	Message string
	Err     error
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

// NewExitError creates a new ExitError with the given code and message
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
}

// CLIResponse is the JSON envelope of every command result
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for JSON output
type CLIError struct {
	Kind          string   `json:"kind"`
	Message       string   `json:"message"`
	Details       []string `json:"details,omitempty"`
	OrphanItemIDs []string `json:"orphanItemIds,omitempty"`
}

// Success writes data as JSON, or calls text to render it for humans
func (f *OutputFormatter) Success(data any, text func(w io.Writer) error) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	if err := text(tw); err != nil {
		return err
	}
	return tw.Flush()
}

// Failure reports err in the configured format and returns the ExitError
// the command should exit with.
func (f *OutputFormatter) Failure(message string, err error) error {
	cliErr := describe(err)

	if f.Format == "json" {
		if encErr := json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "error", Error: cliErr}); encErr != nil {
			return encErr
		}
	} else {
		w := f.ErrWriter
		if w == nil {
			w = f.Writer
		}
		for _, d := range cliErr.Details {
			fmt.Fprintf(w, "  - %s\n", d)
		}
		if len(cliErr.OrphanItemIDs) > 0 {
			fmt.Fprintln(w, "Items created before the failure were kept:")
			for _, id := range cliErr.OrphanItemIDs {
				fmt.Fprintf(w, "  - %s\n", id)
			}
		}
	}
	return WrapExitError(ExitFailure, message, err)
}

func describe(err error) *CLIError {
	out := &CLIError{Kind: "error", Message: err.Error()}

	var validation *composer.ValidationError
	if errors.As(err, &validation) {
		out.Kind = "validation"
		out.Message = "invoice draft is invalid"
		out.Details = validation.Messages
		return out
	}

	var submit *composer.SubmitError
	if errors.As(err, &submit) {
		out.OrphanItemIDs = submit.OrphanItemIDs
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		out.Kind = apiErr.Kind
		out.Message = apiErr.Message
		for _, d := range apiErr.Details {
			out.Details = append(out.Details, d.Field+": "+d.Message)
		}
	}
	return out
}
