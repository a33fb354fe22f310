// Package commands implements the mididev CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/log"
	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

// runLog bundles the event sink for one tool invocation.
type runLog struct {
	log.Logger
	ID    string
	close func()
}

// Close releases the underlying sink, if any.
func (r *runLog) Close() {
	if r.close != nil {
		r.close()
	}
}

// newRunLog opens the run event log. An empty path disables logging.
func newRunLog(path string) (*runLog, error) {
	id := uuid.NewString()
	if path == "" {
		return &runLog{Logger: log.NoopLogger{}, ID: id}, nil
	}
	fl, err := log.NewFileLogger(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &runLog{Logger: fl, ID: id, close: func() { fl.Close() }}, nil
}

// IssueOutput represents a validation issue in JSON output.
type IssueOutput struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func issueOutputs(issues []profile.Issue) []IssueOutput {
	out := make([]IssueOutput, 0, len(issues))
	for _, issue := range issues {
		out = append(out, IssueOutput{
			Code:       issue.Code,
			Message:    issue.Message,
			Suggestion: issue.Suggestion,
		})
	}
	return out
}

// printIssues writes the errors and warnings of one file result.
// Errors are always shown; warnings too, even for passing files.
// Verbose adds suggestions.
func printIssues(w io.Writer, result *profile.ValidationResult, verbose bool) {
	for _, issue := range result.Errors {
		fmt.Fprintf(w, "  ERROR %s: %s\n", issue.Code, issue.Message)
		if verbose && issue.Suggestion != "" {
			fmt.Fprintf(w, "    -> %s\n", issue.Suggestion)
		}
	}
	for _, issue := range result.Warnings {
		fmt.Fprintf(w, "  WARNING %s: %s\n", issue.Code, issue.Message)
		if verbose && issue.Suggestion != "" {
			fmt.Fprintf(w, "    -> %s\n", issue.Suggestion)
		}
	}
}
