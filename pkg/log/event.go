package log

import "time"

// Tool identifies which runner produced an event.
type Tool uint8

const (
	// ToolValidate is the schema validation runner.
	ToolValidate Tool = 0
	// ToolManifest is the manifest builder.
	ToolManifest Tool = 1
	// ToolVerify is the manifest verifier.
	ToolVerify Tool = 2
)

// String returns the tool name.
func (t Tool) String() string {
	switch t {
	case ToolValidate:
		return "validate"
	case ToolManifest:
		return "manifest"
	case ToolVerify:
		return "verify"
	default:
		return "unknown"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryFile is a per-file outcome.
	CategoryFile Category = 0
	// CategorySummary closes a run.
	CategorySummary Category = 1
	// CategoryIntegrity is a manifest/file divergence found by verify.
	CategoryIntegrity Category = 2
	// CategoryError is a run-level failure.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryFile:
		return "file"
	case CategorySummary:
		return "summary"
	case CategoryIntegrity:
		return "integrity"
	case CategoryError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one record in a run log.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID uniquely identifies the tool invocation (UUID).
	RunID string `cbor:"2,keyasint"`

	// Tool that produced the event.
	Tool Tool `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// Path is the device file or manifest path, when the event concerns one.
	Path string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	File      *FileEvent      `cbor:"10,keyasint,omitempty"`
	Summary   *SummaryEvent   `cbor:"11,keyasint,omitempty"`
	Integrity *IntegrityEvent `cbor:"12,keyasint,omitempty"`
	Error     *ErrorEventData `cbor:"13,keyasint,omitempty"`
}

// FileEvent is the outcome of validating or indexing one file.
type FileEvent struct {
	Valid    bool `cbor:"1,keyasint"`
	Errors   int  `cbor:"2,keyasint,omitempty"`
	Warnings int  `cbor:"3,keyasint,omitempty"`
	Fixed    bool `cbor:"4,keyasint,omitempty"`
}

// SummaryEvent aggregates a finished run.
type SummaryEvent struct {
	Files    int  `cbor:"1,keyasint"`
	Errors   int  `cbor:"2,keyasint,omitempty"`
	Warnings int  `cbor:"3,keyasint,omitempty"`
	Fixed    int  `cbor:"4,keyasint,omitempty"`
	Passed   bool `cbor:"5,keyasint"`
}

// IntegrityEvent is one divergence reported by the verifier.
type IntegrityEvent struct {
	Code    string `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint,omitempty"`
}

// ErrorEventData carries a run-level failure.
type ErrorEventData struct {
	Message string `cbor:"1,keyasint"`
}

// NewFileEvent creates a per-file outcome event.
func NewFileEvent(runID string, tool Tool, path string, valid bool, errors, warnings int, fixed bool) Event {
	return Event{
		Timestamp: time.Now(),
		RunID:     runID,
		Tool:      tool,
		Category:  CategoryFile,
		Path:      path,
		File: &FileEvent{
			Valid:    valid,
			Errors:   errors,
			Warnings: warnings,
			Fixed:    fixed,
		},
	}
}

// NewSummaryEvent creates a run summary event.
func NewSummaryEvent(runID string, tool Tool, files, errors, warnings, fixed int, passed bool) Event {
	return Event{
		Timestamp: time.Now(),
		RunID:     runID,
		Tool:      tool,
		Category:  CategorySummary,
		Summary: &SummaryEvent{
			Files:    files,
			Errors:   errors,
			Warnings: warnings,
			Fixed:    fixed,
			Passed:   passed,
		},
	}
}

// NewIntegrityEvent creates a verifier divergence event.
func NewIntegrityEvent(runID, path, code, message string) Event {
	return Event{
		Timestamp: time.Now(),
		RunID:     runID,
		Tool:      ToolVerify,
		Category:  CategoryIntegrity,
		Path:      path,
		Integrity: &IntegrityEvent{Code: code, Message: message},
	}
}

// NewErrorEvent creates a run-level failure event.
func NewErrorEvent(runID string, tool Tool, path, message string) Event {
	return Event{
		Timestamp: time.Now(),
		RunID:     runID,
		Tool:      tool,
		Category:  CategoryError,
		Path:      path,
		Error:     &ErrorEventData{Message: message},
	}
}
