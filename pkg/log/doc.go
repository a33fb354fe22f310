// Package log records run events for the device profile tools.
//
// Every tool invocation can write an audit trail of what it did: one event
// per processed file plus a run summary, tagged with a unique run ID.
// Events are encoded as a CBOR stream with integer keys for compactness;
// use [Reader] to play a log file back, optionally filtered.
//
// Logging is opt-in and must never disrupt the tools: [FileLogger] ignores
// encoding errors, and [NoopLogger] is a valid sink when logging is off.
package log
