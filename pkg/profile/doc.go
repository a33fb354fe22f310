// Package profile provides parsing, validation and normalization for MIDI
// device profile files.
//
// A device profile is one JSON document per effects pedal describing its
// MIDI capabilities: which message types it receives and transmits, its
// control change (CC) table, NRPN commands, and an optional program change
// configuration.
//
// # Document Format
//
//	{
//	  "implementationVersion": "1.2.0",
//	  "receives": ["PROGRAM_CHANGE", "CONTROL_CHANGE"],
//	  "transmits": [],
//	  "controlChangeCommands": [
//	    {"controlChangeNumber": 14, "name": "Mix", "valueRange": {"min": 0, "max": 127}}
//	  ],
//	  "x_pc": {"indexBase": 0, "count": 300, "bankSelect": "cc0"}
//	}
//
// Message type tokens come from a fixed vocabulary (see [ValidMessages]).
// Deprecated tokens either have a canonical replacement (NOTE_ON becomes
// NOTE_NUMBER) or must be removed outright.
//
// # Validation
//
// Validation runs independent rules over the parsed document, collecting
// errors (fatal to that file) and warnings (advisory). Rules live in the
// rules subpackage and are managed through a [RuleRegistry] so individual
// rules can be disabled or re-weighted per data set (see [RuleConfig]).
//
// # Fix Mode
//
// [Normalize] is an opt-in pure transformation toward the canonical schema:
// it renames deprecated keys, repairs deprecated message tokens, and
// reorders top-level keys into a fixed order. [FixFile] applies it to a
// file in place with deterministic serialization (2-space indent, LF, no
// BOM, trailing newline); applying it twice is byte-identical.
package profile
