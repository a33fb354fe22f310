package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Normalize rewrites a parsed document toward the canonical schema
// convention, in place:
//
//   - deprecated alias CC keys are renamed to the canonical key (only when
//     the canonical key is absent)
//   - receives/transmits are created as empty arrays when missing
//   - deprecated message tokens are replaced or removed, and the resulting
//     lists deduplicated preserving first-occurrence order
//   - legacy boolean bankSelect values are mapped to the enum
//   - top-level keys are reordered canonically, unrecognized keys keeping
//     their original relative order at the end
//
// Normalize is a pure document transformation; callers serialize with
// Document.Encode. Applying it twice yields the same document.
func Normalize(doc *Document) {
	for _, alias := range aliasCCKeys {
		doc.Rename(alias, KeyControlChangeCommands)
	}

	for _, key := range []string{KeyReceives, KeyTransmits} {
		if !doc.Has(key) {
			doc.Set(key, json.RawMessage("[]"))
			continue
		}
		raw, _ := doc.Get(key)
		doc.Set(key, normalizeMessageTokens(raw))
	}

	if raw, ok := doc.Get(KeyProgramChange); ok {
		doc.Set(KeyProgramChange, normalizeBankSelect(raw))
	}

	doc.Reorder(canonicalKeyOrder)
}

// normalizeMessageTokens applies the deprecated-token rules to one
// receives/transmits value. Non-array values and non-string elements pass
// through untouched for the validator to flag.
func normalizeMessageTokens(raw json.RawMessage) json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return raw
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		var tok string
		if err := json.Unmarshal(item, &tok); err != nil {
			out = append(out, item)
			continue
		}
		if IsRemovedMessage(tok) {
			continue
		}
		if repl, ok := ReplacementFor(tok); ok {
			tok = repl
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokJSON, _ := json.Marshal(tok)
		out = append(out, json.RawMessage(tokJSON))
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		return raw
	}
	return encoded
}

// normalizeBankSelect maps a legacy boolean bankSelect inside x_pc to the
// enum form: true becomes "cc0", false becomes "none". Everything else is
// left untouched.
func normalizeBankSelect(raw json.RawMessage) json.RawMessage {
	pc, err := ParseDocument(raw)
	if err != nil {
		return raw
	}
	bankRaw, ok := pc.Get("bankSelect")
	if !ok {
		return raw
	}
	var b bool
	if err := json.Unmarshal(bankRaw, &b); err != nil {
		return raw
	}
	if b {
		pc.Set("bankSelect", json.RawMessage(`"`+BankSelectCC0+`"`))
	} else {
		pc.Set("bankSelect", json.RawMessage(`"`+BankSelectNone+`"`))
	}
	encoded, err := pc.MarshalJSON()
	if err != nil {
		return raw
	}
	return encoded
}

// FixBytes parses profile data, normalizes it and serializes canonically
// (2-space indent, LF endings, UTF-8 without BOM, trailing newline).
func FixBytes(data []byte) ([]byte, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	Normalize(doc)
	return doc.Encode(), nil
}

// FixFile applies the fix transformation to a file in place.
// It reports whether the file content changed.
func FixFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read file: %w", err)
	}
	fixed, err := FixBytes(data)
	if err != nil {
		return false, err
	}
	if bytes.Equal(data, fixed) {
		return false, nil
	}
	if err := os.WriteFile(path, fixed, 0644); err != nil {
		return false, fmt.Errorf("failed to write file: %w", err)
	}
	return true, nil
}
