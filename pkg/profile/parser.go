package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Parser decodes device profile documents into their typed view.
type Parser struct{}

// NewParser creates a new profile parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses a device profile from the filesystem.
func (p *Parser) ParseFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	prof, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	prof.SourceFile = path
	return prof, nil
}

// Parse parses a device profile from a reader.
func (p *Parser) Parse(r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseBytes parses a device profile from a byte slice.
// Only malformed JSON fails; schema problems are recorded on the returned
// Profile for the validation rules to report.
func (p *Parser) ParseBytes(data []byte) (*Profile, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc), nil
}

// ParseFile parses a device profile file with a default parser.
func ParseFile(path string) (*Profile, error) {
	return NewParser().ParseFile(path)
}

// ParseBytes parses device profile data with a default parser.
func ParseBytes(data []byte) (*Profile, error) {
	return NewParser().ParseBytes(data)
}

// FromDocument builds the typed profile view over an ordered document.
func FromDocument(doc *Document) *Profile {
	prof := &Profile{Doc: doc}

	if raw, ok := doc.Get(KeyImplementationVersion); ok {
		prof.HasImplementationVersion = true
		prof.ImplementationVersion = scalarString(raw)
	}

	prof.Receives = decodeMessageList(doc, KeyReceives)
	prof.Transmits = decodeMessageList(doc, KeyTransmits)

	prof.CCKeyUsed = ccKeyIn(doc)
	if prof.CCKeyUsed != "" {
		raw, _ := doc.Get(prof.CCKeyUsed)
		prof.CC, prof.CCIsArray = decodeCCTable(raw)
	}

	if raw, ok := doc.Get(KeyNRPNCommands); ok {
		prof.HasNRPN = true
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil {
			prof.NRPNCount = len(items)
		}
	}

	if raw, ok := doc.Get(KeyProgramChange); ok {
		prof.PC = decodeProgramChange(raw)
	}

	return prof
}

// ccKeyIn returns the key carrying the control change table. The canonical
// key wins over aliases; the first alias in declaration order wins otherwise.
func ccKeyIn(doc *Document) string {
	if doc.Has(KeyControlChangeCommands) {
		return KeyControlChangeCommands
	}
	for _, alias := range aliasCCKeys {
		if doc.Has(alias) {
			return alias
		}
	}
	return ""
}

// scalarString renders a JSON scalar as a string: strings are unquoted,
// anything else is kept verbatim (numbers in particular).
func scalarString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func decodeMessageList(doc *Document, key string) MessageList {
	raw, ok := doc.Get(key)
	if !ok {
		return MessageList{}
	}
	list := MessageList{Present: true}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return list
	}
	list.IsArray = true
	for _, item := range items {
		var tok string
		if err := json.Unmarshal(item, &tok); err != nil {
			list.NonStringCount++
			continue
		}
		list.Tokens = append(list.Tokens, tok)
	}
	return list
}

func decodeCCTable(raw json.RawMessage) ([]CCEntry, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	entries := make([]CCEntry, 0, len(items))
	for i, item := range items {
		entries = append(entries, decodeCCEntry(i, item))
	}
	return entries, true
}

func decodeCCEntry(index int, raw json.RawMessage) CCEntry {
	entry := CCEntry{Index: index}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return entry
	}
	entry.IsObject = true

	if numRaw, ok := fields["controlChangeNumber"]; ok {
		entry.HasNumber = true
		var num json.Number
		if err := json.Unmarshal(numRaw, &num); err == nil {
			if n, err := num.Int64(); err == nil {
				entry.NumberIsInt = true
				entry.Number = n
			}
		}
	}

	if nameRaw, ok := fields["name"]; ok {
		var name string
		if err := json.Unmarshal(nameRaw, &name); err == nil {
			entry.HasName = true
			entry.Name = name
		}
	}

	if rangeRaw, ok := fields["valueRange"]; ok {
		entry.Range = decodeValueRange(rangeRaw)
	}

	return entry
}

func decodeValueRange(raw json.RawMessage) *ValueRange {
	vr := &ValueRange{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return vr
	}
	vr.IsObject = true

	if minRaw, ok := fields["min"]; ok {
		vr.HasMin = true
		var f float64
		if err := json.Unmarshal(minRaw, &f); err == nil {
			vr.MinOK = true
			vr.Min = f
		}
	}
	if maxRaw, ok := fields["max"]; ok {
		vr.HasMax = true
		var f float64
		if err := json.Unmarshal(maxRaw, &f); err == nil {
			vr.MaxOK = true
			vr.Max = f
		}
	}
	if discRaw, ok := fields["discreteValues"]; ok {
		vr.HasDiscrete = true
		var items []json.RawMessage
		if err := json.Unmarshal(discRaw, &items); err == nil {
			vr.DiscreteIsArray = true
		}
	}

	return vr
}

func decodeProgramChange(raw json.RawMessage) *ProgramChange {
	pc := &ProgramChange{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return pc
	}
	pc.IsObject = true

	if baseRaw, ok := fields["indexBase"]; ok {
		pc.HasIndexBase = true
		var num json.Number
		if err := json.Unmarshal(baseRaw, &num); err == nil {
			if n, err := num.Int64(); err == nil {
				pc.IndexBaseIsInt = true
				pc.IndexBase = n
			}
		}
	}

	if countRaw, ok := fields["count"]; ok {
		pc.HasCount = true
		var num json.Number
		if err := json.Unmarshal(countRaw, &num); err == nil {
			if n, err := num.Int64(); err == nil {
				pc.CountIsInt = true
				pc.Count = n
			}
		}
	}

	if namesRaw, ok := fields["names"]; ok {
		pc.HasNames = true
		var items []json.RawMessage
		if err := json.Unmarshal(namesRaw, &items); err == nil {
			pc.NamesIsArray = true
			pc.NamesCount = len(items)
		}
	}

	if bankRaw, ok := fields["bankSelect"]; ok {
		pc.HasBankSelect = true
		var s string
		if err := json.Unmarshal(bankRaw, &s); err == nil {
			pc.BankSelectIsString = true
			pc.BankSelect = s
		} else {
			var b bool
			if err := json.Unmarshal(bankRaw, &b); err == nil {
				pc.BankSelectIsBool = true
				pc.BankSelectBool = b
			}
		}
	}

	return pc
}
