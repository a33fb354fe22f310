package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// utf8BOM is tolerated on read and stripped on fix-write.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a JSON object that preserves top-level key order.
// Values are kept as raw JSON so that untouched parts of a profile survive
// the fix transformation byte-for-byte at the token level.
type Document struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		keys:   make([]string, 0),
		values: make(map[string]json.RawMessage),
	}
}

// ParseDocument parses data as a JSON object, preserving key order.
// A UTF-8 byte order mark is stripped. Duplicate keys keep the first
// position and the last value.
func ParseDocument(data []byte) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("invalid JSON: top-level value must be an object")
	}

	doc := NewDocument()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid JSON: object key is not a string")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		doc.Set(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return doc, nil
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Has returns true if the key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Get returns the raw value for a key.
func (d *Document) Get(key string) (json.RawMessage, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set stores a value, appending the key if it is new.
func (d *Document) Set(key string, value json.RawMessage) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Delete removes a key, preserving the order of the remaining keys.
func (d *Document) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Rename moves the value under from to the key to, keeping from's position.
// It does nothing if from is absent or to is already present.
func (d *Document) Rename(from, to string) {
	v, ok := d.values[from]
	if !ok || d.Has(to) {
		return
	}
	delete(d.values, from)
	d.values[to] = v
	for i, k := range d.keys {
		if k == from {
			d.keys[i] = to
			break
		}
	}
}

// Reorder rearranges keys so that those listed in order come first (in that
// order, when present), followed by the remaining keys in their original
// document order.
func (d *Document) Reorder(order []string) {
	listed := make(map[string]struct{}, len(order))
	next := make([]string, 0, len(d.keys))
	for _, k := range order {
		if d.Has(k) {
			next = append(next, k)
			listed[k] = struct{}{}
		}
	}
	for _, k := range d.keys {
		if _, ok := listed[k]; !ok {
			next = append(next, k)
		}
	}
	d.keys = next
}

// MarshalJSON serializes the document compactly, preserving key order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		var compact bytes.Buffer
		if err := json.Compact(&compact, d.values[k]); err != nil {
			buf.Write(d.values[k])
		} else {
			buf.Write(compact.Bytes())
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode serializes the document with 2-space indentation, LF line endings,
// no byte order mark and a trailing newline. Key order is document order;
// nested values are re-indented but otherwise left as parsed.
func (d *Document) Encode() []byte {
	var buf bytes.Buffer
	if len(d.keys) == 0 {
		buf.WriteString("{}\n")
		return buf.Bytes()
	}
	buf.WriteString("{\n")
	for i, k := range d.keys {
		buf.WriteString("  ")
		keyJSON, _ := json.Marshal(k)
		buf.Write(keyJSON)
		buf.WriteString(": ")
		var val bytes.Buffer
		if err := json.Indent(&val, d.values[k], "  ", "  "); err != nil {
			// Values originate from a successful parse; keep raw on the
			// off chance a caller stored something unindentable.
			buf.Write(d.values[k])
		} else {
			buf.Write(val.Bytes())
		}
		if i < len(d.keys)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}
