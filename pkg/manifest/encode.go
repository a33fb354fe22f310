package manifest

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Encode serializes a manifest deterministically: fixed key order, 2-space
// indentation, LF line endings and a trailing newline. Empty and
// single-element string arrays collapse onto one line so that small diffs
// stay small.
func Encode(m *Manifest) []byte {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	buf.WriteString("  \"schema\": " + strconv.Itoa(m.Schema) + ",\n")
	buf.WriteString("  \"generatedAt\": " + quote(m.GeneratedAt) + ",\n")
	buf.WriteString("  \"count\": " + strconv.Itoa(m.Count) + ",\n")
	if len(m.Devices) == 0 {
		buf.WriteString("  \"devices\": []\n")
	} else {
		buf.WriteString("  \"devices\": [\n")
		for i := range m.Devices {
			writeEntry(&buf, &m.Devices[i], i == len(m.Devices)-1)
		}
		buf.WriteString("  ]\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

func writeEntry(buf *bytes.Buffer, e *Entry, last bool) {
	const ind = "      "

	buf.WriteString("    {\n")
	buf.WriteString(ind + "\"slug\": " + quote(e.Slug) + ",\n")
	buf.WriteString(ind + "\"vendor\": " + quote(e.Vendor) + ",\n")
	buf.WriteString(ind + "\"product\": " + quote(e.Product) + ",\n")
	buf.WriteString(ind + "\"version\": " + quote(e.Version) + ",\n")
	buf.WriteString(ind + "\"path\": " + quote(e.Path) + ",\n")
	buf.WriteString(ind + "\"sha256\": " + quote(e.SHA256) + ",\n")
	buf.WriteString(ind + "\"size\": " + strconv.FormatInt(e.Size, 10) + ",\n")
	writeStringArray(buf, ind, "receives", e.Receives)
	buf.WriteString(",\n")
	writeStringArray(buf, ind, "transmits", e.Transmits)
	buf.WriteString(",\n")
	buf.WriteString(ind + "\"ccCount\": " + strconv.Itoa(e.CCCount) + ",\n")
	buf.WriteString(ind + "\"nrpnCount\": " + strconv.Itoa(e.NRPNCount))
	if e.XPC != nil {
		buf.WriteString(",\n")
		buf.WriteString(ind + "\"x_pc\": ")
		var indented bytes.Buffer
		if err := json.Indent(&indented, e.XPC, ind, "  "); err != nil {
			buf.Write(e.XPC)
		} else {
			buf.Write(indented.Bytes())
		}
	}
	buf.WriteString("\n")
	if last {
		buf.WriteString("    }\n")
	} else {
		buf.WriteString("    },\n")
	}
}

// writeStringArray writes a string array field without a trailing
// separator. Zero- and one-element arrays stay on one line.
func writeStringArray(buf *bytes.Buffer, ind, key string, values []string) {
	buf.WriteString(ind + quote(key) + ": ")
	switch len(values) {
	case 0:
		buf.WriteString("[]")
	case 1:
		buf.WriteString("[" + quote(values[0]) + "]")
	default:
		buf.WriteString("[\n")
		for i, v := range values {
			buf.WriteString(ind + "  " + quote(v))
			if i < len(values)-1 {
				buf.WriteString(",")
			}
			buf.WriteString("\n")
		}
		buf.WriteString(ind + "]")
	}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
