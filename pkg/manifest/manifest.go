// Package manifest builds and verifies the device profile manifest: a
// single JSON index over the data set carrying integrity hashes, sizes and
// capability summaries, sorted by file path and serialized
// deterministically.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile"
)

// SchemaVersion is the manifest document schema version.
const SchemaVersion = 1

// DefaultFileName is the manifest file name under the data set root.
const DefaultFileName = "manifest.json"

// Entry is the summary record for one device profile file.
type Entry struct {
	// Slug uniquely identifies a device+version pair: vendor.product@version.
	Slug    string `json:"slug"`
	Vendor  string `json:"vendor"`
	Product string `json:"product"`
	Version string `json:"version"`

	// Path is the file path relative to the root, forward slashes.
	Path string `json:"path"`

	// SHA256 is the lowercase hex digest of the file bytes.
	SHA256 string `json:"sha256"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// Receives and Transmits carry only tokens from the valid vocabulary.
	Receives  []string `json:"receives"`
	Transmits []string `json:"transmits"`

	CCCount   int `json:"ccCount"`
	NRPNCount int `json:"nrpnCount"`

	// XPC is the profile's x_pc object passed through verbatim, omitted
	// when the profile has none.
	XPC json.RawMessage `json:"x_pc,omitempty"`
}

// Manifest is the top-level index document. It is regenerated wholesale on
// each build, never partially updated.
type Manifest struct {
	Schema      int     `json:"schema"`
	GeneratedAt string  `json:"generatedAt"`
	Count       int     `json:"count"`
	Devices     []Entry `json:"devices"`
}

// Load reads and parses a manifest file. A missing file is an
// EnvironmentError: verification cannot proceed without it.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &profile.EnvironmentError{Path: path, Reason: "manifest not found"}
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
