package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// Integrity error codes.
const (
	CodeMissingFile  = "MissingFile"
	CodeSizeMismatch = "SizeMismatch"
	CodeHashMismatch = "HashMismatch"
)

// IntegrityError reports one divergence between a manifest entry and the
// file on disk.
type IntegrityError struct {
	Slug    string
	Path    string
	Code    string
	Message string
}

func (e IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
}

// VerifyResult aggregates a verification run.
type VerifyResult struct {
	// Entries is the number of manifest entries checked.
	Entries int

	// Errors lists every divergence found, in manifest order.
	Errors []IntegrityError
}

// Passed returns true if every entry matched the file on disk.
func (r *VerifyResult) Passed() bool {
	return len(r.Errors) == 0
}

// Verify re-reads every file referenced by the manifest, recomputes size
// and hash, and reports divergences. It never mutates anything; a drifted
// manifest is resolved by rebuilding it.
func Verify(root string, m *Manifest) *VerifyResult {
	if root == "" {
		root = "."
	}
	result := &VerifyResult{}

	for _, entry := range m.Devices {
		result.Entries++
		fsPath := filepath.Join(root, filepath.FromSlash(entry.Path))

		if _, err := os.Stat(fsPath); err != nil {
			result.Errors = append(result.Errors, IntegrityError{
				Slug:    entry.Slug,
				Path:    entry.Path,
				Code:    CodeMissingFile,
				Message: "file referenced by manifest does not exist",
			})
			continue
		}

		sum, size, err := HashFile(fsPath)
		if err != nil {
			result.Errors = append(result.Errors, IntegrityError{
				Slug:    entry.Slug,
				Path:    entry.Path,
				Code:    CodeMissingFile,
				Message: err.Error(),
			})
			continue
		}

		if size != entry.Size {
			result.Errors = append(result.Errors, IntegrityError{
				Slug:    entry.Slug,
				Path:    entry.Path,
				Code:    CodeSizeMismatch,
				Message: fmt.Sprintf("size %d on disk, %d in manifest", size, entry.Size),
			})
		}
		if sum != entry.SHA256 {
			result.Errors = append(result.Errors, IntegrityError{
				Slug:    entry.Slug,
				Path:    entry.Path,
				Code:    CodeHashMismatch,
				Message: fmt.Sprintf("sha256 %s on disk, %s in manifest", sum, entry.SHA256),
			})
		}
	}

	return result
}
