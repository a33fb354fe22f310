package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile"
)

// UnversionedLabel stands in for implementationVersion in slugs and entries
// when a profile does not declare one.
const UnversionedLabel = "unversioned"

// BuildOptions configures a manifest build.
type BuildOptions struct {
	// Root is the data set root. Defaults to the current directory.
	Root string

	// SkipValidation builds the manifest without running the validation
	// pass first. Indexing non-conformant data is then the caller's
	// problem.
	SkipValidation bool

	// Registry supplies the validation rules for the pre-build pass.
	Registry *profile.RuleRegistry

	// Now supplies the generatedAt timestamp; defaults to time.Now.
	Now func() time.Time
}

// SkippedFile records a discovered file left out of the manifest.
type SkippedFile struct {
	Path   string
	Reason string
}

// BuildResult is the outcome of a manifest build.
type BuildResult struct {
	Manifest *Manifest

	// Skipped lists files whose path does not match
	// devices/<vendor>/<file>.json, or that could not be read or parsed
	// when validation was skipped. Each is a warning, not an error.
	Skipped []SkippedFile
}

// ValidationFailedError aborts a build whose pre-build validation pass
// reported errors.
type ValidationFailedError struct {
	Results []profile.FileResult
	Summary profile.RunSummary
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s) across %d file(s)",
		e.Summary.Errors, e.Summary.Files)
}

// Build validates the data set (unless skipped) and assembles the manifest.
// Entries are sorted by file path; the document is not written to disk
// (see WriteFile).
func Build(opts BuildOptions) (*BuildResult, error) {
	if opts.Root == "" {
		opts.Root = "."
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	if !opts.SkipValidation {
		runner := profile.NewRunner(profile.RunnerOptions{
			Root:     opts.Root,
			Registry: opts.Registry,
		})
		results, summary, err := runner.Run()
		if err != nil {
			return nil, err
		}
		if !summary.Passed() {
			return nil, &ValidationFailedError{Results: results, Summary: summary}
		}
	}

	files, err := profile.DiscoverDeviceFiles(opts.Root)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{}
	entries := make([]Entry, 0, len(files))

	for _, rel := range files {
		vendor, product, ok := splitDevicePath(rel)
		if !ok {
			result.Skipped = append(result.Skipped, SkippedFile{
				Path:   rel,
				Reason: "path does not match devices/<vendor>/<file>.json",
			})
			continue
		}

		fsPath := filepath.Join(opts.Root, filepath.FromSlash(rel))
		prof, err := profile.ParseFile(fsPath)
		if err != nil {
			// Only reachable with SkipValidation; the validation pass
			// rejects unparseable files.
			result.Skipped = append(result.Skipped, SkippedFile{Path: rel, Reason: err.Error()})
			continue
		}

		sum, size, err := HashFile(fsPath)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: rel, Reason: err.Error()})
			continue
		}

		entries = append(entries, newEntry(rel, vendor, product, prof, sum, size))
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	result.Manifest = &Manifest{
		Schema:      SchemaVersion,
		GeneratedAt: now().UTC().Format(time.RFC3339),
		Count:       len(entries),
		Devices:     entries,
	}
	return result, nil
}

// splitDevicePath decomposes a path of the exact shape
// devices/<vendor>/<file>.json into vendor and product.
func splitDevicePath(rel string) (vendor, product string, ok bool) {
	parts := strings.Split(rel, "/")
	if len(parts) != 3 || parts[0] != profile.DevicesDir {
		return "", "", false
	}
	if !strings.HasSuffix(parts[2], ".json") {
		return "", "", false
	}
	product = strings.TrimSuffix(parts[2], ".json")
	if parts[1] == "" || product == "" {
		return "", "", false
	}
	return parts[1], product, true
}

func newEntry(rel, vendor, product string, prof *profile.Profile, sum string, size int64) Entry {
	version := prof.ImplementationVersion
	if !prof.HasImplementationVersion || version == "" {
		version = UnversionedLabel
	}

	entry := Entry{
		Slug:      fmt.Sprintf("%s.%s@%s", vendor, product, version),
		Vendor:    vendor,
		Product:   product,
		Version:   version,
		Path:      rel,
		SHA256:    sum,
		Size:      size,
		Receives:  filterValid(prof.Receives.Tokens),
		Transmits: filterValid(prof.Transmits.Tokens),
		CCCount:   len(prof.CC),
		NRPNCount: prof.NRPNCount,
	}
	if raw, ok := prof.Doc.Get(profile.KeyProgramChange); ok {
		entry.XPC = raw
	}
	return entry
}

// filterValid keeps only tokens from the valid vocabulary, preserving
// order. The result is never nil: empty capability lists stay [] in the
// manifest.
func filterValid(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if profile.IsValidMessage(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// WriteFile writes an encoded manifest atomically: the document goes to a
// uniquely named temporary file in the target directory, then renames over
// the destination.
func WriteFile(path string, m *Manifest) error {
	data := Encode(m)
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", filepath.Base(path), uuid.NewString()))

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace manifest: %w", err)
	}
	return nil
}
