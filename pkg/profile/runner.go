package profile

import "path/filepath"

// RunnerOptions configures a validation run over a data set root.
type RunnerOptions struct {
	// Root is the data set root containing the devices directory.
	// Defaults to the current directory.
	Root string

	// Files, when non-empty, bypasses discovery and validates exactly these
	// paths (verbatim, relative to the working directory).
	Files []string

	// Fix applies the fix transformation to files that fail validation,
	// then re-validates; the post-fix result is what gets reported.
	Fix bool

	// Registry supplies the validation rules.
	Registry *RuleRegistry
}

// FileResult is the outcome for a single device file.
type FileResult struct {
	// Path is the file path as discovered or given.
	Path string

	// Result is the validation result (post-fix when a fix was applied).
	Result *ValidationResult

	// Fixed is true if fix mode rewrote the file.
	Fixed bool
}

// RunSummary aggregates a whole validation run.
type RunSummary struct {
	Files    int
	Errors   int
	Warnings int
	Fixed    int
}

// Passed returns true if the run produced no errors. Warnings never fail
// a run.
func (s RunSummary) Passed() bool {
	return s.Errors == 0
}

// Runner validates every device file under a root in deterministic order.
type Runner struct {
	opts      RunnerOptions
	validator *Validator
}

// NewRunner creates a runner for the given options.
func NewRunner(opts RunnerOptions) *Runner {
	if opts.Root == "" {
		opts.Root = "."
	}
	return &Runner{
		opts:      opts,
		validator: NewValidator(),
	}
}

// Run validates all files and returns per-file results plus the summary.
// Per-file problems never abort the run; only an EnvironmentError (missing
// devices directory) does.
func (r *Runner) Run() ([]FileResult, RunSummary, error) {
	paths := r.opts.Files
	joinRoot := false
	if len(paths) == 0 {
		discovered, err := DiscoverDeviceFiles(r.opts.Root)
		if err != nil {
			return nil, RunSummary{}, err
		}
		paths = discovered
		joinRoot = true
	}

	valOpts := ValidateOptions{
		Registry:    r.opts.Registry,
		MinSeverity: SeverityInfo,
	}

	results := make([]FileResult, 0, len(paths))
	var summary RunSummary

	for _, path := range paths {
		fsPath := path
		if joinRoot {
			fsPath = filepath.Join(r.opts.Root, filepath.FromSlash(path))
		}

		_, result := r.validator.ValidateFile(fsPath, valOpts)
		fixed := false

		if r.opts.Fix && !result.Valid {
			changed, err := FixFile(fsPath)
			if err == nil {
				if changed {
					fixed = true
				}
				_, result = r.validator.ValidateFile(fsPath, valOpts)
			}
			// A file the fix cannot parse keeps its original result.
		}

		results = append(results, FileResult{Path: path, Result: result, Fixed: fixed})

		summary.Files++
		summary.Errors += len(result.Errors)
		summary.Warnings += len(result.Warnings)
		if fixed {
			summary.Fixed++
		}
	}

	return results, summary, nil
}
