package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/log"
	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile"
	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile/rules"
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	Root    string
	Fix     bool
	JSON    bool
	Verbose bool
	Rules   string
	LogPath string
	Files   []string
}

// FileOutput represents the validation result for a file in JSON output.
type FileOutput struct {
	Valid    bool          `json:"valid"`
	Fixed    bool          `json:"fixed,omitempty"`
	Errors   []IssueOutput `json:"errors,omitempty"`
	Warnings []IssueOutput `json:"warnings,omitempty"`
}

// ValidateOutput represents the whole run in JSON output.
type ValidateOutput struct {
	Files   map[string]*FileOutput `json:"files"`
	Summary SummaryOutput          `json:"summary"`
}

// SummaryOutput represents the run summary in JSON output.
type SummaryOutput struct {
	Files    int  `json:"files"`
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
	Fixed    int  `json:"fixed,omitempty"`
	Passed   bool `json:"passed"`
}

// RunValidate runs the validate command.
func RunValidate(args []string, stdout, stderr io.Writer) int {
	opts, err := parseValidateArgs(args)
	if err != nil {
		if err == flag.ErrHelp {
			printValidateUsage(stderr)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	registry := rules.NewDefaultRegistry()
	if opts.Rules != "" {
		cfg, err := profile.LoadRuleConfig(opts.Rules)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}
		if err := cfg.Apply(registry); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}
	}

	rl, err := newRunLog(opts.LogPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	defer rl.Close()

	runner := profile.NewRunner(profile.RunnerOptions{
		Root:     opts.Root,
		Files:    opts.Files,
		Fix:      opts.Fix,
		Registry: registry,
	})

	results, summary, err := runner.Run()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		rl.Log(log.NewErrorEvent(rl.ID, log.ToolValidate, "", err.Error()))
		return exitFailure
	}

	for _, res := range results {
		rl.Log(log.NewFileEvent(rl.ID, log.ToolValidate, res.Path,
			res.Result.Valid, len(res.Result.Errors), len(res.Result.Warnings), res.Fixed))
		if !opts.JSON {
			printFileResult(stdout, res, opts.Verbose)
		}
	}
	rl.Log(log.NewSummaryEvent(rl.ID, log.ToolValidate,
		summary.Files, summary.Errors, summary.Warnings, summary.Fixed, summary.Passed()))

	if opts.JSON {
		output := ValidateOutput{
			Files: make(map[string]*FileOutput, len(results)),
			Summary: SummaryOutput{
				Files:    summary.Files,
				Errors:   summary.Errors,
				Warnings: summary.Warnings,
				Fixed:    summary.Fixed,
				Passed:   summary.Passed(),
			},
		}
		for _, res := range results {
			output.Files[res.Path] = &FileOutput{
				Valid:    res.Result.Valid,
				Fixed:    res.Fixed,
				Errors:   issueOutputs(res.Result.Errors),
				Warnings: issueOutputs(res.Result.Warnings),
			}
		}
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(data))
	} else {
		printSummary(stdout, summary, opts.Fix)
	}

	if summary.Passed() {
		return exitSuccess
	}
	return exitFailure
}

func printFileResult(w io.Writer, res profile.FileResult, verbose bool) {
	result := res.Result
	suffix := ""
	if res.Fixed {
		suffix = " (fixed)"
	}

	switch {
	case result.Valid && len(result.Warnings) == 0:
		fmt.Fprintf(w, "%s: OK%s\n", res.Path, suffix)
		return
	case result.Valid:
		fmt.Fprintf(w, "%s: OK (with %d warnings)%s\n", res.Path, len(result.Warnings), suffix)
	default:
		fmt.Fprintf(w, "%s: FAILED (%d errors, %d warnings)%s\n",
			res.Path, len(result.Errors), len(result.Warnings), suffix)
	}

	printIssues(w, result, verbose)
}

func printSummary(w io.Writer, summary profile.RunSummary, fix bool) {
	line := fmt.Sprintf("\nChecked %d file(s): %d error(s), %d warning(s)",
		summary.Files, summary.Errors, summary.Warnings)
	if fix {
		line += fmt.Sprintf(", %d fixed", summary.Fixed)
	}
	fmt.Fprintln(w, line)
}

func parseValidateArgs(args []string) (ValidateOptions, error) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := ValidateOptions{}

	fs.StringVar(&opts.Root, "root", ".", "Data set root directory")
	fs.BoolVar(&opts.Fix, "fix", false, "Rewrite failing files toward the canonical schema")
	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Show fix suggestions")
	fs.BoolVar(&opts.Verbose, "v", false, "Show fix suggestions (shorthand)")
	fs.StringVar(&opts.Rules, "rules", "", "Rule configuration file (YAML)")
	fs.StringVar(&opts.LogPath, "log", "", "Write run events to this file (CBOR)")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.Files = fs.Args()
	return opts, nil
}

func printValidateUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: mididev validate [options] [files...]

With explicit files, validates just those; otherwise scans <root>/devices.

Options:
  --root         Data set root directory [default: .]
  --fix          Rewrite failing files toward the canonical schema
  --json         Output results as JSON
  -v, --verbose  Show fix suggestions
  --rules        Rule configuration file (YAML)
  --log          Write run events to this file (CBOR)

Examples:
  mididev validate
  mididev validate --root ./data --fix
  mididev validate --json devices/strymon/timeline.json`)
}
