package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/log"
	"github.com/kabaragoya-loves-you/midi-devices/pkg/manifest"
)

// VerifyOptions configures the verify command.
type VerifyOptions struct {
	Root     string
	Manifest string
	JSON     bool
	LogPath  string
}

// IntegrityOutput represents one divergence in JSON output.
type IntegrityOutput struct {
	Slug    string `json:"slug"`
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// VerifyOutput represents a verification run in JSON output.
type VerifyOutput struct {
	Entries int               `json:"entries"`
	Passed  bool              `json:"passed"`
	Errors  []IntegrityOutput `json:"errors,omitempty"`
}

// RunVerify runs the verify command.
func RunVerify(args []string, stdout, stderr io.Writer) int {
	opts, err := parseVerifyArgs(args)
	if err != nil {
		if err == flag.ErrHelp {
			printVerifyUsage(stderr)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	rl, err := newRunLog(opts.LogPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	defer rl.Close()

	manifestPath := opts.Manifest
	if manifestPath == "" {
		manifestPath = filepath.Join(opts.Root, manifest.DefaultFileName)
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		rl.Log(log.NewErrorEvent(rl.ID, log.ToolVerify, manifestPath, err.Error()))
		return exitFailure
	}

	result := manifest.Verify(opts.Root, m)

	for _, ie := range result.Errors {
		rl.Log(log.NewIntegrityEvent(rl.ID, ie.Path, ie.Code, ie.Message))
	}
	rl.Log(log.NewSummaryEvent(rl.ID, log.ToolVerify,
		result.Entries, len(result.Errors), 0, 0, result.Passed()))

	if opts.JSON {
		output := VerifyOutput{
			Entries: result.Entries,
			Passed:  result.Passed(),
		}
		for _, ie := range result.Errors {
			output.Errors = append(output.Errors, IntegrityOutput{
				Slug:    ie.Slug,
				Path:    ie.Path,
				Code:    ie.Code,
				Message: ie.Message,
			})
		}
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(data))
	} else {
		for _, ie := range result.Errors {
			fmt.Fprintf(stdout, "%s: %s: %s\n", ie.Path, ie.Code, ie.Message)
		}
		if result.Passed() {
			fmt.Fprintf(stdout, "Verified %d entry(ies): all match\n", result.Entries)
		} else {
			fmt.Fprintf(stdout, "\nVerified %d entry(ies): %d divergence(s)\n",
				result.Entries, len(result.Errors))
		}
	}

	if result.Passed() {
		return exitSuccess
	}
	return exitFailure
}

func parseVerifyArgs(args []string) (VerifyOptions, error) {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := VerifyOptions{}

	fs.StringVar(&opts.Root, "root", ".", "Data set root directory")
	fs.StringVar(&opts.Manifest, "manifest", "", "Manifest path [default: <root>/manifest.json]")
	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.StringVar(&opts.LogPath, "log", "", "Write run events to this file (CBOR)")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	return opts, nil
}

func printVerifyUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: mididev verify [options]

Re-reads every file the manifest references, recomputes size and sha256,
and reports any divergence. A drifted manifest is fixed by rebuilding it.

Options:
  --root      Data set root directory [default: .]
  --manifest  Manifest path [default: <root>/manifest.json]
  --json      Output results as JSON
  --log       Write run events to this file (CBOR)

Examples:
  mididev verify
  mididev verify --root ./data --json`)
}
