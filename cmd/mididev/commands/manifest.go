package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/log"
	"github.com/kabaragoya-loves-you/midi-devices/pkg/manifest"
	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile/rules"
)

// ManifestOptions configures the manifest command.
type ManifestOptions struct {
	Root           string
	Output         string
	SkipValidation bool
	LogPath        string
}

// RunManifest runs the manifest command.
func RunManifest(args []string, stdout, stderr io.Writer) int {
	opts, err := parseManifestArgs(args)
	if err != nil {
		if err == flag.ErrHelp {
			printManifestUsage(stderr)
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

	result, err := manifest.Build(manifest.BuildOptions{
		Root:           opts.Root,
		SkipValidation: opts.SkipValidation,
		Registry:       rules.NewDefaultRegistry(),
	})
	if err != nil {
		var vfe *manifest.ValidationFailedError
		if errors.As(err, &vfe) {
			for _, res := range vfe.Results {
				if res.Result.Valid {
					continue
				}
				fmt.Fprintf(stderr, "%s: FAILED (%d errors, %d warnings)\n",
					res.Path, len(res.Result.Errors), len(res.Result.Warnings))
				printIssues(stderr, res.Result, false)
			}
			fmt.Fprintf(stderr, "\nError: %v\n", err)
			fmt.Fprintln(stderr, "Fix the errors above, or pass --skip-validation to index anyway.")
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		rl.Log(log.NewErrorEvent(rl.ID, log.ToolManifest, "", err.Error()))
		return exitFailure
	}

	for _, skipped := range result.Skipped {
		fmt.Fprintf(stderr, "Warning: skipping %s: %s\n", skipped.Path, skipped.Reason)
	}

	output := opts.Output
	if output == "" {
		output = filepath.Join(opts.Root, manifest.DefaultFileName)
	}

	if err := manifest.WriteFile(output, result.Manifest); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		rl.Log(log.NewErrorEvent(rl.ID, log.ToolManifest, output, err.Error()))
		return exitFailure
	}

	for _, entry := range result.Manifest.Devices {
		rl.Log(log.NewFileEvent(rl.ID, log.ToolManifest, entry.Path, true, 0, 0, false))
	}
	rl.Log(log.NewSummaryEvent(rl.ID, log.ToolManifest,
		result.Manifest.Count, 0, len(result.Skipped), 0, true))

	fmt.Fprintf(stdout, "Wrote %s with %d device(s)\n", output, result.Manifest.Count)
	return exitSuccess
}

func parseManifestArgs(args []string) (ManifestOptions, error) {
	fs := flag.NewFlagSet("manifest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := ManifestOptions{}

	fs.StringVar(&opts.Root, "root", ".", "Data set root directory")
	fs.StringVar(&opts.Output, "output", "", "Output path [default: <root>/manifest.json]")
	fs.StringVar(&opts.Output, "o", "", "Output path (shorthand)")
	fs.BoolVar(&opts.SkipValidation, "skip-validation", false, "Build without the validation pass")
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

func printManifestUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: mididev manifest [options]

Validates the data set under <root>/devices, then writes a deterministic
manifest index of every device profile.

Options:
  --root             Data set root directory [default: .]
  -o, --output       Output path [default: <root>/manifest.json]
  --skip-validation  Build without the validation pass
  --log              Write run events to this file (CBOR)

Examples:
  mididev manifest
  mididev manifest --root ./data -o ./data/manifest.json`)
}
