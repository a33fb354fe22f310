package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile"
)

// ShowOptions configures the show command.
type ShowOptions struct {
	Format string
	File   string
}

// ShowCC represents one control change command in show output.
type ShowCC struct {
	Number int64  `json:"controlChangeNumber"`
	Name   string `json:"name,omitempty"`
}

// ShowPC represents the program change configuration in show output.
type ShowPC struct {
	IndexBase  *int64 `json:"indexBase,omitempty"`
	Count      *int64 `json:"count,omitempty"`
	NamesCount int    `json:"namesCount,omitempty"`
	BankSelect string `json:"bankSelect,omitempty"`
}

// ShowOutput represents a device profile in show output.
type ShowOutput struct {
	File                  string   `json:"file"`
	ImplementationVersion string   `json:"implementationVersion,omitempty"`
	DisplayName           string   `json:"displayName,omitempty"`
	DocumentationURL      string   `json:"documentationUrl,omitempty"`
	Receives              []string `json:"receives"`
	Transmits             []string `json:"transmits"`
	ControlChanges        []ShowCC `json:"controlChangeCommands,omitempty"`
	NRPNCount             int      `json:"nrpnCount,omitempty"`
	ProgramChange         *ShowPC  `json:"x_pc,omitempty"`
}

// RunShow runs the show command.
func RunShow(args []string, stdout, stderr io.Writer) int {
	opts, err := parseShowArgs(args)
	if err != nil {
		if err == flag.ErrHelp {
			printShowUsage(stderr)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	prof, err := profile.ParseFile(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	output := buildShowOutput(prof)

	switch opts.Format {
	case "json":
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(data))
	default:
		printShowText(stdout, output)
	}
	return exitSuccess
}

func buildShowOutput(prof *profile.Profile) *ShowOutput {
	output := &ShowOutput{
		File:                  prof.SourceFile,
		ImplementationVersion: prof.ImplementationVersion,
		DisplayName:           docString(prof, profile.KeyDisplayName),
		DocumentationURL:      docString(prof, profile.KeyDocumentationURL),
		Receives:              append([]string{}, prof.Receives.Tokens...),
		Transmits:             append([]string{}, prof.Transmits.Tokens...),
		NRPNCount:             prof.NRPNCount,
	}

	for _, entry := range prof.CC {
		if !entry.NumberIsInt {
			continue
		}
		output.ControlChanges = append(output.ControlChanges, ShowCC{
			Number: entry.Number,
			Name:   entry.Name,
		})
	}

	if pc := prof.PC; pc != nil && pc.IsObject {
		sp := &ShowPC{}
		if pc.IndexBaseIsInt {
			v := pc.IndexBase
			sp.IndexBase = &v
		}
		if pc.CountIsInt {
			v := pc.Count
			sp.Count = &v
		}
		if pc.NamesIsArray {
			sp.NamesCount = pc.NamesCount
		}
		if pc.BankSelectIsString {
			sp.BankSelect = pc.BankSelect
		}
		output.ProgramChange = sp
	}

	return output
}

func printShowText(w io.Writer, output *ShowOutput) {
	fmt.Fprintf(w, "File:      %s\n", output.File)
	if output.DisplayName != "" {
		fmt.Fprintf(w, "Name:      %s\n", output.DisplayName)
	}
	if output.ImplementationVersion != "" {
		fmt.Fprintf(w, "Version:   %s\n", output.ImplementationVersion)
	}
	if output.DocumentationURL != "" {
		fmt.Fprintf(w, "Docs:      %s\n", output.DocumentationURL)
	}
	fmt.Fprintf(w, "Receives:  %s\n", joinOrNone(output.Receives))
	fmt.Fprintf(w, "Transmits: %s\n", joinOrNone(output.Transmits))

	if len(output.ControlChanges) > 0 {
		fmt.Fprintf(w, "\nControl changes (%d):\n", len(output.ControlChanges))
		for _, cc := range output.ControlChanges {
			if cc.Name != "" {
				fmt.Fprintf(w, "  CC %3d  %s\n", cc.Number, cc.Name)
			} else {
				fmt.Fprintf(w, "  CC %3d\n", cc.Number)
			}
		}
	}
	if output.NRPNCount > 0 {
		fmt.Fprintf(w, "\nNRPN commands: %d\n", output.NRPNCount)
	}
	if pc := output.ProgramChange; pc != nil {
		fmt.Fprintln(w, "\nProgram change:")
		if pc.IndexBase != nil {
			fmt.Fprintf(w, "  Index base:  %d\n", *pc.IndexBase)
		}
		if pc.Count != nil {
			fmt.Fprintf(w, "  Count:       %d\n", *pc.Count)
		}
		if pc.NamesCount > 0 {
			fmt.Fprintf(w, "  Named slots: %d\n", pc.NamesCount)
		}
		if pc.BankSelect != "" {
			fmt.Fprintf(w, "  Bank select: %s\n", pc.BankSelect)
		}
	}
}

func joinOrNone(tokens []string) string {
	if len(tokens) == 0 {
		return "(none)"
	}
	return strings.Join(tokens, ", ")
}

// docString reads an optional top-level string value off the raw document.
func docString(prof *profile.Profile, key string) string {
	raw, ok := prof.Doc.Get(key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func parseShowArgs(args []string) (ShowOptions, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := ShowOptions{}

	fs.StringVar(&opts.Format, "format", "text", "Output format: text or json")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Format != "text" && opts.Format != "json" {
		return opts, fmt.Errorf("unknown format: %s (expected text or json)", opts.Format)
	}
	if fs.NArg() != 1 {
		return opts, fmt.Errorf("expected exactly one file argument")
	}
	opts.File = fs.Arg(0)
	return opts, nil
}

func printShowUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: mididev show [options] <file>

Prints a summary of one device profile.

Options:
  --format  Output format: text or json [default: text]

Examples:
  mididev show devices/strymon/timeline.json
  mididev show --format json devices/strymon/timeline.json`)
}
