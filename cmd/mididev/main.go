// mididev is a CLI tool for validating MIDI device profiles and building
// and verifying the manifest index over them.
package main

import (
	"fmt"
	"os"

	"github.com/kabaragoya-loves-you/midi-devices/cmd/mididev/commands"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitFailure)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "validate":
		exitCode = commands.RunValidate(args, os.Stdout, os.Stderr)
	case "manifest":
		exitCode = commands.RunManifest(args, os.Stdout, os.Stderr)
	case "verify":
		exitCode = commands.RunVerify(args, os.Stdout, os.Stderr)
	case "show":
		exitCode = commands.RunShow(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("mididev version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitFailure
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`mididev - MIDI device profile validation and indexing tool

Usage:
  mididev <command> [options] [files...]

Commands:
  validate   Validate device profile files against the schema convention
  manifest   Build the manifest index over the data set
  verify     Check the manifest against the files on disk
  show       Display a device profile summary

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  mididev validate --root . --fix
  mididev validate devices/strymon/timeline.json
  mididev manifest --root . -o manifest.json
  mididev verify --root .
  mididev show --format json devices/strymon/timeline.json

For command-specific help, run:
  mididev <command> --help`)
}
