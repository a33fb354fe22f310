package profile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile"
	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile/rules"
)

// writeDataSet lays out a devices tree under a fresh temp root.
func writeDataSet(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

const validProfile = `{
  "implementationVersion": "1.0",
  "receives": ["PROGRAM_CHANGE", "CONTROL_CHANGE"],
  "transmits": [],
  "controlChangeCommands": [
    {"controlChangeNumber": 7, "name": "Volume"}
  ]
}
`

func TestDiscoverDeviceFiles(t *testing.T) {
	root := writeDataSet(t, map[string]string{
		"devices/strymon/timeline.json": validProfile,
		"devices/meris/lvx.json":        validProfile,
		"devices/meris/notes.txt":       "not json",
	})

	files, err := profile.DiscoverDeviceFiles(root)
	if err != nil {
		t.Fatalf("DiscoverDeviceFiles failed: %v", err)
	}

	want := []string{"devices/meris/lvx.json", "devices/strymon/timeline.json"}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestDiscoverDeviceFiles_MissingDir(t *testing.T) {
	_, err := profile.DiscoverDeviceFiles(t.TempDir())
	var envErr *profile.EnvironmentError
	if !errors.As(err, &envErr) {
		t.Fatalf("err = %v, want EnvironmentError", err)
	}
}

func TestRunner_ValidDataSet(t *testing.T) {
	root := writeDataSet(t, map[string]string{
		"devices/strymon/timeline.json": validProfile,
	})

	runner := profile.NewRunner(profile.RunnerOptions{
		Root:     root,
		Registry: rules.NewDefaultRegistry(),
	})
	results, summary, err := runner.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 1 || !results[0].Result.Valid {
		t.Errorf("results = %+v, want one valid file", results)
	}
	if !summary.Passed() || summary.Files != 1 {
		t.Errorf("summary = %+v, want passed with 1 file", summary)
	}
}

func TestRunner_ErrorsAndWarnings(t *testing.T) {
	root := writeDataSet(t, map[string]string{
		// Missing transmits (error), no-name CC entry (warning).
		"devices/boss/rc.json": `{"receives": [], "controlChangeCommands": [{"controlChangeNumber": 1}]}`,
	})

	runner := profile.NewRunner(profile.RunnerOptions{
		Root:     root,
		Registry: rules.NewDefaultRegistry(),
	})
	results, summary, err := runner.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Passed() {
		t.Error("summary should not pass with errors present")
	}
	if summary.Errors != 1 || summary.Warnings != 1 {
		t.Errorf("summary = %+v, want 1 error and 1 warning", summary)
	}
	if results[0].Result.Valid {
		t.Error("file result should be invalid")
	}
}

func TestRunner_WarningsNeverFail(t *testing.T) {
	root := writeDataSet(t, map[string]string{
		"devices/boss/dd.json": `{"receives": ["FUTURE_MESSAGE"], "transmits": []}`,
	})

	runner := profile.NewRunner(profile.RunnerOptions{
		Root:     root,
		Registry: rules.NewDefaultRegistry(),
	})
	_, summary, err := runner.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !summary.Passed() {
		t.Errorf("summary = %+v, warnings alone must not fail the run", summary)
	}
	if summary.Warnings != 1 {
		t.Errorf("Warnings = %d, want 1", summary.Warnings)
	}
}

func TestRunner_InvalidJSONFile(t *testing.T) {
	root := writeDataSet(t, map[string]string{
		"devices/broken/bad.json": `{"receives": [`,
		"devices/ok/good.json":    validProfile,
	})

	runner := profile.NewRunner(profile.RunnerOptions{
		Root:     root,
		Registry: rules.NewDefaultRegistry(),
	})
	results, summary, err := runner.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The broken file gets an InvalidJSON error, the run continues.
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	bad := results[0]
	if bad.Path != "devices/broken/bad.json" {
		t.Fatalf("results[0].Path = %q", bad.Path)
	}
	if len(bad.Result.Errors) != 1 || bad.Result.Errors[0].Code != profile.CodeInvalidJSON {
		t.Errorf("bad file errors = %+v, want single InvalidJSON", bad.Result.Errors)
	}
	if !results[1].Result.Valid {
		t.Error("good file should stay valid")
	}
	if summary.Passed() {
		t.Error("summary should not pass")
	}
}

func TestRunner_FixMode(t *testing.T) {
	root := writeDataSet(t, map[string]string{
		"devices/line6/hx.json": `{"receives": ["PC", "CC"], "controls": [{"controlChangeNumber": 1, "name": "Wah"}]}`,
	})

	runner := profile.NewRunner(profile.RunnerOptions{
		Root:     root,
		Fix:      true,
		Registry: rules.NewDefaultRegistry(),
	})
	results, summary, err := runner.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !results[0].Fixed {
		t.Error("expected the file to be fixed")
	}
	// Post-fix result is reported: deprecated tokens and alias key are gone.
	if !results[0].Result.Valid {
		t.Errorf("post-fix result = %+v, want valid", results[0].Result)
	}
	if summary.Fixed != 1 {
		t.Errorf("summary.Fixed = %d, want 1", summary.Fixed)
	}

	p, err := profile.ParseFile(filepath.Join(root, "devices", "line6", "hx.json"))
	if err != nil {
		t.Fatalf("ParseFile after fix failed: %v", err)
	}
	if p.UsesAliasCCKey() {
		t.Error("alias key should be renamed on disk")
	}
}

func TestRunner_FixLeavesUnparseable(t *testing.T) {
	root := writeDataSet(t, map[string]string{
		"devices/broken/bad.json": `not json at all`,
	})
	before, _ := os.ReadFile(filepath.Join(root, "devices", "broken", "bad.json"))

	runner := profile.NewRunner(profile.RunnerOptions{
		Root:     root,
		Fix:      true,
		Registry: rules.NewDefaultRegistry(),
	})
	results, _, err := runner.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if results[0].Fixed {
		t.Error("unparseable file must not be reported as fixed")
	}
	after, _ := os.ReadFile(filepath.Join(root, "devices", "broken", "bad.json"))
	if string(before) != string(after) {
		t.Error("unparseable file must not be rewritten")
	}
}

func TestRunner_ExplicitFiles(t *testing.T) {
	root := writeDataSet(t, map[string]string{
		"devices/a/one.json": validProfile,
		"devices/b/two.json": `{"transmits": []}`,
	})

	runner := profile.NewRunner(profile.RunnerOptions{
		Files:    []string{filepath.Join(root, "devices", "b", "two.json")},
		Registry: rules.NewDefaultRegistry(),
	})
	results, summary, err := runner.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want only the named file", len(results))
	}
	if summary.Errors == 0 {
		t.Error("expected the missing-receives error")
	}
}
