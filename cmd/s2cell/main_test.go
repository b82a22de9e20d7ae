package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kylebutts/s2/internal/diagfmt"
	"github.com/kylebutts/s2/internal/version"
)

// execute runs the CLI in a scratch working directory so no s2cell.toml from
// the surrounding tree is picked up.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	return executeHere(t, stdin, args...)
}

func executeHere(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--ui", "off", "--color", "off"))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestFromTokenIsolatesBadTokens(t *testing.T) {
	stdout, stderr, err := execute(t, "89c25c\nINVALID\n\n", "from-token", "--report", "short")
	if !errors.Is(err, errProblemsReported) {
		t.Fatalf("err = %v, want errProblemsReported", err)
	}
	if want := "9926597683747749888\nNA\nNA\n"; stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "error CEL1002 <stdin>:1 invalid token") {
		t.Fatalf("stderr = %q", stderr)
	}
	if !strings.Contains(stderr, "found 1 problem") {
		t.Fatalf("missing summary in %q", stderr)
	}
}

func TestFromTokenStrictWritesNothing(t *testing.T) {
	stdout, stderr, err := execute(t, "89c25c\nINVALID\n", "from-token", "--policy", "strict", "--report", "short")
	if !errors.Is(err, errProblemsReported) {
		t.Fatalf("err = %v, want errProblemsReported", err)
	}
	if stdout != "" {
		t.Fatalf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "BAT2002") {
		t.Fatalf("stderr = %q, want BAT2002", stderr)
	}
}

func TestCleanRunIsSilent(t *testing.T) {
	stdout, stderr, err := execute(t, "89c25c\nNA\nX\n", "from-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "9926597683747749888\nNA\n0\n"; stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
	if stderr != "" {
		t.Fatalf("stderr = %q, want empty", stderr)
	}
}

func TestIDCommands(t *testing.T) {
	input := "9926597683747749888\n0\nNA\n"
	cases := []struct {
		cmd     string
		want    string
		wantErr bool
	}{
		{"to-token", "89c25c\nX\nNA\n", false},
		{"is-valid", "TRUE\nFALSE\nNA\n", false},
		{"level", "9\nNA\nNA\n", true},
	}
	for _, tc := range cases {
		t.Run(tc.cmd, func(t *testing.T) {
			stdout, _, err := execute(t, input, tc.cmd)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if stdout != tc.want {
				t.Fatalf("stdout = %q, want %q", stdout, tc.want)
			}
		})
	}
}

func TestFromLngLatMissingCoordinates(t *testing.T) {
	stdout, _, err := execute(t, "-122.4,37.7\nNaN,10\nNA\n", "from-lnglat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), stdout)
	}
	if lines[0] == "NA" || lines[1] != "NA" || lines[2] != "NA" {
		t.Fatalf("lines = %q", lines)
	}
}

func TestFilesAreConcatenatedInOrder(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("a.txt", []byte("89c25c\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("b.txt", []byte("NA\nX\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.txt")
	stdout, _, err := executeHere(t, "", "from-token", "a.txt", "b.txt", "-o", out, "--jobs", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Fatalf("stdout = %q, want output in file", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := "9926597683747749888\nNA\n0\n"; string(data) != want {
		t.Fatalf("output = %q, want %q", data, want)
	}
}

func TestMissingFileIsReported(t *testing.T) {
	_, stderr, err := execute(t, "", "to-token", "nope.txt", "--report", "short")
	if !errors.Is(err, errProblemsReported) {
		t.Fatalf("err = %v, want errProblemsReported", err)
	}
	if !strings.Contains(stderr, "error IO4001 nope.txt") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestJSONReportIsAlwaysWritten(t *testing.T) {
	_, stderr, err := execute(t, "89c25c\n", "from-token", "--report", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(stderr), &doc); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, stderr)
	}
	if doc.Count != 0 {
		t.Fatalf("count = %d, want 0", doc.Count)
	}
}

func TestConfigFileSetsPolicy(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfg := "[batch]\ntoken_policy = \"strict\"\n\n[report]\nformat = \"short\"\n"
	if err := os.WriteFile("s2cell.toml", []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := executeHere(t, "INVALID\n", "from-token")
	if !errors.Is(err, errProblemsReported) || stdout != "" || !strings.Contains(stderr, "BAT2002") {
		t.Fatalf("strict from config: err=%v stdout=%q stderr=%q", err, stdout, stderr)
	}

	stdout, _, err = executeHere(t, "INVALID\n", "from-token", "--policy", "isolate")
	if !errors.Is(err, errProblemsReported) || stdout != "NA\n" {
		t.Fatalf("flag override: err=%v stdout=%q", err, stdout)
	}
}

func TestInvalidConfigNamesKey(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("s2cell.toml", []byte("[batch]\ncheck_every = 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, _, err := executeHere(t, "", "from-token")
	if err == nil || !strings.Contains(err.Error(), "[batch.check_every]") {
		t.Fatalf("err = %v, want check_every error", err)
	}
}

func TestCancelledContextReportsCancellation(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(strings.Repeat("89c25c\n", 5000)))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"from-token", "--ui", "off", "--report", "short"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cmd.ExecuteContext(ctx)
	if !errors.Is(err, errProblemsReported) {
		t.Fatalf("err = %v, want errProblemsReported", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout = %q, want empty", stdout.String())
	}
	if !strings.Contains(stderr.String(), "BAT2001") {
		t.Fatalf("stderr = %q, want BAT2001", stderr.String())
	}
}

func TestTimingsInPrettyMode(t *testing.T) {
	_, stderr, err := execute(t, "89c25c\n", "from-token", "--timings")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stderr, "timings:") || !strings.Contains(stderr, "from-token") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestTraceStreamToFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "trace.ndjson")
	if _, _, err := executeHere(t, "89c25c\n", "from-token", "--trace", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"run_id"`) || !strings.Contains(string(data), "cmd:from-token") {
		t.Fatalf("trace = %s", data)
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := execute(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var info version.Info
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Version != version.Version {
		t.Fatalf("version = %q, want %q", info.Version, version.Version)
	}
}

func TestVersionRejectsUnknownFormat(t *testing.T) {
	if _, _, err := execute(t, "", "version", "--format", "yaml"); err == nil {
		t.Fatal("expected error")
	}
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected error")
	}
	if shouldUseTUI(uiModeAuto, false, &bytes.Buffer{}) {
		t.Fatal("auto mode must stay off for non-terminals")
	}
}
