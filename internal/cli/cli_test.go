package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// resetFlags restores all package-level flag variables to their defaults.
func resetFlags() {
	flagExe = "clang-tidy"
	flagGlobs = nil
	flagRegexes = nil
	flagBuildDir = "build"
	flagDiff = ""
	flagPaths = []string{"."}
	flagDryRun = false
	flagVerbose = false
	flagConfigFile = ""
	flagKeepGoing = false
}

// execute runs the root command with args inside dir and returns captured
// stdout.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), err
}

// setupTestRepo creates a temp git repo with the given files committed.
// Skips the test when git is not installed.
func setupTestRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("command %v failed: %v\n%s", args, err, out)
		}
	}

	run("git", "init")
	run("git", "checkout", "-b", "main")
	for name, content := range files {
		os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
	}
	run("git", "add", "-A")
	run("git", "commit", "-m", "init")

	return dir
}

func fakeTidy(t *testing.T, output string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test scripts require /bin/sh")
	}
	path := filepath.Join(t.TempDir(), "fake-tidy.sh")
	body := fmt.Sprintf("#!/bin/sh\necho '%s'\n", output)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("writing fake clang-tidy: %v", err)
	}
	return path
}

func TestNormalizePaths(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"src/", "src"},
		{"src", "src"},
		{"a/b///", "a/b"},
		{".", "."},
		{"/", "/"},
	}
	for _, tt := range tests {
		got := normalizePaths([]string{tt.in})
		if got[0] != tt.want {
			t.Errorf("normalizePaths(%q) = %q, want %q", tt.in, got[0], tt.want)
		}
	}
}

func TestRun_FullScanDryRun(t *testing.T) {
	dir := setupTestRepo(t, map[string]string{"a.cc": "int main() { return 0; }\n"})

	out, err := execute(t, dir, "--dry-run")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "-p build") {
		t.Errorf("output = %q, want -p build present", out)
	}
	if strings.Contains(out, "-line-filter") {
		t.Errorf("output = %q, want no -line-filter without --diff", out)
	}
	if !strings.Contains(out, "a.cc") {
		t.Errorf("output = %q, want a.cc as target", out)
	}
}

func TestRun_DiffLineFilter(t *testing.T) {
	dir := setupTestRepo(t, map[string]string{
		"b.cpp": "int b() { return 0; }\n",
	})

	// Append three lines after line 1 and stage: hunk @@ -1,0 +2,3 @@.
	content := "int b() { return 0; }\nint c() { return 1; }\nint d() { return 2; }\nint e() { return 3; }\n"
	os.WriteFile(filepath.Join(dir, "b.cpp"), []byte(content), 0o644)
	cmd := exec.Command("git", "add", "b.cpp")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git add: %v\n%s", err, out)
	}

	out, err := execute(t, dir, "--diff", "HEAD", "--dry-run")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	want := `-line-filter '[{"name":"b.cpp","lines":[[2,5]]}]'`
	if !strings.Contains(out, want) {
		t.Errorf("output = %q, want %q present", out, want)
	}
}

func TestRun_NoFilesDetected(t *testing.T) {
	dir := setupTestRepo(t, map[string]string{"README.md": "docs\n"})

	// A broken executable proves clang-tidy is never invoked.
	out, err := execute(t, dir, "-e", "/no/such/binary")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "No files detected.") {
		t.Errorf("output = %q, want %q", out, "No files detected.")
	}
}

func TestRun_KeepGoingIgnoresMarker(t *testing.T) {
	dir := setupTestRepo(t, map[string]string{"a.cc": "int main() { return 0; }\n"})
	script := fakeTidy(t, "lint noise [clang-diagnostic-error]")

	out, err := execute(t, dir, "-e", script, "--keep-going")
	if err != nil {
		t.Fatalf("execute error with keep-going: %v", err)
	}
	if !strings.Contains(out, "[clang-diagnostic-error]") {
		t.Errorf("output = %q, want marker printed verbatim", out)
	}
}

func TestRun_DiagnosticMarkerFails(t *testing.T) {
	dir := setupTestRepo(t, map[string]string{"a.cc": "int main() { return 0; }\n"})
	script := fakeTidy(t, "lint noise [clang-diagnostic-error]")

	_, err := execute(t, dir, "-e", script)
	if err == nil {
		t.Fatal("expected diagnostic error without keep-going")
	}
}

func TestRun_InvalidRegexFailsBeforeGit(t *testing.T) {
	// No git repo here: a bad pattern must fail before any git call.
	_, err := execute(t, t.TempDir(), "--regex", "(")
	if err == nil {
		t.Fatal("expected error for invalid regex")
	}
	if !strings.Contains(err.Error(), "invalid pattern") {
		t.Errorf("error = %v, want invalid pattern message", err)
	}
}

func TestRun_GlobFlagFilters(t *testing.T) {
	dir := setupTestRepo(t, map[string]string{
		"a.cc":  "int a() { return 0; }\n",
		"b.cpp": "int b() { return 0; }\n",
	})

	out, err := execute(t, dir, "--dry-run", "--glob", "*.cpp")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if strings.Contains(out, "a.cc") {
		t.Errorf("output = %q, a.cc should be filtered out", out)
	}
	if !strings.Contains(out, "b.cpp") {
		t.Errorf("output = %q, b.cpp should survive the glob", out)
	}
}

func TestRun_ExtraArgsForwarded(t *testing.T) {
	dir := setupTestRepo(t, map[string]string{"a.cc": "int main() { return 0; }\n"})

	out, err := execute(t, dir, "--dry-run", "--", "-warnings-as-errors=*")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "-warnings-as-errors=*") {
		t.Errorf("output = %q, want extra arg forwarded", out)
	}
}

func TestRun_ConfigFileEmbedded(t *testing.T) {
	dir := setupTestRepo(t, map[string]string{"a.cc": "int main() { return 0; }\n"})
	cfgPath := filepath.Join(dir, "tidy.yaml")
	os.WriteFile(cfgPath, []byte("Checks: '-*,modernize-*'\n"), 0o644)

	out, err := execute(t, dir, "--dry-run", "--config-file", cfgPath)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, `-config '{"Checks":"-*,modernize-*"}'`) {
		t.Errorf("output = %q, want quoted -config blob", out)
	}
}
