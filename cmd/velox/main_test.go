package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func captureRun(t *testing.T, argv []string) (code int) {
	t.Helper()
	outFile, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	errFile, err := os.CreateTemp(t.TempDir(), "err")
	if err != nil {
		t.Fatal(err)
	}
	defer outFile.Close()
	defer errFile.Close()
	return run(argv, outFile, errFile)
}

func TestRunExitsZeroOnMatch(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.go", "package main\n\nfunc needle() {}\n")

	code := captureRun(t, []string{"needle", dir})
	if code != exitMatch {
		t.Errorf("exit code = %d, want %d", code, exitMatch)
	}
}

func TestRunExitsOneOnNoMatch(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.go", "package main\n")

	code := captureRun(t, []string{"totallyabsentpattern", dir})
	if code != exitNoMatch {
		t.Errorf("exit code = %d, want %d", code, exitNoMatch)
	}
}

func TestRunExitsTwoOnBadPattern(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.go", "package main\n")

	code := captureRun(t, []string{"(unclosed", dir})
	if code != exitError {
		t.Errorf("exit code = %d, want %d", code, exitError)
	}
}

func TestRunRespectsGitignore(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, ".gitignore", "ignored.go\n")
	writeTestFile(t, dir, "ignored.go", "package main\n\nfunc needle() {}\n")
	writeTestFile(t, dir, "kept.go", "package main\n\nfunc needle() {}\n")

	code := captureRun(t, []string{"needle", dir})
	if code != exitMatch {
		t.Errorf("exit code = %d, want %d", code, exitMatch)
	}
}

func TestRunFilesOnlyMode(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.go", "package main\n")

	code := captureRun(t, []string{"--files", dir})
	if code != exitMatch {
		t.Errorf("exit code = %d, want %d", code, exitMatch)
	}
}
