package gitdiff

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// weightsPathspec restricts git diffs to generated weight files.
const weightsPathspec = "*/weights/*"

// Result holds the collected diff and where it came from.
type Result struct {
	Diff   string
	Source string // "git", "file", or "stdin"
	Range  string // revision range or file path
}

// Range returns the weight-file diff for a revision range. When
// mergeBase is set, a two-dot range is widened to the three-dot form so
// the comparison runs against the merge base rather than the tip.
func Range(revRange string, mergeBase bool) (Result, error) {
	diffRange := revRange
	if mergeBase && strings.Contains(revRange, "..") && !strings.Contains(revRange, "...") {
		diffRange = strings.Replace(revRange, "..", "...", 1)
	}
	out, err := gitOutput("diff", diffRange, "--", weightsPathspec)
	if err != nil {
		return Result{}, fmt.Errorf("git diff %s: %w", revRange, err)
	}
	return Result{Diff: out, Source: "git", Range: revRange}, nil
}

// File reads a saved diff from path.
func File(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading diff file: %w", err)
	}
	return Result{Diff: string(data), Source: "file", Range: path}, nil
}

// Stdin reads a diff from r until EOF.
func Stdin(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading stdin: %w", err)
	}
	return Result{Diff: string(data), Source: "stdin"}, nil
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
