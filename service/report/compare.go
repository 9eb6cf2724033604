package report

import (
	"bytes"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// Mismatch describes how actual results differ from expected ones.
type Mismatch struct {
	Patch   string
	Hunks   int
	Added   int
	Deleted int
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("completions differ: %d hunk(s), +%d -%d lines", m.Hunks, m.Added, m.Deleted)
}

// Compare returns nil when expected and actual match, ignoring trailing
// whitespace at line ends and at the end of input.
func Compare(expected, actual []byte) (*Mismatch, error) {
	expectedLines := difflib.SplitLines(normalize(expected))
	actualLines := difflib.SplitLines(normalize(actual))
	patch, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        expectedLines,
		B:        actualLines,
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	if err != nil {
		return nil, fmt.Errorf("diff generation: %w", err)
	}
	if patch == "" {
		return nil, nil
	}
	fileDiff, err := sgdiff.ParseFileDiff([]byte(patch))
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}
	stat := fileDiff.Stat()
	return &Mismatch{
		Patch:   patch,
		Hunks:   len(fileDiff.Hunks),
		Added:   int(stat.Added + stat.Changed),
		Deleted: int(stat.Deleted + stat.Changed),
	}, nil
}

func normalize(data []byte) string {
	lines := bytes.Split(bytes.TrimSpace(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))), []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " \t")
	}
	if len(lines) == 1 && len(lines[0]) == 0 {
		return ""
	}
	return string(bytes.Join(lines, []byte("\n"))) + "\n"
}
