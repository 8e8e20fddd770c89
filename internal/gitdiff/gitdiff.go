package gitdiff

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidydriver/tidydriver/internal/shell"
)

// Range is a contiguous block of changed lines, 1-indexed, as
// [start, start+count]. It marshals to a two-element JSON array.
type Range [2]int

// LineFilter restricts clang-tidy diagnostics to the changed ranges of one
// file. Ranges appear in hunk order, top to bottom through the file.
type LineFilter struct {
	Name  string  `json:"name"`
	Lines []Range `json:"lines"`
}

// MarshalFilters serializes line filters for clang-tidy's -line-filter flag.
func MarshalFilters(filters []LineFilter) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// hunkPattern matches unified-diff hunk headers:
// @@ -oldStart,oldCount +newStart[,newCount] @@
// Single-line hunks omit the ,newCount group.
var hunkPattern = regexp.MustCompile(`(?m)^@@\s+-\d+,\d+\s+\+(\d+)(?:,(\d+))?\s+@@`)

// ChangedFiles lists files that are added, modified, or unmerged relative to
// revision under the given paths. Whitespace-only changes are ignored.
func ChangedFiles(revision string, paths []string, opts shell.Options) ([]string, error) {
	args := []string{
		"git", "diff-index",
		"--diff-filter=AMU", "--ignore-all-space", "--name-only",
		revision,
	}
	out, err := shell.Run(append(args, paths...), opts)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// TrackedFiles lists all files git tracks under the given paths.
func TrackedFiles(paths []string, opts shell.Options) ([]string, error) {
	out, err := shell.Run(append([]string{"git", "ls-files"}, paths...), opts)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// ChangedLines returns the line ranges of file that changed since revision,
// one Range per diff hunk. A hunk header without an explicit new-line count
// describes a single changed line.
func ChangedLines(revision, file string, opts shell.Options) (LineFilter, error) {
	out, err := shell.Run([]string{"git", "diff-index", "--unified=0", revision, file}, opts)
	if err != nil {
		return LineFilter{}, err
	}
	return LineFilter{Name: file, Lines: parseHunks(out)}, nil
}

func parseHunks(diff string) []Range {
	// Initialized so a hunkless diff serializes as "lines": [], which is
	// what clang-tidy expects, rather than null.
	ranges := []Range{}
	for _, m := range hunkPattern.FindAllStringSubmatch(diff, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		count := 1
		if m[2] != "" {
			if n, err := strconv.Atoi(m[2]); err == nil {
				count = n
			}
		}
		ranges = append(ranges, Range{start, start + count})
	}
	return ranges
}

// splitLines splits newline-delimited git output, dropping empty entries so
// an empty diff yields an empty list rather than [""].
func splitLines(out string) []string {
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files
}
