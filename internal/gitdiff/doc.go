// Package gitdiff extracts changed files and changed line ranges from git.
//
// [ChangedFiles] lists files added, modified, or unmerged relative to a
// revision, [TrackedFiles] lists everything git tracks under the given paths,
// and [ChangedLines] parses the unified-diff hunk headers for one file into
// the [LineFilter] shape clang-tidy's -line-filter flag expects.
package gitdiff
