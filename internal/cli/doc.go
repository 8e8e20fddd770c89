// Package cli wires together the Cobra command for the tidydriver binary.
//
// It binds flags, orchestrates the run — list candidate files from git,
// filter them by pattern, gather changed line ranges, build and execute the
// clang-tidy invocation — and maps failures to deterministic exit codes for
// CI gating.
package cli
