// Tidydriver runs clang-tidy on changes detected via git.
//
// By default clang-tidy lints every file it is pointed at, so touching a few
// lines still produces warnings for the whole file. Tidydriver asks git for
// the exact line ranges changed since a revision and makes clang-tidy report
// only those, which keeps CI runs fast and diagnostics relevant. The
// git-enabled mode is optional; full scans of tracked files work too, and
// both modes filter candidates via glob or regular expressions.
//
// Usage:
//
//	tidydriver                          # lint all tracked C/C++ sources
//	tidydriver -d HEAD~1                # lint only lines changed since HEAD~1
//	tidydriver -g '*.cpp' -p src        # restrict by glob and path
//	tidydriver -n -d HEAD               # show the clang-tidy command only
//	tidydriver -- -warnings-as-errors=* # forward extra args to clang-tidy
package main
