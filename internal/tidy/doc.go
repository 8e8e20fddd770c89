// Package tidy assembles and runs the clang-tidy invocation.
//
// [Invocation] collects everything the command line needs: the executable,
// the compile-commands directory, the optional -config JSON blob, the
// -line-filter restricting diagnostics to changed ranges, pass-through
// arguments, and the target files. [Invocation.DryRun] renders the command
// without spawning anything; [Run] executes it and applies the
// diagnostic-severity policy.
package tidy
