// Package shell runs external commands and captures their output.
//
// Both the git queries and the clang-tidy invocation go through [Run], so
// process failures surface uniformly as a [*ProcessExecutionError] carrying
// the command line and everything the child wrote. There are no retries:
// a non-zero exit from any child aborts the whole run.
package shell
