package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Options controls command execution behavior.
type Options struct {
	// Verbose echoes each command line to stderr before running it.
	Verbose bool
}

// ProcessExecutionError reports a child process that exited non-zero.
type ProcessExecutionError struct {
	Command []string
	Output  string
	Err     error
}

func (e *ProcessExecutionError) Error() string {
	return fmt.Sprintf("error executing %s: %s", strings.Join(e.Command, " "), e.Output)
}

func (e *ProcessExecutionError) Unwrap() error { return e.Err }

// IsProcessError reports whether err is (or wraps) a ProcessExecutionError.
func IsProcessError(err error) bool {
	var pe *ProcessExecutionError
	return errors.As(err, &pe)
}

// Run executes a command and returns its trimmed standard output.
// Standard error passes through to the parent so operators see git and
// clang-tidy warnings as they happen. A non-zero exit returns a
// *ProcessExecutionError with whatever output was captured.
func Run(args []string, opts Options) (string, error) {
	if opts.Verbose {
		fmt.Fprintln(os.Stderr, strings.Join(args, " "))
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	output := strings.TrimSpace(string(out))
	if err != nil {
		return "", &ProcessExecutionError{
			Command: args,
			Output:  output,
			Err:     err,
		}
	}
	return output, nil
}
