package tidy

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidydriver/tidydriver/internal/gitdiff"
	"github.com/tidydriver/tidydriver/internal/shell"
)

// fatalMarker in clang-tidy output means the compiler itself could not make
// sense of a translation unit. Diagnostics past that point are unreliable,
// so the run fails unless keep-going is requested.
const fatalMarker = "[clang-diagnostic-error]"

// jsonArg matches arguments that are a complete JSON array or object, which
// need single quotes to survive a shell.
var jsonArg = regexp.MustCompile(`^[{\[].*[\]}]$`)

// Invocation describes one clang-tidy run.
type Invocation struct {
	Exe                string
	CompileCommandsDir string
	ConfigJSON         string
	LineFilters        []gitdiff.LineFilter
	ExtraArgs          []string
	Files              []string
}

// DiagnosticError reports clang-tidy output containing compiler errors even
// though the process itself exited zero.
type DiagnosticError struct {
	Output string
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("found clang-diagnostic-errors in clang-tidy output: %s", e.Output)
}

// IsDiagnosticError reports whether err is (or wraps) a DiagnosticError.
func IsDiagnosticError(err error) bool {
	var de *DiagnosticError
	return errors.As(err, &de)
}

// Args assembles the full clang-tidy argument vector.
func (inv Invocation) Args() ([]string, error) {
	args := []string{inv.Exe, "-p", inv.CompileCommandsDir}
	if inv.ConfigJSON != "" {
		args = append(args, "-config", inv.ConfigJSON)
	}
	if len(inv.LineFilters) > 0 {
		filters, err := gitdiff.MarshalFilters(inv.LineFilters)
		if err != nil {
			return nil, fmt.Errorf("encoding line filters: %w", err)
		}
		args = append(args, "-line-filter", filters)
	}
	args = append(args, inv.ExtraArgs...)
	args = append(args, inv.Files...)
	return args, nil
}

// DryRun renders the command as a shell-pasteable string without spawning a
// process. JSON-shaped arguments are wrapped in single quotes.
func (inv Invocation) DryRun() (string, error) {
	args, err := inv.Args()
	if err != nil {
		return "", err
	}
	quoted := make([]string, len(args))
	for i, arg := range args {
		if jsonArg.MatchString(arg) {
			quoted[i] = "'" + arg + "'"
		} else {
			quoted[i] = arg
		}
	}
	return strings.Join(quoted, " "), nil
}

// Run executes the invocation and returns the captured output. A non-zero
// exit is always fatal. A zero exit with the fatal-diagnostic marker in the
// output fails with a *DiagnosticError unless keepGoing is set.
func Run(inv Invocation, keepGoing bool, opts shell.Options) (string, error) {
	args, err := inv.Args()
	if err != nil {
		return "", err
	}
	output, err := shell.Run(args, opts)
	if err != nil {
		return "", err
	}
	if !keepGoing && strings.Contains(output, fatalMarker) {
		return "", &DiagnosticError{Output: output}
	}
	return output, nil
}
