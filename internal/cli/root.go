package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidydriver/tidydriver/internal/config"
	"github.com/tidydriver/tidydriver/internal/fileset"
	"github.com/tidydriver/tidydriver/internal/gitdiff"
	"github.com/tidydriver/tidydriver/internal/shell"
	"github.com/tidydriver/tidydriver/internal/tidy"
)

const version = "0.1.0"

// Exit codes for CI gating.
const (
	ExitSuccess         = 0
	ExitDiagnosticError = 1
	ExitUsageError      = 2
	ExitProcessError    = 3
)

var (
	flagExe        string
	flagGlobs      []string
	flagRegexes    []string
	flagBuildDir   string
	flagDiff       string
	flagPaths      []string
	flagDryRun     bool
	flagVerbose    bool
	flagConfigFile string
	flagKeepGoing  bool
)

var rootCmd = &cobra.Command{
	Use:   "tidydriver [flags] [-- extra clang-tidy args]",
	Short: "Run clang-tidy on your git changes",
	Long: "Tidydriver runs clang-tidy on the files that changed since a git revision,\n" +
		"restricting diagnostics to only the changed line ranges. Without --diff it\n" +
		"scans all tracked files. Candidates are filtered by glob or regex patterns;\n" +
		"by default only C and C++ implementation files are linted.",
	Version:       version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&flagExe, "clang-tidy-exe", "e", "clang-tidy", "Path to the clang-tidy executable")
	rootCmd.Flags().StringArrayVarP(&flagGlobs, "glob", "g", nil, "Only lint files matching this glob pattern (repeatable)")
	rootCmd.Flags().StringArrayVarP(&flagRegexes, "regex", "x", nil, "Only lint files matching this regular expression, from the start of the filename (repeatable)")
	rootCmd.Flags().StringVarP(&flagBuildDir, "compile-commands-dir", "c", "build", "Path to the folder containing compile_commands.json")
	rootCmd.Flags().StringVarP(&flagDiff, "diff", "d", "", "Git revision to diff against to get changes")
	rootCmd.Flags().StringArrayVarP(&flagPaths, "paths", "p", []string{"."}, "Lint only the given paths, recursively (repeatable)")
	rootCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "Only show the command to be executed, without running it")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose output")
	rootCmd.Flags().StringVar(&flagConfigFile, "config-file", "", "Path to a clang-tidy config file (default \".clang-tidy\")")
	rootCmd.Flags().BoolVarP(&flagKeepGoing, "keep-going", "k", false, "Don't error on compiler errors (clang-diagnostic-error)")
}

// Run executes the root command and returns an exit code.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		switch {
		case shell.IsProcessError(err):
			return ExitProcessError
		case tidy.IsDiagnosticError(err):
			return ExitDiagnosticError
		default:
			return ExitUsageError
		}
	}
	return ExitSuccess
}

func runRoot(cmd *cobra.Command, extraArgs []string) error {
	// Pattern compilation happens before any git process runs so a bad
	// pattern fails at startup.
	patterns, err := fileset.Compile(flagGlobs, flagRegexes)
	if err != nil {
		return err
	}

	opts := shell.Options{Verbose: flagVerbose}
	paths := normalizePaths(flagPaths)

	var files []string
	if flagDiff != "" {
		files, err = gitdiff.ChangedFiles(flagDiff, paths, opts)
	} else {
		files, err = gitdiff.TrackedFiles(paths, opts)
	}
	if err != nil {
		return err
	}

	files = fileset.Filter(files, patterns, fileset.Options{Verbose: flagVerbose})

	// clang-tidy errors when it gets no input files.
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No files detected.")
		return nil
	}

	var lineFilters []gitdiff.LineFilter
	if flagDiff != "" {
		for _, file := range files {
			filter, err := gitdiff.ChangedLines(flagDiff, file, opts)
			if err != nil {
				return err
			}
			lineFilters = append(lineFilters, filter)
		}
	}

	configJSON, err := config.Resolve(flagConfigFile)
	if err != nil {
		return err
	}

	inv := tidy.Invocation{
		Exe:                flagExe,
		CompileCommandsDir: flagBuildDir,
		ConfigJSON:         configJSON,
		LineFilters:        lineFilters,
		ExtraArgs:          extraArgs,
		Files:              files,
	}

	if flagDryRun {
		rendered, err := inv.DryRun()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	}

	output, err := tidy.Run(inv, flagKeepGoing, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// normalizePaths strips trailing slashes before handing paths to git.
func normalizePaths(paths []string) []string {
	normalized := make([]string, len(paths))
	for i, path := range paths {
		trimmed := strings.TrimRight(path, "/")
		if trimmed == "" {
			trimmed = "/"
		}
		normalized[i] = trimmed
	}
	return normalized
}
