package fileset

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// defaultPattern matches C and C++ implementation files when the caller
// supplies no patterns of their own.
const defaultPattern = `.*\.c(c|pp)?`

// Options controls filter diagnostics.
type Options struct {
	// Verbose reports files that match no pattern to stderr.
	Verbose bool
}

// Pattern is a compiled matcher tested against a repository-relative path
// from its start.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// String returns the pattern as the user supplied it (or the built-in
// default), for diagnostics.
func (p Pattern) String() string { return p.source }

// Match reports whether the pattern matches a prefix of path starting at
// position 0. Glob-derived patterns carry their own end anchor and so match
// the whole path.
func (p Pattern) Match(path string) bool { return p.re.MatchString(path) }

// Compile builds the pattern list from raw regexes and glob patterns, in
// that order. Globs translate to whole-path regexes; raw regexes match as
// prefixes. Empty inputs fall back to the default C/C++ source pattern.
// An invalid regex fails the whole compile.
func Compile(globs, regexes []string) ([]Pattern, error) {
	sources := make([]string, 0, len(regexes)+len(globs))
	exprs := make([]string, 0, len(regexes)+len(globs))
	for _, rx := range regexes {
		sources = append(sources, rx)
		exprs = append(exprs, `\A(?:`+rx+`)`)
	}
	for _, glob := range globs {
		sources = append(sources, glob)
		exprs = append(exprs, `\A(?:`+translate(glob)+`)\z`)
	}
	if len(exprs) == 0 {
		sources = append(sources, defaultPattern)
		exprs = append(exprs, `\A(?:`+defaultPattern+`)`)
	}

	patterns := make([]Pattern, len(exprs))
	for i, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", sources[i], err)
		}
		patterns[i] = Pattern{source: sources[i], re: re}
	}
	return patterns, nil
}

// Filter returns the files matching at least one pattern, preserving input
// order. Each path appears at most once in the result, even when multiple
// patterns match it or the input repeats it.
func Filter(files []string, patterns []Pattern, opts Options) []string {
	seen := make(map[string]bool)
	var matched []string
	for _, file := range files {
		if seen[file] {
			continue
		}
		if matchesAny(file, patterns) {
			seen[file] = true
			matched = append(matched, file)
		} else if opts.Verbose {
			fmt.Fprintf(os.Stderr, "%s does not match any file pattern in {%s}\n",
				file, joinSources(patterns))
		}
	}
	return matched
}

func matchesAny(file string, patterns []Pattern) bool {
	for _, p := range patterns {
		if p.Match(file) {
			return true
		}
	}
	return false
}

func joinSources(patterns []Pattern) string {
	sources := make([]string, len(patterns))
	for i, p := range patterns {
		sources[i] = p.String()
	}
	return strings.Join(sources, ", ")
}

// translate converts a shell glob to a regular expression body, fnmatch
// style: `*` matches any run of characters including path separators, `?`
// matches one character, and bracket classes pass through with `!` negation.
func translate(glob string) string {
	var b strings.Builder
	for i := 0; i < len(glob); i++ {
		switch c := glob[i]; c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			j := i + 1
			if j < len(glob) && glob[j] == '!' {
				j++
			}
			if j < len(glob) && glob[j] == ']' {
				j++
			}
			for j < len(glob) && glob[j] != ']' {
				j++
			}
			if j >= len(glob) {
				// Unterminated class matches a literal bracket.
				b.WriteString(`\[`)
				continue
			}
			class := strings.ReplaceAll(glob[i+1:j], `\`, `\\`)
			switch {
			case strings.HasPrefix(class, "!"):
				class = "^" + class[1:]
			case strings.HasPrefix(class, "^"):
				class = `\` + class
			}
			b.WriteString("[" + class + "]")
			i = j
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return b.String()
}
