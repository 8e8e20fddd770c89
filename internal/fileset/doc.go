// Package fileset filters candidate file paths by glob and regex patterns.
//
// Globs are translated to anchored regular expressions with fnmatch
// semantics: `*` matches any run of characters, path separators included,
// `?` matches a single character, and `[...]` / `[!...]` classes are
// supported. Raw regexes and the built-in default pattern need only match a
// prefix of the path, starting at position 0.
//
// With no patterns supplied, filtering falls back to matching C and C++
// implementation files (.c, .cc, .cpp). Headers are deliberately absent:
// clang-tidy lints translation units, and headers are not compiled on
// their own.
package fileset
