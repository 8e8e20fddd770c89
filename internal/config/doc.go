// Package config resolves the clang-tidy configuration to pass via -config.
//
// Precedence (highest to lowest):
//  1. An explicit --config-file path
//  2. A .clang-tidy file in the current directory
//  3. None (clang-tidy falls back to its own discovery)
//
// clang-tidy config files are YAML, but the -config flag wants a JSON blob,
// so [Resolve] decodes the file and re-encodes it as a single JSON string.
package config
