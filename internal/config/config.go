package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the conventional clang-tidy config file name, looked up in
// the current directory when no explicit path is given.
const DefaultFile = ".clang-tidy"

// Resolve loads the clang-tidy configuration and returns it as a JSON
// string. An explicit path wins; otherwise DefaultFile is used if present.
// Returns "" when no config file applies. A missing explicit path or
// malformed YAML is an error.
func Resolve(path string) (string, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return "", nil
		}
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading config file: %w", err)
	}
	return toJSON(data)
}

func toJSON(data []byte) (string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("parsing config file: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding config as JSON: %w", err)
	}
	return string(out), nil
}
