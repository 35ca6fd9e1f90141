package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/talent-match/internal/schemas"
	"go.yaml.in/yaml/v3"
)

// loadDocument reads a JSON or YAML file, validates it against the named embedded schema
// and decodes it into T. YAML is recognised by the .yaml and .yml extensions.
func loadDocument[T any](path, schemaName string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	data, err = toJSON(path, data)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemaName, data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc, nil
}

func toJSON(path string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s to JSON: %w", path, err)
		}
		return out, nil
	default:
		return data, nil
	}
}
