package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// readJSON decodes the JSON file at path into v.
func readJSON(path string, v any) error {
	if path == "" {
		return fmt.Errorf("no file given")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
