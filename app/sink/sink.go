// Package sink persists decoded rows and schemas as companion JSON files
// next to the source data file. Writes are first-write-wins: an existing
// companion file is never refreshed.
package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ohler55/ojg/oj"

	"datapreview/app/decoder"
)

// CompanionPaths derives the companion file paths for a source data file by
// replacing its extension (compression suffix included): rows go to
// <basename>.json and the schema to <basename>.schema.json, in the same
// directory as the source.
func CompanionPaths(sourcePath string) (dataPath, schemaPath string) {
	base := decoder.TrimCompressionSuffix(sourcePath)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base + ".json", base + ".schema.json"
}

// WriteJSONIfAbsent writes value as pretty-printed JSON (2-space indent) to
// path, skipping the write entirely if a file already exists there. Returns
// whether a write happened.
func WriteJSONIfAbsent(path string, value any) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("target path is empty")
	}

	// Existence check and write are not atomic; acceptable for an
	// interactively driven single session.
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	pretty := oj.JSON(value, 2)
	if err := os.WriteFile(path, []byte(pretty+"\n"), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
