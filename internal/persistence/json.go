package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const indent = "  "

// SaveJSON encodes the given object as indented JSON and writes it to filePath.
// It creates necessary directories if they don't exist. The file is written
// to a temporary sibling first and renamed into place, so readers never see
// a partially written document.
func SaveJSON(filePath string, object interface{}) error {
	// Ensure the directory exists
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(object, "", indent)
	if err != nil {
		return fmt.Errorf("failed to json encode for file %s: %w", filePath, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", filePath, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move %s into place: %w", filePath, err)
	}
	return nil
}

// LoadJSON decodes the JSON file at filePath into the provided object pointer.
// If the file does not exist, it returns os.ErrNotExist, allowing callers to handle
// fresh starts gracefully.
func LoadJSON(filePath string, objectPointer interface{}) error {
	data, err := os.ReadFile(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist // Return specific error for non-existent file
		}
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}

	if err := json.Unmarshal(data, objectPointer); err != nil {
		return fmt.Errorf("failed to json decode from file %s: %w", filePath, err)
	}
	return nil
}
