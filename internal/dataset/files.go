// Package dataset reads and writes the JSON files passed between the
// pipeline steps.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"geoquiz/internal/model"
)

var (
	ErrMissingElements = errors.New("raw payload has no elements array")
	ErrEmptyDataset    = errors.New("dataset is empty")
)

// WriteJSON writes v indented with two spaces, creating parent directories.
// Non-ASCII text is written as-is.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadJSON decodes the file at path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// WriteRaw re-indents a raw Overpass payload and writes it unchanged otherwise.
func WriteRaw(path string, payload []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return fmt.Errorf("indent %s: %w", path, err)
	}
	buf.WriteByte('\n')

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DecodeRaw parses an Overpass payload, requiring an elements array.
func DecodeRaw(payload []byte) (*model.OverpassResponse, error) {
	var resp model.OverpassResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decode overpass payload: %w", err)
	}
	if resp.Elements == nil {
		return nil, ErrMissingElements
	}
	return &resp, nil
}

// LoadRaw reads and parses a raw payload file.
func LoadRaw(path string) (*model.OverpassResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	resp, err := DecodeRaw(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return resp, nil
}

// LoadCities reads the filtered dataset.
func LoadCities(path string) ([]model.CityRecord, error) {
	var cities []model.CityRecord
	if err := ReadJSON(path, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// SaveCities writes the filtered dataset, replacing any previous file.
func SaveCities(path string, cities []model.CityRecord) error {
	if cities == nil {
		cities = []model.CityRecord{}
	}
	return WriteJSON(path, cities)
}
