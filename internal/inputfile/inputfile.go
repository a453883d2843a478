// Package inputfile reads a purchase form snapshot from disk.
package inputfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/vehicle-decision/internal/engine"
	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned when an input document holds no fields.
var ErrEmpty = errors.New("input document is empty")

// Load reads the inputs at path. Files ending in .json are decoded as JSON;
// everything else is decoded as YAML.
func Load(path string) (*engine.VehicleInputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inputs %s: %w", path, err)
	}

	var in *engine.VehicleInputs
	if strings.EqualFold(filepath.Ext(path), ".json") {
		in, err = DecodeJSON(bytes.NewReader(data))
	} else {
		in, err = DecodeYAML(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode inputs %s: %w", path, err)
	}
	return in, nil
}

// DecodeYAML decodes a single YAML document. Malformed field values are kept
// for validation rather than rejected.
func DecodeYAML(r io.Reader) (*engine.VehicleInputs, error) {
	var in engine.VehicleInputs
	if err := yaml.NewDecoder(r).Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	return &in, nil
}

// DecodeJSON decodes a single JSON object.
func DecodeJSON(r io.Reader) (*engine.VehicleInputs, error) {
	var in engine.VehicleInputs
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	return &in, nil
}

// Write encodes in as YAML, the format Load reads back.
func Write(w io.Writer, in *engine.VehicleInputs) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(in); err != nil {
		return fmt.Errorf("failed to encode inputs: %w", err)
	}
	return enc.Close()
}
