package assessment

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads and validates an assessment record from a JSON file.
func LoadFile(path string) (*Assessment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading assessment file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates an assessment record from JSON bytes.
func Parse(data []byte) (*Assessment, error) {
	var a Assessment
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing assessment: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
