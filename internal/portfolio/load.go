package portfolio

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a portfolio document from a JSON file and checks its structural
// invariants.
func Load(path string) (*Portfolio, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio document: %w", err)
	}
	return Parse(b)
}

// Parse decodes a portfolio document from JSON bytes.
func Parse(b []byte) (*Portfolio, error) {
	var p Portfolio
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode portfolio document: %w", err)
	}
	if err := p.CheckInvariants(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes the document back as indented JSON, matching what the editor
// persists.
func Save(p *Portfolio, path string) error {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode portfolio document: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write portfolio document: %w", err)
	}
	return nil
}
