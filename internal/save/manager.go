// Package save persists cube models: a JSON manifest describing each
// model next to its BCF payload.
package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/k0sti/crossworld/internal/core/bcf"
	"github.com/k0sti/crossworld/internal/core/cube"
)

// FormatVersion is bumped when the manifest layout changes
const FormatVersion = "1"

// Manifest describes one saved model
type Manifest struct {
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"`
	Name      string `json:"name"`
	Depth     uint32 `json:"depth"`
	Payload   string `json:"payload"`
}

// Manager reads and writes models under one directory
type Manager struct {
	dir string
}

// NewManager creates the save directory if needed
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("save: create dir: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Save writes a model's manifest and BCF payload
func (m *Manager) Save(name string, root *cube.Cube, depth uint32) error {
	payload := name + ".bcf"
	manifest := Manifest{
		Version:   FormatVersion,
		Timestamp: time.Now().Unix(),
		Name:      name,
		Depth:     depth,
		Payload:   payload,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("save: marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, name+".json"), data, 0o644); err != nil {
		return fmt.Errorf("save: write manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, payload), bcf.Encode(root, uint8(depth)), 0o644); err != nil {
		return fmt.Errorf("save: write payload: %w", err)
	}
	return nil
}

// Load reads a model back by name
func (m *Manager) Load(name string) (*cube.Cube, uint32, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, name+".json"))
	if err != nil {
		return nil, 0, fmt.Errorf("save: read manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, 0, fmt.Errorf("save: parse manifest: %w", err)
	}
	if manifest.Version != FormatVersion {
		return nil, 0, fmt.Errorf("save: unsupported version %q", manifest.Version)
	}

	payload, err := os.ReadFile(filepath.Join(m.dir, manifest.Payload))
	if err != nil {
		return nil, 0, fmt.Errorf("save: read payload: %w", err)
	}
	root, depth, err := bcf.Decode(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("save: decode payload: %w", err)
	}
	return root, uint32(depth), nil
}

// List returns the names of all saved models
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("save: list: %w", err)
	}
	var names []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name()[:len(e.Name())-5])
		}
	}
	return names, nil
}
