package model

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrModelNotFound is returned by Load when the model file does not exist.
var ErrModelNotFound = errors.New("model file not found")

type document struct {
	Database struct {
		Name   string `yaml:"name,omitempty"`
		Driver string `yaml:"driver,omitempty"`
	} `yaml:"database"`
	Entities []*Entity `yaml:"entities"`
}

// Load reads a model file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}
	return m, nil
}

// Decode parses a YAML model document.
func Decode(data []byte) (*Model, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	m := New()
	m.DatabaseName = doc.Database.Name
	m.DatabaseDriver = doc.Database.Driver
	for i, e := range doc.Entities {
		if e == nil || e.Name == "" {
			return nil, fmt.Errorf("entity #%d has no name", i+1)
		}
		if m.Entity(e.Name) != nil {
			return nil, fmt.Errorf("duplicate entity %q", e.Name)
		}
		if err := checkEntity(e); err != nil {
			return nil, err
		}
		m.StoreEntity(e)
	}
	return m, nil
}

func checkEntity(e *Entity) error {
	seen := make(map[string]bool, len(e.Columns))
	for _, c := range e.Columns {
		if c == nil || c.Name == "" {
			return fmt.Errorf("entity %q: column without name", e.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("entity %q: duplicate column %q", e.Name, c.Name)
		}
		seen[c.Name] = true
	}
	seenFK := make(map[string]bool, len(e.ForeignKeys))
	for _, fk := range e.ForeignKeys {
		if fk == nil || fk.Name == "" {
			return fmt.Errorf("entity %q: foreign key without name", e.Name)
		}
		if seenFK[fk.Name] {
			return fmt.Errorf("entity %q: duplicate foreign key %q", e.Name, fk.Name)
		}
		seenFK[fk.Name] = true
	}
	return nil
}

// Encode writes m as YAML, entities sorted by name.
func Encode(w io.Writer, m *Model) error {
	var doc document
	doc.Database.Name = m.DatabaseName
	doc.Database.Driver = m.DatabaseDriver
	doc.Entities = m.Entities()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes m to path through a temporary file in the same directory, so a
// failed write never leaves a truncated model behind.
func Save(path string, m *Model) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, m); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace model file: %w", err)
	}
	return nil
}
