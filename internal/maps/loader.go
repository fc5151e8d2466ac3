// Package maps loads fixed obstacle maps from disk.
package maps

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/robopath/internal/maps/formats"
	"github.com/vovakirdan/robopath/internal/route"
)

// Map represents a complete map definition.
type Map struct {
	formats.Map
	FilePath string
}

// Loader handles loading maps from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new map loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all map files. Files that fail to parse
// are skipped. Returns maps sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Map, error) {
	var result []Map

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		m, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		result = append(result, m)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("maps: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (Map, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Map{}, err
	}

	for _, m := range all {
		if m.ID == id {
			return m, nil
		}
	}

	return Map{}, fmt.Errorf("maps: map not found: %s", id)
}

// ListIDs returns all map IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(all))
	for i, m := range all {
		ids[i] = m.ID
	}
	return ids, nil
}

// LoadFile loads a single map file. Maps without an ID are named after the
// file.
func LoadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, fmt.Errorf("maps: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var parsed formats.Map
	switch {
	case ext == ".yaml" || ext == ".yml":
		parsed, err = formats.ParseYAML(data)
	case formats.IsImageExtension(ext):
		parsed, err = formats.ParseImage(data, stem)
	default:
		err = fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Map{}, fmt.Errorf("maps: parsing file %s: %w", path, err)
	}

	if parsed.ID == "" {
		parsed.ID = stem
	}
	if parsed.Name == "" {
		parsed.Name = parsed.ID
	}

	return Map{Map: parsed, FilePath: path}, nil
}

// LoadGrid loads a map file and builds its grid.
func LoadGrid(path string) (Map, *route.Grid, error) {
	m, err := LoadFile(path)
	if err != nil {
		return Map{}, nil, err
	}
	g, err := m.ToGrid()
	if err != nil {
		return Map{}, nil, fmt.Errorf("maps: %s: %w", path, err)
	}
	return m, g, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
