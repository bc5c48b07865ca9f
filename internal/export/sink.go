package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink defines the interface for storing rendered exports
type Sink interface {
	// Save saves a file and returns its path
	Save(filename string, data []byte) (string, error)
}

// DirSink implements the Sink interface using a local directory
type DirSink struct {
	basePath string
}

// NewDirSink creates a new DirSink, creating the directory if needed
func NewDirSink(basePath string) (*DirSink, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &DirSink{
		basePath: basePath,
	}, nil
}

// Save writes the export into the directory
func (d *DirSink) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(d.basePath, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return path, nil
}
