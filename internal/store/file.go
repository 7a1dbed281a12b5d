// Package store persists saved sessions.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jinyier/jinyier/internal/models"
)

const savesFile = "saves.yaml"

type savesDocument struct {
	Version   int               `yaml:"version"`
	Snapshots []models.Snapshot `yaml:"snapshots"`
}

const savesVersion = 1

// File keeps every snapshot in a single YAML document under a directory.
type File struct {
	dir string
}

// NewFile stores snapshots under dir, which is created on first write.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

func (f *File) path() string {
	return filepath.Join(f.dir, savesFile)
}

func (f *File) List(ctx context.Context) ([]models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path())
	if errors.Is(err, os.ErrNotExist) {
		return []models.Snapshot{}, nil
	}
	if err != nil {
		return nil, err
	}

	var doc savesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path(), err)
	}
	if doc.Version > savesVersion {
		return nil, fmt.Errorf("%s has version %d, newest supported is %d", f.path(), doc.Version, savesVersion)
	}
	if doc.Snapshots == nil {
		doc.Snapshots = []models.Snapshot{}
	}
	return doc.Snapshots, nil
}

func (f *File) Write(ctx context.Context, snapshots []models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(savesDocument{Version: savesVersion, Snapshots: snapshots})
	if err != nil {
		return err
	}

	// Write to a sibling file first so a crash never leaves a torn document.
	tmp := f.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path())
}
