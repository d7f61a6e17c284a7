package promptvault

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"
)

// SaveToPath serializes v and writes it to path. The write goes through a temporary
// file and rename, so readers never observe a partially written record.
func SaveToPath(v Variant, path string, f Format) error {
	data, err := Serialize(v, f)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("promptvault: write %s: %w", path, err)
	}
	return nil
}

// LoadFromPath reads a record file and decodes it with the registry.
func (r *Registry) LoadFromPath(path string, f Format) (Variant, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("promptvault: read %s: %w", path, err)
	}
	return r.Deserialize(f, data)
}

// LoadFS reads a record from fsys (e.g. embed.FS); the format follows the file extension.
func (r *Registry) LoadFS(fsys fs.FS, name string) (Variant, error) {
	f, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("promptvault: read fs %s: %w", name, err)
	}
	return r.Deserialize(f, data)
}
