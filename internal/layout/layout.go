// Package layout reads the <name>/<version>.<ext> record tree shared by the
// vault backends. All functions work on an fs.FS rooted at the vault root.
package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/skosovsky/promptvault"
)

// File is one stored record.
type File struct {
	Version string
	Path    string // slash-separated, relative to the vault root
	Format  promptvault.Format
}

// Lookup controls version resolution.
type Lookup struct {
	Prefer promptvault.Format       // wins when one version exists in several formats
	Order  promptvault.VersionOrder // decides "latest"
}

// formatOf maps a record file name to its version and format.
func formatOf(name string) (string, promptvault.Format, bool) {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		if version, ok := strings.CutSuffix(name, ext); ok && version != "" {
			f, _ := promptvault.ParseFormat(ext[1:])
			return version, f, true
		}
	}
	return "", "", false
}

// Scan returns the record files of name in directory enumeration order.
// A missing or non-directory name yields promptvault.ErrNotFound.
func Scan(fsys fs.FS, name string) ([]File, error) {
	if err := promptvault.ValidateName(name); err != nil {
		return nil, err
	}
	info, err := fs.Stat(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", promptvault.ErrNotFound, name)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", promptvault.ErrNotFound, name)
	}
	entries, err := fs.ReadDir(fsys, name)
	if err != nil {
		return nil, err
	}
	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		version, f, ok := formatOf(e.Name())
		if !ok {
			continue
		}
		files = append(files, File{Version: version, Path: path.Join(name, e.Name()), Format: f})
	}
	return files, nil
}

// Versions returns the distinct versions in files, in first-seen order.
func Versions(files []File) []string {
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if !seen[f.Version] {
			seen[f.Version] = true
			out = append(out, f.Version)
		}
	}
	return out
}

// Has reports whether version is stored for name in any format.
func Has(fsys fs.FS, name, version string) (bool, error) {
	files, err := Scan(fsys, name)
	if err != nil {
		if errors.Is(err, promptvault.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	for _, f := range files {
		if f.Version == version {
			return true, nil
		}
	}
	return false, nil
}

// Locate picks the record file for name at version; an empty version resolves to
// the latest under l.Order.
func Locate(fsys fs.FS, name, version string, l Lookup) (File, error) {
	files, err := Scan(fsys, name)
	if err != nil {
		return File{}, err
	}
	if version == "" {
		latest, ok := l.Order.Latest(Versions(files))
		if !ok {
			return File{}, fmt.Errorf("%w: no versions for %q", promptvault.ErrNotFound, name)
		}
		version = latest
	}
	var found *File
	for i := range files {
		if files[i].Version != version {
			continue
		}
		if found == nil || files[i].Format == l.Prefer {
			found = &files[i]
		}
	}
	if found == nil {
		return File{}, fmt.Errorf("%w: version %q of %q", promptvault.ErrNotFound, version, name)
	}
	return *found, nil
}

// Load locates and decodes a record with reg.
func Load(fsys fs.FS, reg *promptvault.Registry, name, version string, l Lookup) (promptvault.Variant, error) {
	f, err := Locate(fsys, name, version, l)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	v, err := reg.Deserialize(f.Format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return v, nil
}

// List returns one entry per template directory under the root, in enumeration order.
func List(fsys fs.FS) ([]promptvault.Entry, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	out := make([]promptvault.Entry, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || promptvault.ValidateName(e.Name()) != nil {
			continue
		}
		files, err := Scan(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, promptvault.Entry{Name: e.Name(), Versions: Versions(files)})
	}
	return out, nil
}
