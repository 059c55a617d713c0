package data

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var TablesFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Source reads table files, preferring an on-disk copy under Dir so tables
// can be edited while the app runs. An empty Dir reads only the embedded copy.
type Source struct {
	Dir string
}

// Load returns the bytes of a table file.
func (s Source) Load(name string) ([]byte, error) {
	clean := cleanTablePath(name)
	if s.Dir != "" {
		if b, err := os.ReadFile(s.diskPath(clean)); err == nil {
			return b, nil
		}
	}
	b, err := TablesFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("data: read %s: %w", clean, err)
	}
	return b, nil
}

// LoadScript returns a catalog script by name.
func (s Source) LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if s.Dir != "" {
		if b, err := os.ReadFile(s.diskPath(clean)); err == nil {
			return b, nil
		}
	}
	b, err := ScriptsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("data: read %s: %w", clean, err)
	}
	return b, nil
}

// ModTime reports the modification time of the on-disk copy of name.
func (s Source) ModTime(name string) (time.Time, bool) {
	if s.Dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(s.diskPath(cleanTablePath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func (s Source) diskPath(clean string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(clean))
}

func cleanTablePath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "data/"); ok {
		s = after
	}
	return s
}

func cleanScriptPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "data/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return "scripts/" + s
}
