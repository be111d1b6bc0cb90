// Package store persists flattened screenshots as PNG files and watches the
// save directory for changes so the shell can refresh its listing.
package store

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// ErrUnwritable reports that the save directory cannot be created or
// written. The editor session stays open so the user can retry.
var ErrUnwritable = errors.New("save directory not writable")

// Store writes screenshots into one directory.
type Store struct {
	dir string
}

// DefaultDir is the screenshots folder under the user's Pictures directory.
func DefaultDir() string {
	pictures := xdg.UserDirs.Pictures
	if pictures == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "Screenshots"
		}
		pictures = filepath.Join(home, "Pictures")
	}
	return filepath.Join(pictures, "Screenshots")
}

// New creates the directory if needed and returns a store over it.
// dir == "" selects DefaultDir.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: %w: %v", ErrUnwritable, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the save directory.
func (s *Store) Dir() string { return s.dir }

// Filename formats the canonical screenshot filename for a capture time.
func Filename(t time.Time) string {
	return fmt.Sprintf("screenshot_%s.png", t.Format("20060102_150405"))
}

// Save writes img as PNG under the suggested filename and returns the final
// path. An existing file is never overwritten: collisions (including edited
// re-saves of an earlier capture) get a numeric suffix.
func (s *Store) Save(img image.Image, suggested string) (string, error) {
	// The suggestion is a bare filename; strip any path components so a
	// caller-supplied name cannot escape the save directory.
	suggested = filepath.Base(suggested)
	if suggested == "" || suggested == "." || suggested == ".." || suggested == string(filepath.Separator) {
		suggested = Filename(time.Now())
	}
	path := s.uniquePath(suggested)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("store: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("store: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("store: close %s: %w", path, err)
	}
	log.Printf("Store: saved %s", path)
	return path, nil
}

// LoadImage reads a previously saved screenshot back for re-editing.
func (s *Store) LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", path, err)
	}
	return img, nil
}

// List returns the saved screenshot paths, newest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("store: read dir: %w", err)
	}
	type dated struct {
		path string
		mod  time.Time
	}
	var files []dated
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, dated{path: filepath.Join(s.dir, e.Name()), mod: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].mod.After(files[j].mod) })
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.path)
	}
	return out, nil
}

// uniquePath appends _1, _2, ... before the extension until the name is
// unused.
func (s *Store) uniquePath(name string) string {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return path
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := filepath.Join(s.dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
	}
}
