// Package store persists normalised clipboard images in the shared
// directory and lists them for the retention sweeper.
//
// All access goes through an afero.Fs rooted at the shared directory, so the
// same code runs against the OS filesystem and against in-memory filesystems
// in tests.
package store

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"go.klb.dev/clipbridge/internal/imaging"
	"go.klb.dev/clipbridge/internal/names"
)

// Ext is the extension of every persisted image.
const Ext = ".png"

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Image describes one persisted image.
type Image struct {
	// Name is the file name including Ext.
	Name string
	// Path is the host-native absolute path of the file.
	Path    string
	ModTime time.Time
	Size    int64
}

// Store reads and writes images inside one flat directory.
type Store struct {
	root afero.Fs // filesystem the directory lives on
	fs   afero.Fs // root, re-based at dir
	dir  string
	name func() string
}

// New returns a Store for dir on the OS filesystem.
func New(dir string) *Store {
	return NewFs(afero.NewOsFs(), dir)
}

// NewFs returns a Store for dir on the given filesystem.
func NewFs(root afero.Fs, dir string) *Store {
	return &Store{
		root: root,
		fs:   afero.NewBasePathFs(root, dir),
		dir:  dir,
		name: names.New,
	}
}

// WithNameFunc replaces the name generator. Intended for tests.
func (s *Store) WithNameFunc(fn func() string) *Store {
	s.name = fn
	return s
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

// Ensure creates the directory if it does not exist.
func (s *Store) Ensure() error {
	if err := s.root.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	return nil
}

// Exists reports whether the directory currently exists.
func (s *Store) Exists() bool {
	ok, err := afero.DirExists(s.root, s.dir)
	return err == nil && ok
}

// Save encodes img as PNG under a freshly generated name. The file is created
// exclusively; a partially written file is removed if encoding fails.
func (s *Store) Save(img image.Image) (Image, error) {
	name := s.name() + Ext
	f, err := s.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return Image{}, fmt.Errorf("create %s: %w", name, err)
	}

	if err := imaging.EncodePNG(f, img); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(name)
		return Image{}, fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(name)
		return Image{}, fmt.Errorf("close %s: %w", name, err)
	}

	out := Image{Name: name, Path: s.Path(name)}
	if fi, err := s.fs.Stat(name); err == nil {
		out.ModTime = fi.ModTime()
		out.Size = fi.Size()
	}
	return out, nil
}

// Path returns the host-native path of name inside the directory.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// List returns the *.png files directly inside the directory, oldest first.
// A missing directory yields an empty list and no error.
func (s *Store) List() ([]Image, error) {
	if !s.Exists() {
		return nil, nil
	}
	matches, err := doublestar.Glob(afero.NewIOFS(s.fs), "*"+Ext, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}

	out := make([]Image, 0, len(matches))
	for _, m := range matches {
		fi, err := s.fs.Stat(m)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue // removed between glob and stat
			}
			return nil, fmt.Errorf("stat %s: %w", m, err)
		}
		out = append(out, Image{
			Name:    m,
			Path:    s.Path(m),
			ModTime: fi.ModTime(),
			Size:    fi.Size(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModTime.Before(out[j].ModTime) })
	return out, nil
}

// Remove deletes the named image.
func (s *Store) Remove(name string) error {
	if err := s.fs.Remove(name); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}
