package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dreampaper/dreampaper/internal/log"
	"github.com/dreampaper/dreampaper/internal/wallpaper"
)

const metaFile = "wallpaper.json"

type metadata struct {
	ImageFile   string    `json:"image_file,omitempty"`
	Format      string    `json:"format"`
	Prompt      string    `json:"prompt"`
	GeneratedAt time.Time `json:"generated_at"`
}

// FileStore keeps the wallpaper as an image file plus a JSON sidecar in a
// single directory. Each Put writes the image under a fresh name and then
// renames the sidecar naming it into place, so the sidecar is the single
// commit point: a crash mid-Put leaves the previous record intact, and the
// previous image file is only removed after the new sidecar is durable.
type FileStore struct {
	dir string

	mu      sync.RWMutex
	current *wallpaper.Wallpaper
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Put(ctx context.Context, w wallpaper.Wallpaper) error {
	log.FromContextOrDiscard(ctx).WithGroup("store").Info("persisting wallpaper", "dir", s.dir, "bytes", len(w.Image))

	imageFile := fmt.Sprintf("wallpaper-%d.img", time.Now().UnixNano())
	meta, err := json.Marshal(metadata{
		ImageFile:   imageFile,
		Format:      w.Format,
		Prompt:      w.Prompt,
		GeneratedAt: w.GeneratedAt,
	})
	if err != nil {
		return err
	}

	if err := writeDurable(filepath.Join(s.dir, imageFile), w.Image); err != nil {
		return err
	}
	if err := writeDurable(filepath.Join(s.dir, metaFile), meta); err != nil {
		return err
	}

	s.removeStrays(ctx, imageFile)

	s.mu.Lock()
	s.current = &w
	s.mu.Unlock()
	return nil
}

func (s *FileStore) Get(_ context.Context) (*wallpaper.Wallpaper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, nil
	}
	w := *s.current
	return &w, nil
}

func (s *FileStore) Restore(ctx context.Context) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, metaFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var meta metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return err
	}

	img, err := os.ReadFile(filepath.Join(s.dir, meta.ImageFile))
	if err != nil {
		return err
	}

	s.removeStrays(ctx, meta.ImageFile)

	s.mu.Lock()
	s.current = &wallpaper.Wallpaper{
		Image:       img,
		Format:      meta.Format,
		Prompt:      meta.Prompt,
		GeneratedAt: meta.GeneratedAt,
	}
	s.mu.Unlock()

	log.FromContextOrDiscard(ctx).WithGroup("store").Info("restored wallpaper", "generated_at", meta.GeneratedAt)
	return nil
}

// removeStrays deletes image files the committed sidecar no longer names:
// the previous record's image after a successful Put, or the leftover of a
// Put that died between its two renames.
func (s *FileStore) removeStrays(ctx context.Context, keep string) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "wallpaper-*.img"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if filepath.Base(m) == keep {
			continue
		}
		if err := os.Remove(m); err != nil {
			log.FromContextOrDiscard(ctx).WithGroup("store").Warn("failed to remove stray image", "file", m, "error", err)
		}
	}
}

func writeDurable(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	return syncDir(filepath.Dir(path))
}

// syncDir flushes the directory entry so a rename survives power loss.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
