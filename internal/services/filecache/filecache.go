// Package filecache stores previously-muxed output files keyed by video
// identifier and chosen format set. Entries are write-once and evicted
// by a periodic age-based sweep.
package filecache

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ytgate/ytgate/internal/utils"
)

type Store struct {
	dir    string
	maxAge time.Duration
}

func New(dir string, maxAge time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, maxAge: maxAge}, nil
}

// Path returns the deterministic cache path for a (video, formats,
// container) combination.
func (s *Store) Path(videoID string, itags []int, container string) string {
	parts := make([]string, len(itags))
	for i, itag := range itags {
		parts[i] = strconv.Itoa(itag)
	}
	name := videoID + "-" + strings.Join(parts, "-") + "." + containerExt(container)
	return filepath.Join(s.dir, name)
}

func containerExt(container string) string {
	switch container {
	case "matroska":
		return "mkv"
	default:
		return container
	}
}

func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Create opens a pending entry. Content is written to a temp file and
// only becomes visible under the final path on Commit, so readers never
// observe a partially-written entry.
func (s *Store) Create(path string) (*PendingFile, error) {
	f, err := os.Create(path + ".part")
	if err != nil {
		return nil, err
	}
	return &PendingFile{file: f, final: path}, nil
}

// Sweep deletes every entry older than the configured maximum age.
// Concurrent reads that race a deletion simply miss and regenerate;
// removal of an already-missing file is a no-op.
func (s *Store) Sweep(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	now := time.Now()
	removed := 0
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < s.maxAge {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err == nil || os.IsNotExist(err) {
			removed++
		}
	}

	if removed > 0 {
		utils.LogInfo(ctx, "File cache sweep complete", utils.Fields{"removed": removed})
	}
	return nil
}

// StartSweeper runs Sweep on the given interval until the returned stop
// function is called.
func (s *Store) StartSweeper(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.Sweep(context.Background()); err != nil {
					utils.LogError(context.Background(), "File cache sweep failed", err)
				}
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

// PendingFile is a cache entry being written.
type PendingFile struct {
	file  *os.File
	final string
}

func (p *PendingFile) Write(b []byte) (int, error) {
	return p.file.Write(b)
}

// Commit finalizes the entry under its cache path.
func (p *PendingFile) Commit() error {
	if err := p.file.Close(); err != nil {
		os.Remove(p.file.Name())
		return err
	}
	return os.Rename(p.file.Name(), p.final)
}

// Discard drops a partial entry, leaving no trace in the cache.
func (p *PendingFile) Discard() {
	p.file.Close()
	os.Remove(p.file.Name())
}
