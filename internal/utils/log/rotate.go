package log

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/babarot/nctrash/internal/config"
	"github.com/docker/go-units"
	"github.com/samber/lo"
)

const backupTimeFormat = "20060102-150405.000000"

// RotateWriter is an append-only log file. A write that would grow it past
// limit first moves the file aside as "<path>.<timestamp>". Only the newest
// keep backups survive; keep 0 keeps them all.
type RotateWriter struct {
	path  string
	limit int64
	keep  int

	mu   sync.Mutex
	f    *os.File
	size int64
}

func NewRotateWriter(path string, cfg config.LoggingConfig) (*RotateWriter, error) {
	limit, err := units.FromHumanSize(cfg.Rotation.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("log rotation size %q: %w", cfg.Rotation.MaxSize, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	w := &RotateWriter{path: path, limit: limit, keep: cfg.Rotation.MaxFiles}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotateWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return 0, fs.ErrClosed
	}
	// a single record larger than the limit still goes to a fresh file
	if w.size > 0 && w.size+int64(len(p)) > w.limit {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := w.f.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *RotateWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

func (w *RotateWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		return errors.Join(err, f.Close())
	}
	w.f, w.size = f, info.Size()
	return nil
}

func (w *RotateWriter) rotate() error {
	if err := w.f.Close(); err != nil {
		return err
	}
	w.f = nil

	backup := w.path + "." + time.Now().Format(backupTimeFormat)
	if err := os.Rename(w.path, backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := w.prune(); err != nil {
		return err
	}
	return w.open()
}

// prune removes the oldest backups beyond keep
func (w *RotateWriter) prune() error {
	if w.keep <= 0 {
		return nil
	}
	matches, err := filepath.Glob(globEscape(w.path) + ".*")
	if err != nil {
		return err
	}
	backups := lo.Filter(matches, func(name string, _ int) bool {
		return isBackupName(w.path, name)
	})
	if len(backups) <= w.keep {
		return nil
	}
	slices.Sort(backups)
	var errs []error
	for _, old := range backups[:len(backups)-w.keep] {
		errs = append(errs, os.Remove(old))
	}
	return errors.Join(errs...)
}

// isBackupName reports whether name is path followed by a backup timestamp
func isBackupName(path, name string) bool {
	if len(name) <= len(path)+1 {
		return false
	}
	_, err := time.Parse(backupTimeFormat, name[len(path)+1:])
	return err == nil
}

func globEscape(s string) string {
	return lo.Reduce([]rune(s), func(acc string, r rune, _ int) string {
		switch r {
		case '*', '?', '[', '\\':
			return acc + `\` + string(r)
		}
		return acc + string(r)
	}, "")
}
