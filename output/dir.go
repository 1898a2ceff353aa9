// Package output manages the output directory of a conversion run.
//
// A Dir holds an exclusive lock on the directory for the whole run and
// replaces files atomically, so readers never see a partial graph.
package output

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// LockFile is the name of the run lock inside the output directory.
const LockFile = ".m0convert.lock"

const lockRetryInterval = 100 * time.Millisecond

// Dir is a locked output directory.
type Dir struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open creates the directory if needed and takes the run lock, waiting at
// most timeout for a concurrent run to release it.
func Open(ctx context.Context, path string, timeout time.Duration, logger *slog.Logger) (*Dir, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(path, LockFile))
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ok, err := lock.TryLockContext(lockCtx, lockRetryInterval)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("lock output directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	logger.Debug("Output directory locked", "path", path)
	return &Dir{path: path, lock: lock, logger: logger}, nil
}

// Path returns the location of a file of the directory.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.path, name)
}

// WriteFile replaces a file with data. The content is written to a temporary
// file of the same directory, then renamed over the target.
func (d *Dir) WriteFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(d.path, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		// No-op once renamed.
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), d.Path(name)); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	d.logger.Info("Wrote file", "path", d.Path(name), "bytes", len(data))
	return nil
}

// WriteLines writes one line per entry, each terminated by a line feed.
func (d *Dir) WriteLines(name string, lines []string) error {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return d.WriteFile(name, []byte(sb.String()))
}

// Close releases the run lock. The lock file is left in place.
func (d *Dir) Close() error {
	if err := d.lock.Unlock(); err != nil {
		return fmt.Errorf("unlock output directory: %w", err)
	}
	return nil
}
