package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// Workspace manages per-run output directories under the configured work
// directory and enforces single-writer access with a file lock.
type Workspace struct {
	root     string
	lockPath string
	lock     *flock.Flock
}

// Open prepares the work directory and acquires its lock.
func Open(workDir string) (*Workspace, error) {
	workDir = strings.TrimSpace(workDir)
	if workDir == "" {
		return nil, errors.New("workspace requires a work directory")
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure work directory: %w", err)
	}

	lockPath := filepath.Join(workDir, ".mccread.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire work directory lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("work directory %s is in use by another decode", workDir)
	}

	return &Workspace{root: workDir, lockPath: lockPath, lock: lock}, nil
}

// Root returns the work directory path.
func (w *Workspace) Root() string {
	return w.root
}

// RunDir creates and returns the output directory for a decode run.
func (w *Workspace) RunDir(runID string) (string, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return "", errors.New("run directory requires a run id")
	}
	dir := filepath.Join(w.root, "run-"+runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run directory: %w", err)
	}
	return dir, nil
}

// Remove deletes the output directory for a decode run.
func (w *Workspace) Remove(runID string) error {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil
	}
	return os.RemoveAll(filepath.Join(w.root, "run-"+runID))
}

// Close releases the work directory lock.
func (w *Workspace) Close() error {
	if w.lock == nil {
		return nil
	}
	return w.lock.Unlock()
}
