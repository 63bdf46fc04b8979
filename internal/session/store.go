package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/errors"
)

// LatestFileName is the fixed name of the mutable "latest session" pointer.
const LatestFileName = "latest.json"

// archiveTimeFormat names archival snapshots to minute granularity.
// Two saves within the same minute overwrite the same archive.
const archiveTimeFormat = "2006-01-02_15-04"

// FileStore persists sessions as JSON files in a single data directory.
// Every save writes two artifacts: an immutable timestamped archive and
// the latest pointer, which is fully replaced on each save. There is no
// cross-process coordination: if two processes save concurrently, the
// last writer wins and the earlier update is silently lost.
type FileStore struct {
	dataDir string
	mu      sync.RWMutex
}

// NewFileStore creates a FileStore rooted at the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dataDir: dataDir}, nil
}

// DataDir returns the directory this store writes to.
func (fs *FileStore) DataDir() string {
	return fs.dataDir
}

// LatestPath returns the full path of the latest pointer file.
func (fs *FileStore) LatestPath() string {
	return filepath.Join(fs.dataDir, LatestFileName)
}

// Save persists the session, writing both the timestamped archive and the
// latest pointer. Both writes are atomic (write-to-temp-then-rename), so a
// reader never observes a partially-written file. Returns the archive's
// filename.
func (fs *FileStore) Save(ctx context.Context, s *Session) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if s == nil {
		return "", errors.NewValidationError("session cannot be nil").WithField("session")
	}

	data, err := s.Encode()
	if err != nil {
		return "", err
	}

	stamp := s.CreatedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	archiveName := fmt.Sprintf("tasks_%s.json", stamp.Format(archiveTimeFormat))

	if err := atomicWriteFile(filepath.Join(fs.dataDir, archiveName), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}
	if err := atomicWriteFile(fs.LatestPath(), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write latest pointer: %w", err)
	}

	return archiveName, nil
}

// LoadLatest reads the latest pointer and decodes it into a Session.
// Returns a NotFoundError (matching ErrNoSavedSession) when nothing has
// been saved yet, and an error matching ErrSessionCorrupted when the file
// exists but fails structural validation. The two are distinct so callers
// can tell an expected first run from unreadable saved data.
func (fs *FileStore) LoadLatest(ctx context.Context) (*Session, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.LatestPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("session", "latest")
		}
		return nil, fmt.Errorf("failed to read latest pointer: %w", err)
	}

	s, err := DecodeSession(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrSessionCorrupted, err)
	}
	return s, nil
}

// ListArchives returns the archive filenames present in the data
// directory, sorted lexically (which is chronological given the
// timestamp naming).
func (fs *FileStore) ListArchives(ctx context.Context) ([]string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	entries, err := os.ReadDir(fs.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var archives []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == LatestFileName {
			continue
		}
		if filepath.Ext(name) == ".json" {
			archives = append(archives, name)
		}
	}
	return archives, nil
}

// atomicWriteFile writes data to a file atomically by writing to a temporary
// file first, then renaming. This ensures the target file is never in a
// partially-written state.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Create temp file in same directory to ensure atomic rename
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// Sync to disk
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Set permissions
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
