// Package state manages contestsim's durable client-side records.
//
// Records live as one JSON document per key in the state directory
// (~/.local/state/contestsim/<KEY>.json). Writes go through a temp file and
// a rename, and read-modify-write sequences are serialized through a lock
// file. Update callers check the current record before replacing it, which
// lets a watching process and a one-shot command share the directory.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"syscall"
)

const (
	// KeyContestState holds the in-progress or finished contest.
	KeyContestState = "CONTEST_STATE"
	// KeyUsername holds the platform identity.
	KeyUsername = "lc_username"
	// KeyCookie holds the platform session credential.
	KeyCookie = "lc_cookie"
)

// ErrInvalidKey is returned for keys that cannot be used as file names.
var ErrInvalidKey = errors.New("invalid state key")

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Store reads and writes keyed records with locking.
type Store struct {
	dir string
}

// NewStore creates a new state store using the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) recordPath(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// lockPath returns the path to the lock file.
func (s *Store) lockPath() string {
	return filepath.Join(s.dir, "state.lock")
}

// Get decodes the record for key into dest. It reports false if no record exists.
func (s *Store) Get(key string, dest any) (bool, error) {
	path, err := s.recordPath(key)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return true, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Put writes the record for key. Unchanged records are not rewritten.
func (s *Store) Put(key string, value any) error {
	return s.put(key, value, 0o644)
}

// PutPrivate writes the record for key readable only by the current user.
func (s *Store) PutPrivate(key string, value any) error {
	return s.put(key, value, 0o600)
}

func (s *Store) put(key string, value any, perm os.FileMode) error {
	path, err := s.recordPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if existing, err := os.ReadFile(path); err == nil {
		if bytes.Equal(existing, data) {
			return os.Chmod(path, perm)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", key, err)
	}

	// Write atomically via temp file
	tmpFile, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", key, err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Chmod(perm); err1 != nil && err == nil {
		err = err1
	}
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp file for %s: %w", key, err)
	}

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename %s: %w", key, err)
	}

	return nil
}

// Delete removes the record for key. Missing records are not an error.
func (s *Store) Delete(key string) error {
	path, err := s.recordPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Update runs fn while holding the store's exclusive lock.
func (s *Store) Update(fn func(s *Store) error) error {
	// Ensure directory exists
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	return fn(s)
}
