package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrIncompleteRecord is returned by Store.Set when the record is missing
// one of the two tokens.
var ErrIncompleteRecord = errors.New("token record must carry both tokens")

// Store holds the current TokenRecord. Implementations must be safe for
// concurrent use. Set replaces any prior record atomically; Get returns a
// copy so callers cannot mutate shared state.
type Store interface {
	Get() *TokenRecord
	Set(rec *TokenRecord) error
	Clear() error
}

// MemStore is an in-memory Store. It is the natural choice for tests and for
// embedders that manage persistence themselves.
type MemStore struct {
	mu  sync.Mutex
	rec *TokenRecord
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Get() *TokenRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.clone()
}

func (s *MemStore) Set(rec *TokenRecord) error {
	if !rec.Complete() {
		return ErrIncompleteRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec.clone()
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}

// FileStore keeps the record in memory and mirrors it to a single JSON file,
// so a session survives process restarts. Writes go through a temp file and
// rename, so the file never holds a partial record.
type FileStore struct {
	path string
	mu   sync.Mutex
	rec  *TokenRecord
}

// NewFileStore opens (or creates the directory for) the token file at path.
// An existing record whose expiry is within loadBuffer of now is discarded
// rather than restored, so a restart never resumes with a nearly-dead token.
// A missing or unreadable file simply yields an empty store; a present but
// corrupt file is removed.
func NewFileStore(path string, loadBuffer time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("token dir: %w", err)
	}

	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}

	var rec TokenRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = os.Remove(path)
		return s, nil
	}

	if !Usable(&rec, loadBuffer, time.Now()) {
		_ = os.Remove(path)
		return s, nil
	}

	s.rec = &rec
	return s, nil
}

// Path returns the location of the token file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get() *TokenRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.clone()
}

func (s *FileStore) Set(rec *TokenRecord) error {
	if !rec.Complete() {
		return ErrIncompleteRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal token record: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}

	s.rec = rec.clone()
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
