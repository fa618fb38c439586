package history

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/HartBrook/lyra/internal/errors"
)

const maxLineBytes = 16 << 20

// Store is an append-only JSONL log of sessions.
// It is safe for concurrent use within one process.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the log file location.
func (s *Store) Path() string {
	return s.path
}

// Append writes session as one line at the end of the log.
func (s *Store) Append(session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return errors.HistoryWriteFailed(s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.HistoryWriteFailed(s.path, err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.HistoryWriteFailed(s.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return errors.HistoryWriteFailed(s.path, err)
	}
	return nil
}

// Load returns every session in file order. A missing log is empty.
// Blank lines are skipped; the first undecodable line fails the load.
func (s *Store) Load() ([]Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Session{}, nil
		}
		return nil, errors.Wrap(errors.ErrHistoryCorrupt, "failed to open history file", "", err)
	}
	defer f.Close()

	sessions := []Session{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var session Session
		if err := json.Unmarshal(line, &session); err != nil {
			return nil, errors.HistoryCorrupt(s.path, lineNo, err)
		}
		sessions = append(sessions, session)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.HistoryCorrupt(s.path, lineNo+1, err)
	}

	return sessions, nil
}

// Find returns the session with the given ID.
func (s *Store) Find(id string) (*Session, error) {
	sessions, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i], nil
		}
	}
	return nil, errors.SessionNotFound(id)
}
