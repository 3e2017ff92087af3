package pipeline

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/avast/retry-go/v4"
)

// Store is the append-only sink for confirmed-valid account numbers:
// plain text, one account per line, truncated at the start of every run
// and appended to incrementally so partial progress survives interruption.
type Store struct {
	path    string
	retries int

	mu   sync.Mutex
	file *os.File
}

func NewStore(path string, retries int) *Store {
	return &Store{path: path, retries: retries}
}

// Path returns the location of the output file.
func (s *Store) Path() string {
	return s.path
}

// Reset truncates the output file so results from a previous run do not
// leak into the new one.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		_ = s.file.Close()
	}
	file, err := os.OpenFile(
		s.path,
		os.O_CREATE|os.O_TRUNC|os.O_APPEND|os.O_WRONLY,
		0o644,
	)
	if err != nil {
		return fmt.Errorf("initializing output file %s: %w", s.path, err)
	}
	s.file = file
	return nil
}

// Append writes one candidate as a line. Appends from concurrent process
// workers are serialized; transient write failures are retried before the
// error is surfaced to the caller.
func (s *Store) Append(c Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return errors.New("store has not been reset for a run")
	}
	return retry.Do(
		func() error {
			_, err := fmt.Fprintln(s.file, string(c))
			return err
		},
		retry.Attempts(uint(s.retries)+1),
		retry.LastErrorOnly(true),
	)
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
