// Package session persists the signed-in user's access token between runs.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketName = "session"
	tokenKey   = "token"

	openTimeout = time.Second
)

var (
	ErrStoreClosed = errors.New("session store is closed")
	ErrEmptyToken  = errors.New("token is required")
)

// Store keeps the access token in a bbolt file. The file is opened on first
// use, so commands that never read the token do not take its lock.
type Store struct {
	mu     sync.RWMutex
	db     *bolt.DB
	path   string
	closed bool
}

func NewStore(path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("session path is required")
	}
	return &Store{path: trimmed}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Opened reports whether the bbolt file has been opened.
func (s *Store) Opened() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveToken replaces the stored token.
func (s *Store) SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	return s.update(func(bucket *bolt.Bucket) error {
		if err := bucket.Put([]byte(tokenKey), []byte(token)); err != nil {
			return fmt.Errorf("write token: %w", err)
		}
		return nil
	})
}

// Token returns the stored token, or "" when nobody is signed in.
func (s *Store) Token() (string, error) {
	var token string
	err := s.view(func(bucket *bolt.Bucket) error {
		token = string(bucket.Get([]byte(tokenKey)))
		return nil
	})
	return token, err
}

// Clear signs the user out.
func (s *Store) Clear() error {
	return s.update(func(bucket *bolt.Bucket) error {
		return bucket.Delete([]byte(tokenKey))
	})
}

func (s *Store) IsAuthenticated() bool {
	token, err := s.Token()
	return err == nil && token != ""
}

// ensureOpen opens the file once. A failed open is not remembered, so a
// later call retries after another process releases the lock.
func (s *Store) ensureOpen() error {
	s.mu.RLock()
	opened, closed := s.db != nil, s.closed
	s.mu.RUnlock()
	if closed {
		return ErrStoreClosed
	}
	if opened {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if s.db != nil {
		return nil
	}
	db, err := openDB(s.path)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func openDB(path string) (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("ensure session dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open session db %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init session db: %w", err)
	}
	return db, nil
}

func (s *Store) view(fn func(*bolt.Bucket) error) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("missing session bucket")
		}
		return fn(bucket)
	})
}

func (s *Store) update(fn func(*bolt.Bucket) error) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("missing session bucket")
		}
		return fn(bucket)
	})
}
