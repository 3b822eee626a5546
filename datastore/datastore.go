// Package datastore is a small JSON-file document store. Documents are grouped
// into named collections and held in memory; a background routine flushes the
// whole store to disk atomically, skipping saves when nothing changed.
package datastore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds configuration options for the Store.
type Config struct {
	FilePath         string
	AutoSaveInterval time.Duration
	BackupCount      int // number of backup files to keep, 0 disables backups
	Logger           zerolog.Logger
}

// DefaultConfig returns a default configuration for the given file path.
func DefaultConfig(filePath string) Config {
	return Config{
		FilePath:         filePath,
		AutoSaveInterval: 10 * time.Second,
		BackupCount:      3,
		Logger:           zerolog.Nop(),
	}
}

// Store is an in-memory collection/key/document map with file persistence.
type Store struct {
	mu           sync.RWMutex
	data         map[string]map[string]json.RawMessage
	file         string
	config       Config
	lastChecksum string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeMu sync.Mutex
	closed  bool
}

// Open creates a Store with default configuration.
func Open(filePath string) (*Store, error) {
	return OpenWithConfig(DefaultConfig(filePath))
}

// OpenWithConfig creates a Store, loading existing data from disk if present.
func OpenWithConfig(config Config) (*Store, error) {
	if config.FilePath == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		data:   make(map[string]map[string]json.RawMessage),
		file:   config.FilePath,
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}

	if _, err := os.Stat(config.FilePath); os.IsNotExist(err) {
		if err := s.writeFileAtomic([]byte("{}")); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to create empty store file: %w", err)
		}
	} else if err == nil {
		if err := s.loadFromFile(); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to load store file: %w", err)
		}
	} else {
		cancel()
		return nil, fmt.Errorf("failed to stat store file: %w", err)
	}

	if config.AutoSaveInterval > 0 {
		s.wg.Add(1)
		go s.autoSave()
	}

	return s, nil
}

// Put marshals doc and stores it under (collection, key).
func (s *Store) Put(collection, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := s.data[collection]
	if bucket == nil {
		bucket = make(map[string]json.RawMessage)
		s.data[collection] = bucket
	}
	bucket[key] = raw
	return nil
}

// Get decodes the document at (collection, key) into out.
// Returns false if no such document exists.
func (s *Store) Get(collection, key string, out any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[collection][key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("failed to decode document %s/%s: %w", collection, key, err)
	}
	return true, nil
}

// Delete removes the document at (collection, key), if present.
func (s *Store) Delete(collection, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[collection], key)
}

// Keys returns the sorted keys of a collection.
func (s *Store) Keys(collection string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data[collection]))
	for k := range s.data[collection] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save forces an immediate flush to disk.
func (s *Store) Save() error {
	return s.saveToFile()
}

// Close stops background saving and flushes the store one last time.
func (s *Store) Close() error {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return nil
	}
	s.closed = true
	s.closeMu.Unlock()

	s.cancel()
	s.wg.Wait()
	return s.saveToFile()
}

func (s *Store) saveToFile() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	checksum := checksumOf(data)
	if checksum == s.lastChecksum {
		return nil
	}

	if s.config.BackupCount > 0 {
		if err := s.createBackup(); err != nil {
			s.config.Logger.Warn().Err(err).Msg("Failed to create backup")
		}
	}

	if err := s.writeFileAtomic(data); err != nil {
		return err
	}

	s.lastChecksum = checksum
	return nil
}

func (s *Store) loadFromFile() error {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var temp map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("invalid store file: %w", err)
	}
	if temp == nil {
		temp = make(map[string]map[string]json.RawMessage)
	}

	s.mu.Lock()
	s.data = temp
	s.mu.Unlock()
	s.lastChecksum = checksumOf(data)
	return nil
}

// writeFileAtomic writes via a temporary file and rename.
func (s *Store) writeFileAtomic(data []byte) error {
	tmpFile := s.file + ".tmp"

	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	f, err := os.OpenFile(tmpFile, os.O_RDWR, 0644)
	if err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to open temp file for sync: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpFile)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	f.Close()

	if err := os.Rename(tmpFile, s.file); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func (s *Store) createBackup() error {
	if _, err := os.Stat(s.file); os.IsNotExist(err) {
		return nil
	}

	backupFile := fmt.Sprintf("%s.backup.%s", s.file, time.Now().Format("20060102_150405"))

	src, err := os.Open(s.file)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(backupFile)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}

	s.cleanupOldBackups()
	return nil
}

func (s *Store) cleanupOldBackups() {
	matches, err := filepath.Glob(s.file + ".backup.*")
	if err != nil || len(matches) <= s.config.BackupCount {
		return
	}

	// Backup names embed a sortable timestamp.
	sort.Strings(matches)
	for _, stale := range matches[:len(matches)-s.config.BackupCount] {
		os.Remove(stale)
	}
}

func (s *Store) autoSave() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.AutoSaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if err := s.saveToFile(); err != nil {
				s.config.Logger.Error().Err(err).Msg("Auto-save failed")
			}
		}
	}
}

func checksumOf(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
