// Package store orchestrates whole-file transactions: read the original
// bytes, decode, apply one mutation in memory, re-encode and atomically
// replace the file. A failure at any step before the final rename leaves the
// original file byte-identical.
//
// The store assumes a single writer per file. It never locks across process
// boundaries; callers running concurrent edits on the same path must
// serialize them externally.
package store

import (
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/ledgerkit/fixedfile/pkg/access"
	"github.com/ledgerkit/fixedfile/pkg/codec"
	"github.com/ledgerkit/fixedfile/pkg/ledger"
	"github.com/ledgerkit/fixedfile/pkg/schema"
)

// FileStoreConfig holds configuration for a file store.
type FileStoreConfig struct {
	Path       string         // Path to the fixed-width file
	Schema     *schema.Schema // Layout; the builtin banking schema when nil
	Terminator string         // Line terminator; "\n" when empty
}

// FileStore runs read-mutate-replace transactions against one fixed-width
// file.
type FileStore struct {
	config   FileStoreConfig
	codec    *codec.Codec
	appender *ledger.Appender
	mutex    sync.Mutex
}

// NewFileStore creates a file store for the configured path.
func NewFileStore(config FileStoreConfig) *FileStore {
	if config.Schema == nil {
		config.Schema = schema.Banking()
	}
	return &FileStore{
		config:   config,
		codec:    codec.NewWithTerminator(config.Schema, config.Terminator),
		appender: ledger.New(config.Schema),
	}
}

// Open reads and decodes the file into memory.
func (s *FileStore) Open() (*codec.File, error) {
	data, err := os.ReadFile(s.config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.config.Path, err)
	}
	f, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.config.Path, err)
	}
	return f, nil
}

// Get resolves and returns a field value. It never writes.
func (s *FileStore) Get(typeName, fieldName, selector string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := s.Open()
	if err != nil {
		return "", err
	}
	return access.Get(f, typeName, fieldName, selector)
}

// Set overwrites a field value and commits the file. When the field feeds an
// aggregate, the aggregates are recomputed before the write so the file stays
// internally consistent.
func (s *FileStore) Set(typeName, fieldName, value, selector string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := s.Open()
	if err != nil {
		return err
	}
	if err := access.Set(f, typeName, fieldName, value, selector); err != nil {
		return err
	}
	if s.feedsAggregate(typeName, fieldName) {
		if err := s.appender.Refresh(f); err != nil {
			return err
		}
	}
	return s.commit(f)
}

// Add appends a transaction record and commits the file.
func (s *FileStore) Add(amount, currency string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := s.Open()
	if err != nil {
		return err
	}
	if err := s.appender.Add(f, amount, currency); err != nil {
		return err
	}
	return s.commit(f)
}

// commit encodes the file and atomically replaces the original, preserving
// its file mode.
func (s *FileStore) commit(f *codec.File) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(s.config.Path); err == nil {
		mode = info.Mode()
	}
	return atomicWrite(s.config.Path, s.codec.Encode(f), mode)
}

// feedsAggregate reports whether a field is the sum source of any aggregate
// declaration.
func (s *FileStore) feedsAggregate(typeName, fieldName string) bool {
	for _, agg := range s.config.Schema.Aggregates() {
		if agg.Op == schema.OpSum && agg.SourceRecord == typeName && agg.SourceField == fieldName {
			return true
		}
	}
	return false
}
