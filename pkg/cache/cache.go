// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache stores extracted command models on disk so repeated runs
// against the same help text skip re-extraction. Entries are JSON compressed
// with zstd, keyed by command name plus a hash of the source text, and
// expire after a TTL.
package cache

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/helptab/helptab/pkg/helptext"
	"github.com/klauspost/compress/zstd"
)

// DefaultTTL is how long a cached model stays valid.
const DefaultTTL = 24 * time.Hour

const entryExt = ".json.zst"

// Entry is the on-disk record for one extracted command.
type Entry struct {
	CreatedAt   time.Time        `json:"created_at"`
	ContentHash uint64           `json:"content_hash"`
	Command     helptext.Command `json:"command"`
}

// Store is a directory-backed cache. The zero value is not usable; call
// Open or New.
type Store struct {
	dir string
	ttl time.Duration
}

// New returns a Store rooted at dir with the given TTL (DefaultTTL when
// zero). The directory is created on first write.
func New(dir string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{dir: dir, ttl: ttl}
}

// Open returns a Store in the user cache directory.
func Open(ttl time.Duration) (*Store, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate user cache dir: %w", err)
	}
	return New(filepath.Join(base, "helptab"), ttl), nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.dir }

// HashSource returns the FNV-1a hash of the source help text.
func HashSource(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}

// key builds the entry file name for a command name and source hash.
// Path-hostile characters in the name are replaced so the key stays a
// single file name.
func key(name string, hash uint64) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf("%s_%016x%s", sanitized, hash, entryExt)
}

// Get returns the cached command for (name, source) if a fresh entry with a
// matching content hash exists.
func (s *Store) Get(name, source string) (helptext.Command, bool) {
	hash := HashSource(source)
	entry, err := s.readEntry(filepath.Join(s.dir, key(name, hash)))
	if err != nil {
		return helptext.Command{}, false
	}
	if entry.ContentHash != hash || time.Since(entry.CreatedAt) > s.ttl {
		return helptext.Command{}, false
	}
	return entry.Command, true
}

// Put stores the extracted command for (name, source).
func (s *Store) Put(name, source string, cmd helptext.Command) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	hash := HashSource(source)
	entry := Entry{
		CreatedAt:   time.Now().UTC(),
		ContentHash: hash,
		Command:     cmd,
	}

	path := filepath.Join(s.dir, key(name, hash))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache entry: %w", err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(entry); err != nil {
		zw.Close()
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to flush cache entry: %w", err)
	}
	return nil
}

func (s *Store) readEntry(path string) (Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	var entry Entry
	if err := json.NewDecoder(zr).Decode(&entry); err != nil {
		return Entry{}, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return entry, nil
}

// Clear removes every entry.
func (s *Store) Clear() error {
	paths, err := s.entries()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

// Prune removes expired and unreadable entries and returns how many were
// deleted.
func (s *Store) Prune() (int, error) {
	paths, err := s.entries()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, path := range paths {
		entry, err := s.readEntry(path)
		if err == nil && time.Since(entry.CreatedAt) <= s.ttl {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed++
	}
	return removed, nil
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int
	Expired int
	Bytes   int64
}

func (st Stats) String() string {
	return fmt.Sprintf("%d entries (%d expired), %d bytes on disk",
		st.Entries, st.Expired, st.Bytes)
}

// Stat walks the cache directory and reports entry counts and disk usage.
func (s *Store) Stat() (Stats, error) {
	paths, err := s.entries()
	if err != nil {
		return Stats{}, err
	}
	var st Stats
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		st.Entries++
		st.Bytes += fi.Size()
		if entry, err := s.readEntry(path); err != nil || time.Since(entry.CreatedAt) > s.ttl {
			st.Expired++
		}
	}
	return st, nil
}

func (s *Store) entries() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*"+entryExt))
	if err != nil {
		return nil, fmt.Errorf("failed to list cache dir: %w", err)
	}
	return paths, nil
}
