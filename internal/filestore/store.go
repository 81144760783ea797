// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/upcheckhq/upcheck/internal/metrics"
)

// Sentinel errors returned by store operations.
var (
	// ErrAlreadyExists indicates a Create for an id that is already stored.
	ErrAlreadyExists = errors.New("document already exists")

	// ErrNotFound indicates the requested document is not stored.
	ErrNotFound = errors.New("document not found")

	// ErrCorrupt indicates a stored document could not be deserialized.
	ErrCorrupt = errors.New("document is corrupt")

	// ErrInvalidKey indicates a collection or id that cannot name a file.
	ErrInvalidKey = errors.New("invalid collection or id")
)

const fileExt = ".json"

// Store persists documents as individual JSON files, one file per document,
// grouped into one directory per collection under a base directory.
//
// The store provides no cross-document transactions and no locking: a
// read-modify-write against the same id from concurrent requests can lose
// an update. Callers own that trade-off.
type Store struct {
	baseDir string
}

// New creates a Store rooted at baseDir, creating the directory if needed.
func New(baseDir string) (*Store, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("filestore: base directory must not be empty")
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("filestore: creating base directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// BaseDir returns the root directory of the store.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// path resolves a (collection, id) pair to its file path, rejecting names
// that would escape the store hierarchy.
func (s *Store) path(collection, id string) (string, error) {
	if !validName(collection) || !validName(id) {
		return "", fmt.Errorf("%w: %q/%q", ErrInvalidKey, collection, id)
	}
	return filepath.Join(s.baseDir, collection, id+fileExt), nil
}

// validName accepts names usable as a single path element.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

// Create stores a new document. It fails with ErrAlreadyExists if a
// document with that id is already present; an existing document is never
// overwritten.
func (s *Store) Create(ctx context.Context, collection, id string, doc any) (err error) {
	defer s.observe("create", collection, time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(collection, id)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("filestore: creating collection %s: %w", collection, err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("filestore: serializing %s/%s: %w", collection, id, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("filestore: %s/%s: %w", collection, id, ErrAlreadyExists)
		}
		return fmt.Errorf("filestore: creating %s/%s: %w", collection, id, err)
	}

	if _, err = f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("filestore: writing %s/%s: %w", collection, id, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("filestore: closing %s/%s: %w", collection, id, err)
	}
	return nil
}

// Read loads the document with the given id into out. A missing document
// is ErrNotFound; content that cannot be deserialized is ErrCorrupt.
func (s *Store) Read(ctx context.Context, collection, id string, out any) (err error) {
	defer s.observe("read", collection, time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(collection, id)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("filestore: %s/%s: %w", collection, id, ErrNotFound)
		}
		return fmt.Errorf("filestore: reading %s/%s: %w", collection, id, err)
	}

	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("filestore: %s/%s: %w: %v", collection, id, ErrCorrupt, err)
	}
	return nil
}

// Update replaces the document body wholesale. The new content is written
// to a temporary file and renamed over the old one, so a concurrent Read
// observes either the old bytes or the new bytes, never a mix. A missing
// document is ErrNotFound.
func (s *Store) Update(ctx context.Context, collection, id string, doc any) (err error) {
	defer s.observe("update", collection, time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(collection, id)
	if err != nil {
		return err
	}
	if _, err = os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("filestore: %s/%s: %w", collection, id, ErrNotFound)
		}
		return fmt.Errorf("filestore: checking %s/%s: %w", collection, id, err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("filestore: serializing %s/%s: %w", collection, id, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), id+".tmp-*")
	if err != nil {
		return fmt.Errorf("filestore: creating temp file for %s/%s: %w", collection, id, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("filestore: writing %s/%s: %w", collection, id, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("filestore: closing %s/%s: %w", collection, id, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("filestore: replacing %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete removes the document. Deleting a missing document is ErrNotFound,
// not a success.
func (s *Store) Delete(ctx context.Context, collection, id string) (err error) {
	defer s.observe("delete", collection, time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(collection, id)
	if err != nil {
		return err
	}
	if err = os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("filestore: %s/%s: %w", collection, id, ErrNotFound)
		}
		return fmt.Errorf("filestore: deleting %s/%s: %w", collection, id, err)
	}
	return nil
}

// List enumerates the ids in a collection. The result is an unordered
// snapshot; documents created or deleted after the call may or may not
// appear. A collection that has never been written to lists as empty.
func (s *Store) List(ctx context.Context, collection string) (ids []string, err error) {
	defer s.observe("list", collection, time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if !validName(collection) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, collection)
	}

	entries, err := os.ReadDir(filepath.Join(s.baseDir, collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("filestore: listing %s: %w", collection, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, fileExt))
	}
	return ids, nil
}

// observe records operation metrics.
func (s *Store) observe(op, collection string, start time.Time, err *error) {
	metrics.RecordStoreOperation(op, collection, *err, time.Since(start))
}
