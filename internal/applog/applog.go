// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package applog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
)

// File extensions for active and rotated log files.
const (
	logExt        = ".log"
	compressedExt = ".gz"
)

// ErrNotFound indicates no log file exists under the given name.
var ErrNotFound = errors.New("applog: log file not found")

// Logger appends structured entries to per-check log files and rotates
// them into gzip archives. One active .log file exists per check id;
// rotation renames its content into a timestamped .gz and truncates the
// active file.
type Logger struct {
	baseDir string
}

// New creates a log writer rooted at baseDir, creating it if needed.
func New(baseDir string) (*Logger, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("applog: base dir must not be empty")
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("applog: creating base dir: %w", err)
	}
	return &Logger{baseDir: baseDir}, nil
}

// Append serializes entry as one JSON line and appends it to the named
// active log file.
func (l *Logger) Append(name string, entry any) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("applog: marshaling entry: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(l.baseDir, name+logExt), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("applog: opening log file: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("applog: appending entry: %w", err)
	}
	return f.Close()
}

// List returns the base names of all log files. When includeCompressed is
// set, rotated .gz archives are included alongside active logs.
func (l *Logger) List(includeCompressed bool) ([]string, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("applog: listing logs: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch {
		case strings.HasSuffix(e.Name(), logExt):
			names = append(names, strings.TrimSuffix(e.Name(), logExt))
		case includeCompressed && strings.HasSuffix(e.Name(), compressedExt):
			names = append(names, strings.TrimSuffix(e.Name(), compressedExt))
		}
	}
	return names, nil
}

// Rotate compresses the named active log into destName.gz and truncates
// the source. An empty or missing source is rotated into an empty archive
// so callers need not special-case quiet checks.
func (l *Logger) Rotate(name, destName string) error {
	src := filepath.Join(l.baseDir, name+logExt)
	data, err := os.ReadFile(src)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("applog: reading log for rotation: %w", err)
	}

	dest, err := os.OpenFile(filepath.Join(l.baseDir, destName+compressedExt), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640)
	if err != nil {
		return fmt.Errorf("applog: creating archive: %w", err)
	}
	defer dest.Close()

	gz := gzip.NewWriter(dest)
	if _, err := gz.Write(data); err != nil {
		return fmt.Errorf("applog: compressing log: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("applog: finishing archive: %w", err)
	}
	if err := dest.Close(); err != nil {
		return fmt.Errorf("applog: closing archive: %w", err)
	}

	return l.Truncate(name)
}

// ReadCompressed decompresses a rotated archive and returns its content.
func (l *Logger) ReadCompressed(name string) (string, error) {
	f, err := os.Open(filepath.Join(l.baseDir, name+compressedExt))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("applog: opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("applog: opening gzip stream: %w", err)
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return "", fmt.Errorf("applog: decompressing log: %w", err)
	}
	return string(data), nil
}

// Read returns the content of the named active log file.
func (l *Logger) Read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, name+logExt))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("applog: reading log: %w", err)
	}
	return string(data), nil
}

// Truncate empties the named active log file.
func (l *Logger) Truncate(name string) error {
	if err := os.Truncate(filepath.Join(l.baseDir, name+logExt), 0); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("applog: truncating log: %w", err)
	}
	return nil
}
