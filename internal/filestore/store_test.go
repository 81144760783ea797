// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"sync"
	"testing"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return s
}

func TestCreateThenRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := testDoc{Name: "alpha", Count: 3}
	if err := s.Create(ctx, "things", "a1", want); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	var got testDoc
	if err := s.Read(ctx, "things", "a1", &got); err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Read = %+v, want %+v", got, want)
	}
}

func TestCreateDuplicateFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, "things", "dup", testDoc{Name: "first"}); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	err := s.Create(ctx, "things", "dup", testDoc{Name: "second"})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("second Create = %v, want ErrAlreadyExists", err)
	}

	// The original document must be untouched.
	var got testDoc
	if err := s.Read(ctx, "things", "dup", &got); err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got.Name != "first" {
		t.Errorf("document overwritten by failed Create: %+v", got)
	}
}

func TestUpdateReplacesWholeDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, "things", "u1", testDoc{Name: "old", Count: 1}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := s.Update(ctx, "things", "u1", testDoc{Name: "new"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	var got testDoc
	if err := s.Read(ctx, "things", "u1", &got); err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got.Name != "new" || got.Count != 0 {
		t.Errorf("Update merged instead of replacing: %+v", got)
	}
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.Update(context.Background(), "things", "ghost", testDoc{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update on missing id = %v, want ErrNotFound", err)
	}
}

func TestDeleteSemantics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, "things", "d1", testDoc{}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := s.Delete(ctx, "things", "d1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	var got testDoc
	if err := s.Read(ctx, "things", "d1", &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read after Delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "things", "d1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete on missing id = %v, want ErrNotFound", err)
	}
}

func TestListSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ids, err := s.List(ctx, "empty")
	if err != nil {
		t.Fatalf("List on missing collection returned error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("List on missing collection = %v, want empty", ids)
	}

	want := []string{"a", "b", "c"}
	for _, id := range want {
		if err := s.Create(ctx, "things", id, testDoc{Name: id}); err != nil {
			t.Fatalf("Create(%s) returned error: %v", id, err)
		}
	}

	ids, err = s.List(ctx, "things")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	sort.Strings(ids)
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("List = %v, want %v", ids, want)
	}
}

func TestReadCorruptDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, "things", "bad", testDoc{}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	path := filepath.Join(s.BaseDir(), "things", "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o640); err != nil {
		t.Fatalf("corrupting file: %v", err)
	}

	var got testDoc
	err := s.Read(ctx, "things", "bad", &got)
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Read of corrupt document = %v, want ErrCorrupt", err)
	}
}

func TestInvalidNamesRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, bad := range []string{"", ".", "..", "a/b", "a\\b"} {
		if err := s.Create(ctx, bad, "id", testDoc{}); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Create with collection %q = %v, want ErrInvalidKey", bad, err)
		}
		if err := s.Create(ctx, "things", bad, testDoc{}); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Create with id %q = %v, want ErrInvalidKey", bad, err)
		}
	}
}

// Concurrent readers must never observe a mix of old and new bytes while
// a document is being replaced.
func TestConcurrentReadDuringUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	type payload struct {
		Version string `json:"version"`
		Fill    string `json:"fill"`
	}
	fill := func(c byte) string {
		b := make([]byte, 4096)
		for i := range b {
			b[i] = c
		}
		return string(b)
	}
	old := payload{Version: "old", Fill: fill('o')}
	updated := payload{Version: "new", Fill: fill('n')}

	if err := s.Create(ctx, "things", "race", old); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errCh := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			var got payload
			if err := s.Read(ctx, "things", "race", &got); err != nil {
				select {
				case errCh <- err:
				default:
				}
				return
			}
			want := fill('o')
			if got.Version == "new" {
				want = fill('n')
			}
			if got.Fill != want {
				select {
				case errCh <- errors.New("observed mixed document content"):
				default:
				}
				return
			}
		}
	}()

	for i := 0; i < 50; i++ {
		doc := old
		if i%2 == 1 {
			doc = updated
		}
		if err := s.Update(ctx, "things", "race", doc); err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
	}
	close(stop)
	wg.Wait()

	select {
	case err := <-errCh:
		t.Fatalf("concurrent reader failed: %v", err)
	default:
	}
}

func TestContextCancellation(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Create(ctx, "things", "x", testDoc{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Create with canceled context = %v, want context.Canceled", err)
	}
	if _, err := s.List(ctx, "things"); !errors.Is(err, context.Canceled) {
		t.Errorf("List with canceled context = %v, want context.Canceled", err)
	}
}
