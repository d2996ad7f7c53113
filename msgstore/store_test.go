package msgstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "db", "msgfall.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreCreateAndList(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("expected empty store, got %v", got)
			}

			texts := []string{"first", "second", "third"}
			ids := make(map[string]bool)
			for _, text := range texts {
				msg, err := s.Create(ctx, text)
				if err != nil {
					t.Fatalf("Create(%q): %v", text, err)
				}
				if msg.ID == "" || msg.Text != text {
					t.Fatalf("unexpected record %+v", msg)
				}
				if ids[msg.ID] {
					t.Fatalf("duplicate id %s", msg.ID)
				}
				ids[msg.ID] = true
			}

			got, err = s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != len(texts) {
				t.Fatalf("got %d messages, want %d", len(got), len(texts))
			}
			for i, text := range texts {
				if got[i].Text != text {
					t.Fatalf("message %d = %q, want %q", i, got[i].Text, text)
				}
			}
		})
	}
}

func TestStoreRejectsEmpty(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, text := range []string{"", "   "} {
				if _, err := s.Create(context.Background(), text); !errors.Is(err, ErrEmptyMessage) {
					t.Fatalf("Create(%q) err = %v, want ErrEmptyMessage", text, err)
				}
			}
			got, _ := s.List(context.Background())
			if len(got) != 0 {
				t.Fatalf("empty messages were stored: %v", got)
			}
		})
	}
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msgfall.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	created, err := s.Create(ctx, "survives restart")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.Close()

	s, err = NewSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0] != created {
		t.Fatalf("got %v, want [%v]", got, created)
	}
}
