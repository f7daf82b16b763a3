package storage

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/desertthunder/coursetrack/internal/shared"
	tu "github.com/desertthunder/coursetrack/internal/testing"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"SQLiteStore": func(t *testing.T) Store { return NewSQLiteStore(setupTestDB(t)) },
		"MemoryStore": func(t *testing.T) Store { return NewMemoryStore() },
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			t.Run("Get Missing", func(t *testing.T) {
				s := newStore(t)
				v, ok, err := s.Get("missing")
				if err != nil || ok || v != "" {
					t.Errorf("Get(missing) = %q, %v, %v", v, ok, err)
				}
			})

			t.Run("Set Then Get", func(t *testing.T) {
				s := newStore(t)
				if err := s.Set("k", `["a"]`); err != nil {
					t.Fatalf("Set() error = %v", err)
				}
				v, ok, err := s.Get("k")
				if err != nil || !ok || v != `["a"]` {
					t.Errorf("Get(k) = %q, %v, %v", v, ok, err)
				}
			})

			t.Run("Set Overwrites", func(t *testing.T) {
				s := newStore(t)
				for _, v := range []string{"one", "two", ""} {
					if err := s.Set("k", v); err != nil {
						t.Fatalf("Set(%q) error = %v", v, err)
					}
				}
				v, ok, _ := s.Get("k")
				if !ok || v != "" {
					t.Errorf("expected last write (empty string) to win, got %q ok=%v", v, ok)
				}
			})

			t.Run("Delete", func(t *testing.T) {
				s := newStore(t)
				_ = s.Set("k", "v")
				if err := s.Delete("k"); err != nil {
					t.Fatalf("Delete() error = %v", err)
				}
				if _, ok, _ := s.Get("k"); ok {
					t.Error("expected slot to be empty after delete")
				}
				if err := s.Delete("k"); err != nil {
					t.Errorf("deleting empty slot should not fail: %v", err)
				}
			})
		})
	}

	t.Run("SQLiteStore Closed Database", func(t *testing.T) {
		db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: ":memory:"})
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		s := NewSQLiteStore(db)
		db.Close()

		if _, _, err := s.Get("k"); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage from Get, got %v", err)
		}
		if err := s.Set("k", "v"); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage from Set, got %v", err)
		}
		if err := s.Delete("k"); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage from Delete, got %v", err)
		}
	})
}

func TestPersistence(t *testing.T) {
	t.Run("Keys Use Prefix", func(t *testing.T) {
		p := NewPersistence(NewMemoryStore(), "")
		want := []string{"lt_watched_videos", "lt_video_comments", "lt_active_section"}
		if got := p.Keys(); !reflect.DeepEqual(got, want) {
			t.Errorf("Keys() = %v, want %v", got, want)
		}

		custom := NewPersistence(NewMemoryStore(), "course1_")
		if got := custom.Keys()[0]; got != "course1_watched_videos" {
			t.Errorf("expected custom prefix, got %s", got)
		}
	})

	t.Run("Empty Store Defaults", func(t *testing.T) {
		p := NewPersistence(NewMemoryStore(), "")

		watched, err := p.LoadWatched()
		if err != nil || watched == nil || len(watched) != 0 {
			t.Errorf("LoadWatched() = %v, %v", watched, err)
		}

		comments, err := p.LoadComments()
		if err != nil || comments == nil || len(comments) != 0 {
			t.Errorf("LoadComments() = %v, %v", comments, err)
		}

		key, ok, err := p.LoadActiveKey()
		if err != nil || ok || key != "" {
			t.Errorf("LoadActiveKey() = %q, %v, %v", key, ok, err)
		}
	})

	t.Run("Round Trip", func(t *testing.T) {
		store := NewSQLiteStore(setupTestDB(t))
		p := NewPersistence(store, "")

		watched := map[string]struct{}{"b": {}, "a": {}}
		comments := map[string]string{"a": "note", "b": ""}

		if err := p.SaveWatched(watched); err != nil {
			t.Fatalf("SaveWatched() error = %v", err)
		}
		if err := p.SaveComments(comments); err != nil {
			t.Fatalf("SaveComments() error = %v", err)
		}
		if err := p.SaveActiveKey("ambiente"); err != nil {
			t.Fatalf("SaveActiveKey() error = %v", err)
		}

		raw, _, _ := store.Get("lt_watched_videos")
		if raw != `["a","b"]` {
			t.Errorf("expected sorted JSON array, got %s", raw)
		}
		rawKey, _, _ := store.Get("lt_active_section")
		if rawKey != "ambiente" {
			t.Errorf("expected bare active key, got %s", rawKey)
		}

		gotWatched, err := p.LoadWatched()
		if err != nil || !reflect.DeepEqual(gotWatched, watched) {
			t.Errorf("LoadWatched() = %v, %v", gotWatched, err)
		}
		gotComments, err := p.LoadComments()
		if err != nil || !reflect.DeepEqual(gotComments, comments) {
			t.Errorf("LoadComments() = %v, %v", gotComments, err)
		}
		gotKey, ok, err := p.LoadActiveKey()
		if err != nil || !ok || gotKey != "ambiente" {
			t.Errorf("LoadActiveKey() = %q, %v, %v", gotKey, ok, err)
		}
	})

	t.Run("Corrupt JSON Returns Defaults", func(t *testing.T) {
		store := NewMemoryStore()
		_ = store.Set("lt_watched_videos", "{not json")
		_ = store.Set("lt_video_comments", `["wrong","shape"]`)
		p := NewPersistence(store, "")

		watched, err := p.LoadWatched()
		if !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage, got %v", err)
		}
		if watched == nil || len(watched) != 0 {
			t.Errorf("expected empty default set, got %v", watched)
		}

		comments, err := p.LoadComments()
		if !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage, got %v", err)
		}
		if comments == nil || len(comments) != 0 {
			t.Errorf("expected empty default map, got %v", comments)
		}
	})

	t.Run("Wrong-Typed Entries Are Skipped", func(t *testing.T) {
		store := NewMemoryStore()
		_ = store.Set("lt_watched_videos", `["a1",2,null,"b1"]`)
		_ = store.Set("lt_video_comments", `{"a1":"rever","b1":1,"c1":null,"d1":""}`)
		p := NewPersistence(store, "")

		watched, err := p.LoadWatched()
		if err != nil {
			t.Fatalf("LoadWatched() error = %v", err)
		}
		if len(watched) != 2 {
			t.Errorf("expected a1 and b1, got %v", watched)
		}

		comments, err := p.LoadComments()
		if err != nil {
			t.Fatalf("LoadComments() error = %v", err)
		}
		want := map[string]string{"a1": "rever", "d1": ""}
		if !reflect.DeepEqual(comments, want) {
			t.Errorf("LoadComments() = %v, want %v", comments, want)
		}
	})

	t.Run("JSON Null Is Empty", func(t *testing.T) {
		store := NewMemoryStore()
		_ = store.Set("lt_watched_videos", "null")
		_ = store.Set("lt_video_comments", "null")
		p := NewPersistence(store, "")

		if w, err := p.LoadWatched(); err != nil || len(w) != 0 {
			t.Errorf("LoadWatched() = %v, %v", w, err)
		}
		if c, err := p.LoadComments(); err != nil || c == nil || len(c) != 0 {
			t.Errorf("LoadComments() = %v, %v", c, err)
		}
	})

	t.Run("Store Errors Return Defaults", func(t *testing.T) {
		store := tu.NewRecordingStore()
		store.GetErr = errors.New("storage disabled")
		p := NewPersistence(store, "")

		if w, err := p.LoadWatched(); err == nil || w == nil {
			t.Errorf("LoadWatched() = %v, %v", w, err)
		}
		if c, err := p.LoadComments(); err == nil || c == nil {
			t.Errorf("LoadComments() = %v, %v", c, err)
		}
		if k, ok, err := p.LoadActiveKey(); err == nil || ok || k != "" {
			t.Errorf("LoadActiveKey() = %q, %v, %v", k, ok, err)
		}
	})

	t.Run("Write Errors Surface", func(t *testing.T) {
		store := tu.NewRecordingStore()
		store.SetErr = errors.New("quota exceeded")
		p := NewPersistence(store, "")

		if err := p.SaveWatched(map[string]struct{}{"a": {}}); err == nil {
			t.Error("expected SaveWatched error")
		}
		if err := p.SaveComments(nil); err == nil {
			t.Error("expected SaveComments error")
		}
		if err := p.SaveActiveKey("a"); err == nil {
			t.Error("expected SaveActiveKey error")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		store := NewMemoryStore()
		p := NewPersistence(store, "")
		_ = p.SaveWatched(map[string]struct{}{"a": {}})
		_ = p.SaveComments(map[string]string{"a": "x"})
		_ = p.SaveActiveKey("s")

		if err := p.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		for _, key := range p.Keys() {
			if _, ok, _ := store.Get(key); ok {
				t.Errorf("expected %s to be cleared", key)
			}
		}
	})

	t.Run("Empty Active Key Is Absent", func(t *testing.T) {
		store := NewMemoryStore()
		_ = store.Set("lt_active_section", "")
		if _, ok, _ := NewPersistence(store, "").LoadActiveKey(); ok {
			t.Error("empty stored key should read as absent")
		}
	})
}
