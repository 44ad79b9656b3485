package repositories

import (
	"database/sql"
	"io"
	"math"
	"path/filepath"
	"testing"

	"github.com/desertthunder/popcorn/internal/models"
	"github.com/desertthunder/popcorn/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func newWatchedRepo(t *testing.T) (*WatchedRepository, *KVStore) {
	t.Helper()
	kv := NewKVStore(setupTestDB(t))
	return NewWatchedRepository(kv, shared.NewLogger(io.Discard)), kv
}

func TestKVStore(t *testing.T) {
	t.Run("Get Missing", func(t *testing.T) {
		kv := NewKVStore(setupTestDB(t))

		_, ok, err := kv.Get("nope")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected missing key")
		}
	})

	t.Run("Set Overwrites", func(t *testing.T) {
		kv := NewKVStore(setupTestDB(t))

		if err := kv.Set("k", "one"); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := kv.Set("k", "two"); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		got, ok, err := kv.Get("k")
		if err != nil || !ok {
			t.Fatalf("expected key, got ok=%v err=%v", ok, err)
		}
		if got != "two" {
			t.Errorf("expected two, got %s", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		kv := NewKVStore(setupTestDB(t))
		kv.Set("k", "v")

		if err := kv.Delete("k"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, ok, _ := kv.Get("k"); ok {
			t.Error("expected key to be gone")
		}
		if err := kv.Delete("k"); err != nil {
			t.Errorf("deleting missing key should not fail: %v", err)
		}
	})

	t.Run("Closed Database", func(t *testing.T) {
		db := setupTestDB(t)
		kv := NewKVStore(db)
		db.Close()

		if _, _, err := kv.Get("k"); err == nil {
			t.Error("expected error on closed database")
		}
		if err := kv.Set("k", "v"); err == nil {
			t.Error("expected error on closed database")
		}
	})
}

func TestWatchedRepository(t *testing.T) {
	t.Run("Load Empty", func(t *testing.T) {
		repo, _ := newWatchedRepo(t)

		list := repo.Load()
		if list == nil || len(list) != 0 {
			t.Errorf("expected empty non-nil list, got %v", list)
		}
	})

	t.Run("Load Malformed", func(t *testing.T) {
		repo, kv := newWatchedRepo(t)
		kv.Set(WatchedKey, "{not json")

		if list := repo.Load(); len(list) != 0 {
			t.Errorf("expected empty list, got %v", list)
		}
	})

	t.Run("Load JSON Null", func(t *testing.T) {
		repo, kv := newWatchedRepo(t)
		kv.Set(WatchedKey, "null")

		if list := repo.Load(); list == nil || len(list) != 0 {
			t.Errorf("expected empty non-nil list, got %v", list)
		}
	})

	t.Run("Load Persisted Entry", func(t *testing.T) {
		repo, kv := newWatchedRepo(t)
		kv.Set(WatchedKey, `[{"imdbID":"tt1","runtime":120,"imdbRating":8,"userRating":9}]`)

		list := repo.Load()
		if len(list) != 1 {
			t.Fatalf("expected 1 movie, got %d", len(list))
		}

		s := models.Summarize(list)
		if s.Count != 1 || s.RuntimeLabel() != "120 min" || s.ImdbLabel() != "8.00" || s.UserLabel() != "9.00" {
			t.Errorf("unexpected summary %+v", s)
		}
	})

	t.Run("Save And Reload", func(t *testing.T) {
		repo, _ := newWatchedRepo(t)
		want := []models.WatchedMovie{
			{ImdbID: "tt1", Title: "One", Runtime: 90, ImdbRating: 7, UserRating: 8},
			{ImdbID: "tt2", Title: "Two", Runtime: math.NaN(), ImdbRating: math.NaN(), UserRating: 5},
		}

		if err := repo.Save(want); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		got := repo.Load()
		if len(got) != 2 {
			t.Fatalf("expected 2 movies, got %d", len(got))
		}
		if got[0].Title != "One" || got[0].Runtime != 90 {
			t.Errorf("unexpected first movie %+v", got[0])
		}
		if !math.IsNaN(got[1].Runtime) || got[1].UserRating != 5 {
			t.Errorf("unexpected second movie %+v", got[1])
		}
	})

	t.Run("Add Is Idempotent", func(t *testing.T) {
		repo, _ := newWatchedRepo(t)

		for range 3 {
			if _, err := repo.Add(models.WatchedMovie{ImdbID: "tt1", UserRating: 7}); err != nil {
				t.Fatalf("add failed: %v", err)
			}
		}

		if list := repo.Load(); len(list) != 1 {
			t.Errorf("expected 1 movie, got %d", len(list))
		}
	})

	t.Run("Remove", func(t *testing.T) {
		repo, _ := newWatchedRepo(t)
		repo.Save([]models.WatchedMovie{{ImdbID: "tt1"}, {ImdbID: "tt2"}})

		list, err := repo.Remove("tt9")
		if err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if len(list) != 2 {
			t.Errorf("removing absent id should leave list unchanged, got %v", list)
		}

		list, err = repo.Remove("tt1")
		if err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if len(list) != 1 || list[0].ImdbID != "tt2" {
			t.Errorf("expected only tt2, got %v", list)
		}
	})
}

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popcorn.db")

	store, err := Open(shared.DatabaseConfig{Path: path, MaxOpenConns: 1, MaxIdleConns: 1}, shared.NewLogger(io.Discard))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := store.Watched.Save([]models.WatchedMovie{{ImdbID: "tt1", UserRating: 6}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	store.Close()

	reopened, err := Open(shared.DatabaseConfig{Path: path}, shared.NewLogger(io.Discard))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if list := reopened.Watched.Load(); len(list) != 1 || list[0].UserRating != 6 {
		t.Errorf("expected persisted movie across sessions, got %v", list)
	}
}
