package repositories

import (
	"database/sql"
	"sync"
	"testing"

	"github.com/retardedwizard/muxamp/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// A single connection keeps every goroutine on the same in-memory database.
	db.SetMaxOpenConns(1)

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestPlaylistRepository(t *testing.T) {
	t.Run("SaveAndGetString", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))

		id, err := repo.SaveQueryString("sct=xyz789&ytv=abc123")
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if id == "" {
			t.Fatal("expected non-empty id")
		}

		queryString, ok, err := repo.GetString(id)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !ok || queryString != "sct=xyz789&ytv=abc123" {
			t.Errorf("expected saved query string back, got (%q, %v)", queryString, ok)
		}
	})

	t.Run("SaveIsIdempotent", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))

		first, err := repo.SaveQueryString("ytv=abc123")
		if err != nil {
			t.Fatalf("first save failed: %v", err)
		}
		second, err := repo.SaveQueryString("ytv=abc123")
		if err != nil {
			t.Fatalf("second save failed: %v", err)
		}

		if first != second {
			t.Errorf("expected the same id both times, got %q and %q", first, second)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected exactly one record, got %d", count)
		}
	})

	t.Run("DistinctStringsGetDistinctIDs", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))

		a, _ := repo.SaveQueryString("ytv=a")
		b, _ := repo.SaveQueryString("ytv=b")
		if a == b {
			t.Errorf("expected distinct ids, both were %q", a)
		}
	})

	t.Run("EmptyStringRejected", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))

		if _, err := repo.SaveQueryString(""); err == nil {
			t.Error("expected error for empty canonical string")
		}
	})

	t.Run("SaveCanonicalizesFieldOrder", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))

		first, err := repo.Save(map[string][]string{"ytv": {"a"}, "sct": {"b"}})
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		second, err := repo.Save(map[string][]string{"sct": {"b"}, "ytv": {"a"}})
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}

		if first != second {
			t.Errorf("expected field order not to matter, got %q and %q", first, second)
		}
	})

	t.Run("GetIDUnknown", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))

		if _, ok, err := repo.GetID("never=saved"); err != nil || ok {
			t.Errorf("expected clean miss, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("GetStringUnknown", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))

		if _, ok, err := repo.GetString("unknown-id"); err != nil || ok {
			t.Errorf("expected clean miss, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("GetRecord", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))

		id, _ := repo.SaveQueryString("ytv=abc123")
		record, err := repo.Get(id)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if err := record.Validate(); err != nil {
			t.Errorf("expected valid record, got %v", err)
		}
		if record.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}
	})
}

func TestConcurrentSaves(t *testing.T) {
	repo := NewPlaylistRepository(setupTestDB(t))

	const workers = 8
	ids := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ids[n], errs[n] = repo.SaveQueryString("sct=xyz789&ytv=abc123")
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("save %d failed: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Errorf("save %d returned %q, expected %q", i, ids[i], ids[0])
		}
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected one persisted record, got %d", count)
	}
}
