package migrations

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"go.etcd.io/bbolt"
)

func TestRunMigrations_EmptyDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	err = RunMigrations(db, log)
	if err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte("migrations"))
		if b == nil {
			t.Fatal("migrations bucket not created")
		}

		for _, m := range registeredMigrations {
			record := b.Get([]byte(fmt.Sprintf("v%d", m.Version())))
			if record == nil {
				t.Fatalf("migration %d not found in database", m.Version())
			}
			t.Logf("migration %d found in database: %s", m.Version(), string(record))
		}

		return nil
	})

	if err != nil {
		t.Fatalf("Failed to verify migrations: %v", err)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	err = RunMigrations(db, log)
	if err != nil {
		t.Fatalf("First RunMigrations failed: %v", err)
	}

	err = RunMigrations(db, log)
	if err != nil {
		t.Fatalf("Second RunMigrations failed: %v", err)
	}

	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte("migrations"))
		if b == nil {
			t.Fatal("migrations bucket not found after second run")
		}

		count := 0
		err := b.ForEach(func(k, v []byte) error {
			count++
			return nil
		})
		if err != nil {
			return err
		}

		if count != len(registeredMigrations) {
			t.Fatalf("Expected %d migration records, got %d", len(registeredMigrations), count)
		}

		return nil
	})

	if err != nil {
		t.Fatalf("Failed to verify migrations: %v", err)
	}
}

func TestRunMigrations_CreatesRequiredBuckets(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	err = RunMigrations(db, log)
	if err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	err = db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte("migrations")) == nil {
			t.Fatal("migrations bucket was not created")
		}

		if tx.Bucket([]byte("subscribers:attendance")) == nil {
			t.Fatal("subscribers:attendance bucket was not created by v2 migration")
		}

		if tx.Bucket([]byte("subscribers:class-reminders")) == nil {
			t.Fatal("subscribers:class-reminders bucket was not created by v2 migration")
		}

		return nil
	})

	if err != nil {
		t.Fatalf("Failed to verify buckets: %v", err)
	}
}
