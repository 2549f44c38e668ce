package v2

import (
	"go.etcd.io/bbolt"
)

// MigrationV2 creates the subscriber list buckets
type MigrationV2 struct{}

// Version returns the migration version
func (m *MigrationV2) Version() int {
	return 2
}

// Description returns a human-readable description of the migration
func (m *MigrationV2) Description() string {
	return "Create subscriber buckets for attendance and class-reminders lists"
}

// Up performs the migration
func (m *MigrationV2) Up(db *bbolt.DB) error {
	return db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte("subscribers:attendance")); err != nil {
			return err
		}

		if _, err := tx.CreateBucketIfNotExists([]byte("subscribers:class-reminders")); err != nil {
			return err
		}

		return nil
	})
}

// New creates a new instance of MigrationV2
func New() *MigrationV2 {
	return &MigrationV2{}
}
