package v1

import (
	"errors"

	"go.etcd.io/bbolt"
)

// MigrationV1 is the bootstrap migration that marks the migration system as initialized
type MigrationV1 struct{}

// Version returns the migration version
func (m *MigrationV1) Version() int {
	return 1
}

// Description returns a human-readable description of the migration
func (m *MigrationV1) Description() string {
	return "Bootstrap migration system - create migrations bucket"
}

// Up performs the migration
func (m *MigrationV1) Up(db *bbolt.DB) error {
	// The migrations bucket itself is created by the runner before any
	// migration executes; this one only verifies the bootstrap happened.
	return db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte("migrations")) == nil {
			return errors.New("migrations bucket not found")
		}
		return nil
	})
}

// New creates a new instance of MigrationV1
func New() *MigrationV1 {
	return &MigrationV1{}
}
