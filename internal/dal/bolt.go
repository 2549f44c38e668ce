package dal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// BoltDB stores list memberships in one bucket per list. Buckets are created
// by migrations; the caller opens the database and runs them before this.
type BoltDB struct {
	db  *bbolt.DB
	now func() time.Time
}

func NewBoltDB(db *bbolt.DB) (*BoltDB, error) {
	err := db.View(func(tx *bbolt.Tx) error {
		for _, list := range KnownLists() {
			if tx.Bucket(listBucket(list)) == nil {
				return fmt.Errorf("bucket for list %q not found; run migrations first", list)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &BoltDB{db: db, now: time.Now}, nil
}

// AddMember inserts the chat into the list. Adding an existing member keeps
// the original record untouched.
func (s *BoltDB) AddMember(_ context.Context, list string, chatID int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucketFor(tx, list)
		if err != nil {
			return err
		}

		id := i64tob(chatID)
		if b.Get(id) != nil {
			return nil
		}

		data, err := json.Marshal(Membership{ChatID: chatID, JoinedAt: s.now()})
		if err != nil {
			return fmt.Errorf("marshal membership for chatID=%d: %w", chatID, err)
		}
		if err := b.Put(id, data); err != nil {
			return fmt.Errorf("put membership for chatID=%d: %w", chatID, err)
		}

		return nil
	})
}

// RemoveMember deletes the chat from the list. Removing an absent member is a no-op.
func (s *BoltDB) RemoveMember(_ context.Context, list string, chatID int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucketFor(tx, list)
		if err != nil {
			return err
		}

		if err := b.Delete(i64tob(chatID)); err != nil {
			return fmt.Errorf("delete membership for chatID=%d: %w", chatID, err)
		}

		return nil
	})
}

func (s *BoltDB) IsMember(_ context.Context, list string, chatID int64) (bool, error) {
	res := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucketFor(tx, list)
		if err != nil {
			return err
		}
		if b.Get(i64tob(chatID)) != nil {
			res = true
		}
		return nil
	})

	return res, err
}

func (s *BoltDB) Members(_ context.Context, list string) ([]int64, error) {
	var res []int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucketFor(tx, list)
		if err != nil {
			return err
		}

		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			id, err := btoi64(k)
			if err != nil {
				return fmt.Errorf("list %q: %w", list, err)
			}
			res = append(res, id)
		}

		return nil
	})

	return res, err
}

func (s *BoltDB) Close() error {
	return s.db.Close()
}

func listBucket(list string) []byte {
	return []byte("subscribers:" + list)
}

func bucketFor(tx *bbolt.Tx, list string) (*bbolt.Bucket, error) {
	b := tx.Bucket(listBucket(list))
	if b == nil {
		return nil, fmt.Errorf("unknown list %q", list)
	}
	return b, nil
}
