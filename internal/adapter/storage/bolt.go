package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/freshmarket/pkg/retry"
	bolt "go.etcd.io/bbolt"
)

var (
	recordsBucket = []byte("records")
	eventsBucket  = []byte("events")
)

// BoltStore is the durable key-value file backing all persisted records.
// A write replaces the whole named record; a read of an absent record
// yields nil without an error.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the store file. Opening retries for a
// short while because a previous process may still hold the file lock.
func NewBoltStore(ctx context.Context, path string) (*BoltStore, error) {
	const op = "BoltStore"
	log := slog.With("op", op)

	retryCfg := retry.RetryConfig{
		MaxAttempts: 5,
		Backoff:     retry.LinearBackoff(200 * time.Millisecond),
	}

	db, err := retry.DoWithResult(ctx, retryCfg, func() (*bolt.DB, error) {
		return bolt.Open(path, 0o600, &bolt.Options{
			Timeout: time.Second,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open store file: %w", op, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{recordsBucket, eventsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: failed to init buckets: %w", op, err)
	}

	log.Info("store file is available", "path", path)
	return &BoltStore{db}, nil
}

// ReadRecord returns the last-written value for the named record,
// or nil if the record was never written.
func (s *BoltStore) ReadRecord(name string) ([]byte, error) {
	const op = "BoltStore.ReadRecord"

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(recordsBucket).Get([]byte(name))
		if v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

// WriteRecord replaces the named record with data.
func (s *BoltStore) WriteRecord(name string, data []byte) error {
	const op = "BoltStore.WriteRecord"

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).Put([]byte(name), data)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AppendEvent adds data to the event log under the next sequence number.
func (s *BoltStore) AppendEvent(data []byte) error {
	const op = "BoltStore.AppendEvent"

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(eventsBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(fmt.Appendf(nil, "%016d", seq), data)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *BoltStore) Close() {
	const op = "BoltStore.Close"
	log := slog.With("op", op)

	log.Info("closing store file...")
	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("store file is closed")
}
