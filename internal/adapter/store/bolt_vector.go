package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"docingest/internal/domain"
)

var bucketNamespaces = []byte("namespaces")

// BoltVectorStore keeps embedded chunks in a local BoltDB file, one nested
// bucket per namespace. Used for development and tests in place of a hosted
// index.
type BoltVectorStore struct {
	db        *bbolt.DB
	dimension int
}

type storedRecord struct {
	Values   []float32             `json:"v"`
	Metadata domain.RecordMetadata `json:"m"`
}

func NewBoltVectorStore(path string, dimension int) (*BoltVectorStore, error) {
	db, err := bbolt.Open(path, 0644, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketNamespaces)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create namespaces bucket: %w", err)
	}

	return &BoltVectorStore{
		db:        db,
		dimension: dimension,
	}, nil
}

func (s *BoltVectorStore) Upsert(_ context.Context, namespace string, records []domain.VectorRecord) error {
	if namespace == "" {
		return fmt.Errorf("namespace is empty")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(bucketNamespaces)
		b, err := root.CreateBucketIfNotExists([]byte(namespace))
		if err != nil {
			return fmt.Errorf("failed to create namespace bucket: %w", err)
		}

		for _, record := range records {
			if s.dimension > 0 && len(record.Values) != s.dimension {
				return fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dimension, len(record.Values))
			}

			data, err := json.Marshal(storedRecord{
				Values:   record.Values,
				Metadata: record.Metadata,
			})
			if err != nil {
				return err
			}

			if err := b.Put([]byte(record.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltVectorStore) Count(_ context.Context, namespace string) (int, error) {
	count := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketNamespaces).Bucket([]byte(namespace))
		if b == nil {
			return nil
		}
		count = b.Stats().KeyN
		return nil
	})
	return count, err
}

func (s *BoltVectorStore) Close() error {
	return s.db.Close()
}
