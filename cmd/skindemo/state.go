package main

import (
	"encoding/binary"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketFocus = "focus"

// ErrNoState is returned by LastFocus when nothing was saved for a list.
var ErrNoState = errors.New("no saved state")

// Store keeps the index last focused in each named list across runs.
type Store struct {
	db *bolt.DB
}

// OpenStore opens or creates the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketFocus))
		return err
	})
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return &Store{db}, nil
}

// LastFocus returns the saved index of list.
func (s *Store) LastFocus(list string) (int, error) {
	var index int
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketFocus)).Get([]byte(list))
		if len(v) != 8 {
			return ErrNoState
		}
		index = int(binary.BigEndian.Uint64(v))
		return nil
	})
	return index, err
}

// SaveFocus records index for list.
func (s *Store) SaveFocus(list string, index int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		var v [8]byte
		binary.BigEndian.PutUint64(v[:], uint64(index))
		return tx.Bucket([]byte(bucketFocus)).Put([]byte(list), v[:])
	})
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }
