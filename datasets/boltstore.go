package datasets

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"go.etcd.io/bbolt"
)

const (
	// recordsBucket holds the serialized records, keyed by decimal index.
	recordsBucket = "records"
	// numExamplesKey is the reserved metadata key holding the record count.
	numExamplesKey = "num_examples"
)

// StoreDataset is a random-access view over a bolt record store, keyed by
// record index. The store is opened read-only and every read runs in its
// own short-lived view transaction, released on return.
//
// The record count is read once at open time from the num_examples key and
// trusted for the dataset's lifetime. With CacheAll a per-slot cache is
// populated lazily on first access and never invalidated. The cache is not
// synchronized; use one dataset instance per worker.
type StoreDataset struct {
	db    *bbolt.DB
	n     int
	cache []*Record
}

// NewStoreDataset opens the record store at path read-only.
func NewStoreDataset(path string, cache CacheMode) (*StoreDataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("record store not found: %w", err)
	}

	db, err := bbolt.Open(path, 0o400, &bbolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open record store %s: %w", path, err)
	}

	var n int
	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(recordsBucket))
		if b == nil {
			return fmt.Errorf("record store %s has no %q bucket", path, recordsBucket)
		}
		v := b.Get([]byte(numExamplesKey))
		if v == nil {
			return fmt.Errorf("record store %s is missing the %q key", path, numExamplesKey)
		}
		return json.Unmarshal(v, &n)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	d := &StoreDataset{db: db, n: n}
	if cache == CacheAll {
		d.cache = make([]*Record, n)
	}
	return d, nil
}

// Len returns the record count reported by the store metadata.
func (d *StoreDataset) Len() int {
	return d.n
}

// Get returns the record at index. Deserialization failures propagate
// unmodified.
func (d *StoreDataset) Get(index int) (Record, error) {
	if err := checkIndex(index, d.n); err != nil {
		return Record{}, err
	}
	if d.cache != nil && d.cache[index] != nil {
		return *d.cache[index], nil
	}

	var raw []byte
	err := d.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(recordsBucket))
		if b == nil {
			return fmt.Errorf("record store has no %q bucket", recordsBucket)
		}
		v := b.Get([]byte(strconv.Itoa(index)))
		if v == nil {
			return fmt.Errorf("record store has no record at key %d", index)
		}
		raw = make([]byte, len(v))
		copy(raw, v)
		return nil
	})
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, err
	}
	if d.cache != nil {
		cached := rec
		d.cache[index] = &cached
	}
	return rec, nil
}

// Close releases the underlying store handle.
func (d *StoreDataset) Close() error {
	return d.db.Close()
}

// WriteStore creates a record store at path from the given records, keyed
// by decimal index, with the num_examples metadata key. Used by the pack
// command and by tests to build fixtures.
func WriteStore(path string, records []Record) error {
	db, err := bbolt.Open(path, 0o644, nil)
	if err != nil {
		return fmt.Errorf("failed to create record store %s: %w", path, err)
	}
	defer db.Close()

	return db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(recordsBucket))
		if err != nil {
			return err
		}
		for i, rec := range records {
			raw, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("failed to serialize record %d: %w", i, err)
			}
			if err := b.Put([]byte(strconv.Itoa(i)), raw); err != nil {
				return err
			}
		}
		count, err := json.Marshal(len(records))
		if err != nil {
			return err
		}
		return b.Put([]byte(numExamplesKey), count)
	})
}
