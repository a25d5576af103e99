package datasets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestStoreDatasetMissingFile(t *testing.T) {
	_, err := NewStoreDataset(filepath.Join(t.TempDir(), "missing.lmdb"), CacheAuto)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStoreDatasetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.lmdb")
	records := []Record{
		seqRecord("prot1", "MVKL"),
		{ID: "prot2", Primary: "ACDE", ProteinLength: 4, FoldLabel: 7},
	}
	require.NoError(t, WriteStore(path, records))

	ds, err := NewStoreDataset(path, CacheAuto)
	require.NoError(t, err)
	defer ds.Close()

	assert.Equal(t, 2, ds.Len())

	rec, err := ds.Get(0)
	require.NoError(t, err)
	assert.Equal(t, records[0], rec)

	rec, err = ds.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), rec.FoldLabel)
}

func TestStoreDatasetOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.lmdb")
	require.NoError(t, WriteStore(path, []Record{seqRecord("prot1", "MVKL")}))

	ds, err := NewStoreDataset(path, CacheAuto)
	require.NoError(t, err)
	defer ds.Close()

	_, err = ds.Get(5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestStoreDatasetCachedReads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.lmdb")
	require.NoError(t, WriteStore(path, []Record{
		seqRecord("prot1", "MVKL"),
		seqRecord("prot2", "ACDE"),
	}))

	ds, err := NewStoreDataset(path, CacheAll)
	require.NoError(t, err)
	defer ds.Close()

	first, err := ds.Get(1)
	require.NoError(t, err)

	// Once cached the value is served without re-reading.
	require.NotNil(t, ds.cache[1])
	second, err := ds.Get(1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Nil(t, ds.cache[0])
}

func TestStoreDatasetMissingMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.lmdb")
	db, err := bbolt.Open(path, 0o644, nil)
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(recordsBucket))
		return err
	}))
	require.NoError(t, db.Close())

	_, err = NewStoreDataset(path, CacheAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), numExamplesKey)
}

func TestStoreDatasetMalformedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.lmdb")
	db, err := bbolt.Open(path, 0o644, nil)
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(recordsBucket))
		if err != nil {
			return err
		}
		if err := b.Put([]byte("0"), []byte("{not json")); err != nil {
			return err
		}
		return b.Put([]byte(numExamplesKey), []byte("1"))
	}))
	require.NoError(t, db.Close())

	ds, err := NewStoreDataset(path, CacheAuto)
	require.NoError(t, err)
	defer ds.Close()

	// Deserialization failures surface unwrapped.
	_, err = ds.Get(0)
	require.Error(t, err)
	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}
