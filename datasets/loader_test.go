package datasets

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapeml/tapedata/tokenizers"
)

func newLoaderFixture(t *testing.T, batchSize int) *BatchLoader {
	t.Helper()
	root := t.TempDir()
	records := []Record{
		{ID: "gfp1", Primary: "MVK", ProteinLength: 3, LogFluorescence: []float32{1}},
		{ID: "gfp2", Primary: "MVKL", ProteinLength: 4, LogFluorescence: []float32{2}},
		{ID: "gfp3", Primary: "AC", ProteinLength: 2, LogFluorescence: []float32{3}},
		{ID: "gfp4", Primary: "ACDE", ProteinLength: 4, LogFluorescence: []float32{4}},
		{ID: "gfp5", Primary: "WY", ProteinLength: 2, LogFluorescence: []float32{5}},
	}
	writeTaskStore(t, root, "fluorescence", "train", records)

	ds, err := NewFluorescenceDataset(root, "train",
		WithTokenizer(tokenizers.NewAminoAcid()))
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })

	loader, err := NewBatchLoader(TaskFluorescence, ds, batchSize)
	require.NoError(t, err)
	return loader
}

func TestBatchLoaderEpoch(t *testing.T) {
	loader := newLoaderFixture(t, 2)
	assert.Equal(t, "fluorescence", loader.Name())

	batches := 0
	for {
		_, inputs, labels, err := loader.Yield()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.Len(t, inputs, 2)
		require.Len(t, labels, 1)
		batches++
	}
	// 5 examples at batch size 2: two full batches plus the remainder.
	assert.Equal(t, 3, batches)

	// A fresh epoch starts after Reset.
	loader.Reset()
	_, inputs, _, err := loader.Yield()
	require.NoError(t, err)
	assert.Equal(t, 2, inputs[0].Shape().Dimensions[0])
}

func TestBatchLoaderSequentialOrder(t *testing.T) {
	loader := newLoaderFixture(t, 2)

	_, _, labels, err := loader.Yield()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, labels[0].Value().([]float32))
}

func TestBatchLoaderShuffleDeterminism(t *testing.T) {
	a := newLoaderFixture(t, 5)
	b := newLoaderFixture(t, 5)
	a.Shuffle(7)
	b.Shuffle(7)

	_, _, labelsA, err := a.Yield()
	require.NoError(t, err)
	_, _, labelsB, err := b.Yield()
	require.NoError(t, err)

	targetsA := labelsA[0].Value().([]float32)
	targetsB := labelsB[0].Value().([]float32)
	assert.Equal(t, targetsA, targetsB)

	// The shuffled order covers every example exactly once.
	seen := map[float32]bool{}
	for _, v := range targetsA {
		seen[v] = true
	}
	assert.Len(t, seen, 5)
}

func TestBatchLoaderValidation(t *testing.T) {
	root := t.TempDir()
	writeTaskStore(t, root, "fluorescence", "train", []Record{
		{ID: "gfp1", Primary: "MVK", ProteinLength: 3, LogFluorescence: []float32{1}},
	})
	ds, err := NewFluorescenceDataset(root, "train",
		WithTokenizer(tokenizers.NewAminoAcid()))
	require.NoError(t, err)
	defer ds.Close()

	_, err = NewBatchLoader("tertiary_structure", ds, 2)
	assert.Error(t, err)

	_, err = NewBatchLoader(TaskFluorescence, ds, 0)
	assert.Error(t, err)
}
