package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapeml/tapedata/tokenizers"
)

func TestFluorescenceDatasetInvalidMode(t *testing.T) {
	_, err := NewFluorescenceDataset(t.TempDir(), "holdout",
		WithTokenizer(tokenizers.NewAminoAcid()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unrecognized mode: "holdout"`)
	assert.Contains(t, err.Error(), "valid")
}

func TestFluorescenceCollate(t *testing.T) {
	root := t.TempDir()
	writeTaskStore(t, root, "fluorescence", "train", []Record{
		{ID: "gfp1", Primary: "MVK", ProteinLength: 3, LogFluorescence: []float32{1.5}},
		{ID: "gfp2", Primary: "MVKLAC", ProteinLength: 6, LogFluorescence: []float32{3.25}},
	})

	ds, err := NewFluorescenceDataset(root, "train",
		WithTokenizer(tokenizers.NewAminoAcid()))
	require.NoError(t, err)
	defer ds.Close()

	batch, err := ds.Batch([]int{0, 1})
	require.NoError(t, err)

	// Token lengths 5 and 8: ids pad right with zeros to [2, 8], targets
	// stack into a flat float vector.
	assert.Equal(t, []int{2, 8}, batch["input_ids"].Shape().Dimensions)
	ids := batch["input_ids"].Value().([][]int64)
	assert.Equal(t, []int64{0, 0, 0}, ids[0][5:])
	assert.NotEqual(t, int64(0), ids[0][0])

	assert.Equal(t, []int{2}, batch["target"].Shape().Dimensions)
	assert.Equal(t, []float32{1.5, 3.25}, batch["target"].Value().([]float32))
}

func TestFluorescenceMissingTarget(t *testing.T) {
	root := t.TempDir()
	writeTaskStore(t, root, "fluorescence", "train", []Record{seqRecord("gfp1", "MVK")})

	ds, err := NewFluorescenceDataset(root, "train",
		WithTokenizer(tokenizers.NewAminoAcid()))
	require.NoError(t, err)
	defer ds.Close()

	_, err = ds.Get(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_fluorescence")
}

func TestStabilityDataset(t *testing.T) {
	root := t.TempDir()
	writeTaskStore(t, root, "stability", "test", []Record{
		{ID: "des1", Primary: "MVKL", ProteinLength: 4, StabilityScore: []float32{-0.75}},
	})

	ds, err := NewStabilityDataset(root, "test",
		WithTokenizer(tokenizers.NewAminoAcid()))
	require.NoError(t, err)
	defer ds.Close()

	ex, err := ds.Get(0)
	require.NoError(t, err)
	assert.Equal(t, float32(-0.75), ex.Target)
	assert.Len(t, ex.InputIDs, 6)

	_, err = NewStabilityDataset(t.TempDir(), "casp12",
		WithTokenizer(tokenizers.NewAminoAcid()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized mode")
}

func TestRemoteHomologyDataset(t *testing.T) {
	root := t.TempDir()
	writeTaskStore(t, root, "remote_homology", "test_fold_holdout", []Record{
		{ID: "d1", Primary: "MVK", ProteinLength: 3, FoldLabel: 42},
		{ID: "d2", Primary: "AC", ProteinLength: 2, FoldLabel: 7},
	})

	ds, err := NewRemoteHomologyDataset(root, "test_fold_holdout",
		WithTokenizer(tokenizers.NewAminoAcid()))
	require.NoError(t, err)
	defer ds.Close()

	batch, err := ds.Batch([]int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{42, 7}, batch["label"].Value().([]int64))

	_, err = NewRemoteHomologyDataset(t.TempDir(), "test",
		WithTokenizer(tokenizers.NewAminoAcid()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test_superfamily_holdout")
}
