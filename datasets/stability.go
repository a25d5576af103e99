package datasets

import (
	"fmt"
	"path/filepath"
)

var stabilityModes = []string{"train", "valid", "test"}

// StabilityDataset serves the protein stability regression task.
type StabilityDataset struct {
	inner *TokenizingDataset
}

// NewStabilityDataset opens the stability record store for the given mode
// under dataPath.
func NewStabilityDataset(dataPath, mode string, opts ...Option) (*StabilityDataset, error) {
	if err := validateMode(mode, stabilityModes); err != nil {
		return nil, err
	}
	dataFile := filepath.Join("stability", fmt.Sprintf("stability_%s.lmdb", mode))
	inner, err := NewTokenizingDataset(dataPath, dataFile, opts...)
	if err != nil {
		return nil, err
	}
	return &StabilityDataset{inner: inner}, nil
}

// Len returns the number of examples.
func (d *StabilityDataset) Len() int { return d.inner.Len() }

// Close releases the underlying record store.
func (d *StabilityDataset) Close() error { return d.inner.Close() }

// Get returns the example at index with its stability score target.
func (d *StabilityDataset) Get(index int) (ScalarExample, error) {
	ex, err := d.inner.Get(index)
	if err != nil {
		return ScalarExample{}, err
	}
	if len(ex.Record.StabilityScore) == 0 {
		return ScalarExample{}, fmt.Errorf("record %d has no stability_score value", index)
	}
	return ScalarExample{
		InputIDs:      ex.IDs,
		AttentionMask: ex.AttentionMask,
		Target:        ex.Record.StabilityScore[0],
	}, nil
}

// Batch fetches the given examples and collates them.
func (d *StabilityDataset) Batch(indices []int) (Batch, error) {
	examples, err := gatherScalar(d.Get, indices)
	if err != nil {
		return nil, err
	}
	return CollateStability(examples)
}

// CollateStability pads and stacks stability regression examples.
func CollateStability(examples []ScalarExample) (Batch, error) {
	return collateScalar(examples)
}
