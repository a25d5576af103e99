package datasets

import (
	"fmt"
	"path/filepath"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

var fluorescenceModes = []string{"train", "valid", "test"}

// ScalarExample is one example for the scalar regression tasks: token ids,
// attention mask and a single float target.
type ScalarExample struct {
	InputIDs      []int64
	AttentionMask []int64
	Target        float32
}

// FluorescenceDataset serves the GFP fluorescence regression task.
type FluorescenceDataset struct {
	inner *TokenizingDataset
}

// NewFluorescenceDataset opens the fluorescence record store for the given
// mode under dataPath.
func NewFluorescenceDataset(dataPath, mode string, opts ...Option) (*FluorescenceDataset, error) {
	if err := validateMode(mode, fluorescenceModes); err != nil {
		return nil, err
	}
	dataFile := filepath.Join("fluorescence", fmt.Sprintf("fluorescence_%s.lmdb", mode))
	inner, err := NewTokenizingDataset(dataPath, dataFile, opts...)
	if err != nil {
		return nil, err
	}
	return &FluorescenceDataset{inner: inner}, nil
}

// Len returns the number of examples.
func (d *FluorescenceDataset) Len() int { return d.inner.Len() }

// Close releases the underlying record store.
func (d *FluorescenceDataset) Close() error { return d.inner.Close() }

// Get returns the example at index with its log-fluorescence target.
func (d *FluorescenceDataset) Get(index int) (ScalarExample, error) {
	ex, err := d.inner.Get(index)
	if err != nil {
		return ScalarExample{}, err
	}
	if len(ex.Record.LogFluorescence) == 0 {
		return ScalarExample{}, fmt.Errorf("record %d has no log_fluorescence value", index)
	}
	return ScalarExample{
		InputIDs:      ex.IDs,
		AttentionMask: ex.AttentionMask,
		Target:        ex.Record.LogFluorescence[0],
	}, nil
}

// Batch fetches the given examples and collates them.
func (d *FluorescenceDataset) Batch(indices []int) (Batch, error) {
	examples, err := gatherScalar(d.Get, indices)
	if err != nil {
		return nil, err
	}
	return CollateFluorescence(examples)
}

// CollateFluorescence pads and stacks fluorescence regression examples.
func CollateFluorescence(examples []ScalarExample) (Batch, error) {
	return collateScalar(examples)
}

func gatherScalar(get func(int) (ScalarExample, error), indices []int) ([]ScalarExample, error) {
	examples := make([]ScalarExample, len(indices))
	for i, idx := range indices {
		ex, err := get(idx)
		if err != nil {
			return nil, err
		}
		examples[i] = ex
	}
	return examples, nil
}

// collateScalar is shared by the scalar regression tasks: ids and mask are
// zero-padded, targets stack into a flat float vector under "target".
func collateScalar(examples []ScalarExample) (Batch, error) {
	ids := make([][]int64, len(examples))
	masks := make([][]int64, len(examples))
	targets := make([]float32, len(examples))
	for i, ex := range examples {
		ids[i] = ex.InputIDs
		masks[i] = ex.AttentionMask
		targets[i] = ex.Target
	}

	batch := padCommon(ids, masks)
	batch["target"] = tensors.FromAnyValue(targets)
	return batch, nil
}
