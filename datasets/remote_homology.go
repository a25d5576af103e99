package datasets

import (
	"fmt"
	"path/filepath"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

var remoteHomologyModes = []string{
	"train", "valid", "test_fold_holdout", "test_family_holdout", "test_superfamily_holdout",
}

// RemoteHomologyExample is one fold classification example.
type RemoteHomologyExample struct {
	InputIDs      []int64
	AttentionMask []int64
	FoldLabel     int64
}

// RemoteHomologyDataset serves the remote homology fold classification
// task.
type RemoteHomologyDataset struct {
	inner *TokenizingDataset
}

// NewRemoteHomologyDataset opens the remote homology record store for the
// given mode under dataPath.
func NewRemoteHomologyDataset(dataPath, mode string, opts ...Option) (*RemoteHomologyDataset, error) {
	if err := validateMode(mode, remoteHomologyModes); err != nil {
		return nil, err
	}
	dataFile := filepath.Join("remote_homology", fmt.Sprintf("remote_homology_%s.lmdb", mode))
	inner, err := NewTokenizingDataset(dataPath, dataFile, opts...)
	if err != nil {
		return nil, err
	}
	return &RemoteHomologyDataset{inner: inner}, nil
}

// Len returns the number of examples.
func (d *RemoteHomologyDataset) Len() int { return d.inner.Len() }

// Close releases the underlying record store.
func (d *RemoteHomologyDataset) Close() error { return d.inner.Close() }

// Get returns the example at index with its fold label.
func (d *RemoteHomologyDataset) Get(index int) (RemoteHomologyExample, error) {
	ex, err := d.inner.Get(index)
	if err != nil {
		return RemoteHomologyExample{}, err
	}
	return RemoteHomologyExample{
		InputIDs:      ex.IDs,
		AttentionMask: ex.AttentionMask,
		FoldLabel:     ex.Record.FoldLabel,
	}, nil
}

// Batch fetches the given examples and collates them.
func (d *RemoteHomologyDataset) Batch(indices []int) (Batch, error) {
	examples := make([]RemoteHomologyExample, len(indices))
	for i, idx := range indices {
		ex, err := d.Get(idx)
		if err != nil {
			return nil, err
		}
		examples[i] = ex
	}
	return CollateRemoteHomology(examples)
}

// CollateRemoteHomology pads and stacks fold classification examples.
func CollateRemoteHomology(examples []RemoteHomologyExample) (Batch, error) {
	ids := make([][]int64, len(examples))
	masks := make([][]int64, len(examples))
	labels := make([]int64, len(examples))
	for i, ex := range examples {
		ids[i] = ex.InputIDs
		masks[i] = ex.AttentionMask
		labels[i] = ex.FoldLabel
	}

	batch := padCommon(ids, masks)
	batch["label"] = tensors.FromAnyValue(labels)
	return batch, nil
}
