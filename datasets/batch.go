package datasets

import "github.com/gomlx/gomlx/pkg/core/tensors"

// Batch maps model input names to stacked tensors. The leading dimension of
// every tensor is the example count; padded fields use the per-batch
// maximum along each remaining axis.
type Batch map[string]*tensors.Tensor

// Batcher is the capability every task dataset shares: sized random access
// collated into model-ready batches.
type Batcher interface {
	Len() int
	Batch(indices []int) (Batch, error)
	Close() error
}

// padCommon collates the input_ids and attention_mask fields shared by
// every task batch. Pad index for both is zero.
func padCommon(ids, masks [][]int64) Batch {
	return Batch{
		"input_ids":      tensors.FromAnyValue(padInt64(ids, 0)),
		"attention_mask": tensors.FromAnyValue(padInt64(masks, 0)),
	}
}
