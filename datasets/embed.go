package datasets

import "fmt"

// EmbedDataset serves raw tokenized sequences for embedding extraction.
// Unlike the task datasets it takes the data file directly rather than a
// mode name.
type EmbedDataset struct {
	*TokenizingDataset
}

// NewEmbedDataset opens dataFile (absolute or relative to dataPath) for
// embedding extraction.
func NewEmbedDataset(dataPath, dataFile string, opts ...Option) (*EmbedDataset, error) {
	inner, err := NewTokenizingDataset(dataPath, dataFile, opts...)
	if err != nil {
		return nil, err
	}
	return &EmbedDataset{TokenizingDataset: inner}, nil
}

// Batch fetches the given examples and collates them.
func (d *EmbedDataset) Batch(indices []int) (Batch, error) {
	examples := make([]TokenizedExample, len(indices))
	for i, idx := range indices {
		ex, err := d.Get(idx)
		if err != nil {
			return nil, err
		}
		examples[i] = ex
	}
	return CollateEmbed(examples)
}

// CollateEmbed pads and stacks tokenized examples into an embedding batch.
func CollateEmbed(examples []TokenizedExample) (Batch, error) {
	ids := make([][]int64, len(examples))
	masks := make([][]int64, len(examples))
	for i, ex := range examples {
		if ex.IDs == nil {
			return nil, fmt.Errorf("example %d has no token ids; embed batches need id conversion", i)
		}
		ids[i] = ex.IDs
		masks[i] = ex.AttentionMask
	}
	return padCommon(ids, masks), nil
}
