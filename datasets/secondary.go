package datasets

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/tapeml/tapedata/tokenizers"
)

var secondaryStructureModes = []string{"train", "valid", "casp12", "ts115", "cb513"}

// SecondaryStructureExample is one per-residue labeling example. Labels
// align with the token sequence: a -1 at each boundary position, then one
// class label per residue. TokenLengths is nil for residue-level
// tokenizers; for subword tokenizers it holds per-token residue counts used
// for label expansion downstream.
type SecondaryStructureExample struct {
	InputIDs      []int64
	AttentionMask []int64
	Labels        []int64
	TokenLengths  []int64
}

// SecondaryStructureDataset serves the per-residue secondary structure
// labeling task with 3- or 8-class labels.
type SecondaryStructureDataset struct {
	inner      *TokenizingDataset
	numClasses int
	subword    bool
}

// NewSecondaryStructureDataset opens the secondary structure record store
// for the given mode under dataPath.
func NewSecondaryStructureDataset(dataPath, mode string, opts ...Option) (*SecondaryStructureDataset, error) {
	if err := validateMode(mode, secondaryStructureModes); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	if o.numClasses != 3 && o.numClasses != 8 {
		return nil, fmt.Errorf("invalid num_classes: %d. Must be 3 or 8", o.numClasses)
	}
	o.rawTokens = true
	dataFile := filepath.Join("secondary_structure", fmt.Sprintf("secondary_structure_%s.lmdb", mode))
	inner, err := newTokenizingDataset(dataPath, dataFile, o)
	if err != nil {
		return nil, err
	}

	subword := false
	if sw, ok := inner.Tokenizer().(tokenizers.Subworder); ok {
		subword = sw.Subword()
	}
	return &SecondaryStructureDataset{inner: inner, numClasses: o.numClasses, subword: subword}, nil
}

// Len returns the number of examples.
func (d *SecondaryStructureDataset) Len() int { return d.inner.Len() }

// Close releases the underlying record store.
func (d *SecondaryStructureDataset) Close() error { return d.inner.Close() }

// Get returns the example at index with boundary-aligned class labels.
func (d *SecondaryStructureDataset) Get(index int) (SecondaryStructureExample, error) {
	ex, err := d.inner.Get(index)
	if err != nil {
		return SecondaryStructureExample{}, err
	}

	classes := ex.Record.SS3
	if d.numClasses == 8 {
		classes = ex.Record.SS8
	}

	// -1 at both ends to line up with the cls/sep tokens.
	labels := make([]int64, 0, len(classes)+2)
	labels = append(labels, -1)
	labels = append(labels, classes...)
	labels = append(labels, -1)

	var tokenLengths []int64
	if d.subword {
		tokenLengths = subwordLengths(ex.Tokens)
	}

	ids, err := d.inner.Tokenizer().ConvertTokensToIDs(ex.Tokens)
	if err != nil {
		return SecondaryStructureExample{}, err
	}

	return SecondaryStructureExample{
		InputIDs:      ids,
		AttentionMask: ex.AttentionMask,
		Labels:        labels,
		TokenLengths:  tokenLengths,
	}, nil
}

// subwordLengths computes per-token residue counts for the non-boundary
// tokens. The first token carries the prepended word marker, so its length
// is decremented by one; the boundary positions get length 1.
func subwordLengths(tokens []string) []int64 {
	lengths := make([]int64, 0, len(tokens))
	lengths = append(lengths, 1)
	for i, token := range tokens[1 : len(tokens)-1] {
		n := int64(utf8.RuneCountInString(token))
		if i == 0 {
			n--
		}
		lengths = append(lengths, n)
	}
	lengths = append(lengths, 1)
	return lengths
}

// Batch fetches the given examples and collates them.
func (d *SecondaryStructureDataset) Batch(indices []int) (Batch, error) {
	examples := make([]SecondaryStructureExample, len(indices))
	for i, idx := range indices {
		ex, err := d.Get(idx)
		if err != nil {
			return nil, err
		}
		examples[i] = ex
	}
	return CollateSecondaryStructure(examples)
}

// CollateSecondaryStructure pads and stacks per-residue labeling examples.
// The token_lengths field is included only when every example in the batch
// provides one.
func CollateSecondaryStructure(examples []SecondaryStructureExample) (Batch, error) {
	ids := make([][]int64, len(examples))
	masks := make([][]int64, len(examples))
	labels := make([][]int64, len(examples))
	lengths := make([][]int64, len(examples))
	haveLengths := true
	for i, ex := range examples {
		ids[i] = ex.InputIDs
		masks[i] = ex.AttentionMask
		labels[i] = ex.Labels
		if ex.TokenLengths == nil {
			haveLengths = false
		}
		lengths[i] = ex.TokenLengths
	}

	batch := padCommon(ids, masks)
	batch["sequence_labels"] = tensors.FromAnyValue(padInt64(labels, -1))
	if haveLengths {
		batch["token_lengths"] = tensors.FromAnyValue(padInt64(lengths, 1))
	}
	return batch, nil
}
