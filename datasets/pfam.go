package datasets

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// maskProbability is the chance that a token position is selected for
// masked language modeling.
const maskProbability = 0.15

var pfamModes = []string{"train", "valid", "holdout"}

// PfamExample is one masked language modeling example. Labels holds the
// original token id at masked positions and -1 everywhere else.
type PfamExample struct {
	InputIDs      []int64
	AttentionMask []int64
	Labels        []int64
	Clan          int64
	Family        int64
}

// PfamDataset serves the Pfam corpus with BERT-style masking applied to
// each example on access.
type PfamDataset struct {
	inner *TokenizingDataset
	rng   *rand.Rand
}

// NewPfamDataset opens the Pfam record store for the given mode under
// dataPath.
func NewPfamDataset(dataPath, mode string, opts ...Option) (*PfamDataset, error) {
	if err := validateMode(mode, pfamModes); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	o.rawTokens = true
	dataFile := filepath.Join("pfam", fmt.Sprintf("pfam_%s.lmdb", mode))
	inner, err := newTokenizingDataset(dataPath, dataFile, o)
	if err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if o.hasSeed {
		seed = o.seed
	}
	return &PfamDataset{inner: inner, rng: rand.New(rand.NewSource(seed))}, nil
}

// Len returns the number of examples.
func (d *PfamDataset) Len() int { return d.inner.Len() }

// Close releases the underlying record store.
func (d *PfamDataset) Close() error { return d.inner.Close() }

// Get fetches the example at index and applies the masking procedure.
func (d *PfamDataset) Get(index int) (PfamExample, error) {
	ex, err := d.inner.Get(index)
	if err != nil {
		return PfamExample{}, err
	}

	masked, labels := d.applyBERTMask(ex.Tokens)
	ids, err := d.inner.Tokenizer().ConvertTokensToIDs(masked)
	if err != nil {
		return PfamExample{}, err
	}

	return PfamExample{
		InputIDs:      ids,
		AttentionMask: ex.AttentionMask,
		Labels:        labels,
		Clan:          ex.Record.Clan,
		Family:        ex.Record.Family,
	}, nil
}

// applyBERTMask selects each position with probability 0.15 and records the
// original token id as its label. Selected tokens are replaced with the
// mask token 80% of the time, a uniformly random vocabulary token 10% of
// the time, and left unchanged otherwise. Every position is eligible,
// including the cls/sep boundary tokens, matching the reference pipeline
// this loader replaces.
func (d *PfamDataset) applyBERTMask(tokens []string) ([]string, []int64) {
	tok := d.inner.Tokenizer()
	masked := make([]string, len(tokens))
	copy(masked, tokens)
	labels := make([]int64, len(tokens))
	for i := range labels {
		labels[i] = -1
	}

	for i, token := range tokens {
		prob := d.rng.Float64()
		if prob >= maskProbability {
			continue
		}
		prob /= maskProbability

		ids, err := tok.ConvertTokensToIDs([]string{token})
		if err != nil {
			continue
		}
		labels[i] = ids[0]

		switch {
		case prob < 0.8:
			masked[i] = tok.MaskToken()
		case prob < 0.9:
			random, err := tok.ConvertIDToToken(int64(d.rng.Intn(tok.VocabSize())))
			if err == nil {
				masked[i] = random
			}
		default:
			// keep the original token
		}
	}
	return masked, labels
}

// Batch fetches the given examples and collates them.
func (d *PfamDataset) Batch(indices []int) (Batch, error) {
	examples := make([]PfamExample, len(indices))
	for i, idx := range indices {
		ex, err := d.Get(idx)
		if err != nil {
			return nil, err
		}
		examples[i] = ex
	}
	return CollatePfam(examples)
}

// CollatePfam pads and stacks masked language modeling examples. Label
// positions outside an example use the ignore index -1.
func CollatePfam(examples []PfamExample) (Batch, error) {
	ids := make([][]int64, len(examples))
	masks := make([][]int64, len(examples))
	labels := make([][]int64, len(examples))
	clans := make([]int64, len(examples))
	families := make([]int64, len(examples))
	for i, ex := range examples {
		ids[i] = ex.InputIDs
		masks[i] = ex.AttentionMask
		labels[i] = ex.Labels
		clans[i] = ex.Clan
		families[i] = ex.Family
	}

	batch := padCommon(ids, masks)
	batch["masked_lm_labels"] = tensors.FromAnyValue(padInt64(labels, -1))
	batch["clan_labels"] = tensors.FromAnyValue(clans)
	batch["family_labels"] = tensors.FromAnyValue(families)
	return batch, nil
}
