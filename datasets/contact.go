package datasets

import (
	"fmt"
	"path/filepath"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"gonum.org/v1/gonum/floats"
)

// ContactThreshold is the Euclidean distance in angstroms under which two
// residues are in contact.
const ContactThreshold = 8.0

var contactModes = []string{"train", "train_unfiltered", "valid", "test"}

// ContactExample is one contact prediction example. ContactMap is N x N
// over residues: 1 for contact, 0 for no contact, -1 where either residue
// is marked invalid.
type ContactExample struct {
	InputIDs      []int64
	AttentionMask []int64
	ContactMap    [][]int64
}

// ContactDataset serves the proteinnet contact prediction task.
type ContactDataset struct {
	inner *TokenizingDataset
}

// NewContactDataset opens the proteinnet record store for the given mode
// under dataPath.
func NewContactDataset(dataPath, mode string, opts ...Option) (*ContactDataset, error) {
	if err := validateMode(mode, contactModes); err != nil {
		return nil, err
	}
	dataFile := filepath.Join("proteinnet", fmt.Sprintf("proteinnet_%s.lmdb", mode))
	inner, err := NewTokenizingDataset(dataPath, dataFile, opts...)
	if err != nil {
		return nil, err
	}
	return &ContactDataset{inner: inner}, nil
}

// Len returns the number of examples.
func (d *ContactDataset) Len() int { return d.inner.Len() }

// Close releases the underlying record store.
func (d *ContactDataset) Close() error { return d.inner.Close() }

// Get returns the example at index with its derived contact map.
func (d *ContactDataset) Get(index int) (ContactExample, error) {
	ex, err := d.inner.Get(index)
	if err != nil {
		return ContactExample{}, err
	}
	contacts, err := contactMap(ex.Record.Tertiary, ex.Record.ValidMask)
	if err != nil {
		return ContactExample{}, fmt.Errorf("record %d: %w", index, err)
	}
	return ContactExample{
		InputIDs:      ex.IDs,
		AttentionMask: ex.AttentionMask,
		ContactMap:    contacts,
	}, nil
}

// contactMap thresholds pairwise Euclidean distances between residue
// coordinates at ContactThreshold. Pairs touching an invalid residue get
// the ignore index -1.
func contactMap(tertiary [][]float64, valid []bool) ([][]int64, error) {
	n := len(tertiary)
	if len(valid) != n {
		return nil, fmt.Errorf("valid_mask length %d does not match tertiary length %d", len(valid), n)
	}

	m := make([][]int64, n)
	for i := range m {
		m[i] = make([]int64, n)
		for j := range m[i] {
			if !valid[i] || !valid[j] {
				m[i][j] = -1
				continue
			}
			if floats.Distance(tertiary[i], tertiary[j], 2) < ContactThreshold {
				m[i][j] = 1
			}
		}
	}
	return m, nil
}

// Batch fetches the given examples and collates them.
func (d *ContactDataset) Batch(indices []int) (Batch, error) {
	examples := make([]ContactExample, len(indices))
	for i, idx := range indices {
		ex, err := d.Get(idx)
		if err != nil {
			return nil, err
		}
		examples[i] = ex
	}
	return CollateContact(examples)
}

// CollateContact pads and stacks contact prediction examples. Contact maps
// pad with the ignore index -1 along both axes.
func CollateContact(examples []ContactExample) (Batch, error) {
	ids := make([][]int64, len(examples))
	masks := make([][]int64, len(examples))
	contacts := make([][][]int64, len(examples))
	for i, ex := range examples {
		ids[i] = ex.InputIDs
		masks[i] = ex.AttentionMask
		contacts[i] = ex.ContactMap
	}

	batch := padCommon(ids, masks)
	batch["contact_labels"] = tensors.FromAnyValue(padInt64Grid(contacts, -1))
	return batch, nil
}
