package datasets

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// BatchLoader iterates a task dataset in fixed-size batches and yields
// gomlx tensors, implementing the train.Dataset shape (Name, Yield, Reset)
// expected by gomlx training loops. Yield returns io.EOF at the end of an
// epoch; Reset starts the next one.
type BatchLoader struct {
	task      Task
	ds        Batcher
	batchSize int
	order     []int
	pos       int
	rand      *rand.Rand
}

// NewBatchLoader wraps ds, which must belong to task, with sequential
// batch iteration.
func NewBatchLoader(task Task, ds Batcher, batchSize int) (*BatchLoader, error) {
	if _, ok := taskTable[task]; !ok {
		return nil, fmt.Errorf("unrecognized task: %q. Must be one of %v", task, Tasks())
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	order := make([]int, ds.Len())
	for i := range order {
		order[i] = i
	}
	return &BatchLoader{task: task, ds: ds, batchSize: batchSize, order: order}, nil
}

// Name returns the task name.
func (l *BatchLoader) Name() string {
	return string(l.task)
}

// Shuffle switches the loader to shuffled iteration. The order is
// re-shuffled on every Reset.
func (l *BatchLoader) Shuffle(seed int64) {
	l.rand = rand.New(rand.NewSource(seed))
	l.rand.Shuffle(len(l.order), func(i, j int) {
		l.order[i], l.order[j] = l.order[j], l.order[i]
	})
}

// Yield returns the next batch split into input and label tensors in the
// task's field order. Returns io.EOF when the epoch is exhausted.
func (l *BatchLoader) Yield() (spec any, inputs []*tensors.Tensor, labels []*tensors.Tensor, err error) {
	if l.pos >= len(l.order) {
		return nil, nil, nil, io.EOF
	}
	end := l.pos + l.batchSize
	if end > len(l.order) {
		end = len(l.order)
	}
	indices := l.order[l.pos:end]
	l.pos = end

	batch, err := l.ds.Batch(indices)
	if err != nil {
		return nil, nil, nil, err
	}

	fields := taskTable[l.task]
	// Optional fields (token_lengths) may be absent from a batch; skip
	// them rather than yielding a nil tensor.
	for _, name := range fields.inputFields {
		if t, ok := batch[name]; ok {
			inputs = append(inputs, t)
		}
	}
	for _, name := range fields.labelFields {
		if t, ok := batch[name]; ok {
			labels = append(labels, t)
		}
	}
	return nil, inputs, labels, nil
}

// Reset rewinds the loader for a new epoch, re-shuffling when shuffled
// iteration is active.
func (l *BatchLoader) Reset() {
	l.pos = 0
	if l.rand != nil {
		l.rand.Shuffle(len(l.order), func(i, j int) {
			l.order[i], l.order[j] = l.order[j], l.order[i]
		})
	}
}
