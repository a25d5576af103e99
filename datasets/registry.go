package datasets

import (
	"fmt"
	"sort"
)

// Task identifies one of the supported prediction tasks.
type Task string

const (
	TaskEmbed              Task = "embed"
	TaskPfam               Task = "pfam"
	TaskFluorescence       Task = "fluorescence"
	TaskStability          Task = "stability"
	TaskRemoteHomology     Task = "remote_homology"
	TaskContactPrediction  Task = "contact_prediction"
	TaskSecondaryStructure Task = "secondary_structure"
)

// taskSpec pairs a task's dataset constructor with the batch field order
// used when splitting batches into model inputs and labels.
type taskSpec struct {
	open        func(dataPath, mode string, opts ...Option) (Batcher, error)
	inputFields []string
	labelFields []string
}

// taskTable is the closed table of supported tasks. Tasks register here at
// compile time; there is no runtime registration.
var taskTable = map[Task]taskSpec{
	TaskEmbed: {
		open: func(dataPath, mode string, opts ...Option) (Batcher, error) {
			// For embedding extraction the mode argument is the data file
			// itself.
			return NewEmbedDataset(dataPath, mode, opts...)
		},
		inputFields: []string{"input_ids", "attention_mask"},
	},
	TaskPfam: {
		open: func(dataPath, mode string, opts ...Option) (Batcher, error) {
			return NewPfamDataset(dataPath, mode, opts...)
		},
		inputFields: []string{"input_ids", "attention_mask"},
		labelFields: []string{"masked_lm_labels", "clan_labels", "family_labels"},
	},
	TaskFluorescence: {
		open: func(dataPath, mode string, opts ...Option) (Batcher, error) {
			return NewFluorescenceDataset(dataPath, mode, opts...)
		},
		inputFields: []string{"input_ids", "attention_mask"},
		labelFields: []string{"target"},
	},
	TaskStability: {
		open: func(dataPath, mode string, opts ...Option) (Batcher, error) {
			return NewStabilityDataset(dataPath, mode, opts...)
		},
		inputFields: []string{"input_ids", "attention_mask"},
		labelFields: []string{"target"},
	},
	TaskRemoteHomology: {
		open: func(dataPath, mode string, opts ...Option) (Batcher, error) {
			return NewRemoteHomologyDataset(dataPath, mode, opts...)
		},
		inputFields: []string{"input_ids", "attention_mask"},
		labelFields: []string{"label"},
	},
	TaskContactPrediction: {
		open: func(dataPath, mode string, opts ...Option) (Batcher, error) {
			return NewContactDataset(dataPath, mode, opts...)
		},
		inputFields: []string{"input_ids", "attention_mask"},
		labelFields: []string{"contact_labels"},
	},
	TaskSecondaryStructure: {
		open: func(dataPath, mode string, opts ...Option) (Batcher, error) {
			return NewSecondaryStructureDataset(dataPath, mode, opts...)
		},
		inputFields: []string{"input_ids", "attention_mask"},
		labelFields: []string{"sequence_labels", "token_lengths"},
	},
}

// Tasks returns the supported task names, sorted.
func Tasks() []Task {
	tasks := make([]Task, 0, len(taskTable))
	for task := range taskTable {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i] < tasks[j] })
	return tasks
}

// Open constructs the dataset for a task. For the prediction tasks mode
// selects the data split; for TaskEmbed it is the data file to read.
func Open(task Task, dataPath, mode string, opts ...Option) (Batcher, error) {
	spec, ok := taskTable[task]
	if !ok {
		return nil, fmt.Errorf("unrecognized task: %q. Must be one of %v", task, Tasks())
	}
	return spec.open(dataPath, mode, opts...)
}

func validateMode(mode string, valid []string) error {
	for _, v := range valid {
		if mode == v {
			return nil
		}
	}
	return fmt.Errorf("unrecognized mode: %q. Must be one of %v", mode, valid)
}
