package tokenizers

import (
	"fmt"
	"sort"
)

// builders is the closed table of tokenizer constructors, keyed by name.
// Tokenizers register here at compile time; there is no runtime
// registration.
var builders = map[string]func(modelFile string) (Tokenizer, error){
	"iupac": func(string) (Tokenizer, error) { return NewAminoAcid(), nil },
	"bpe": func(modelFile string) (Tokenizer, error) {
		return NewSubword(modelFile)
	},
}

// Names returns the known tokenizer names, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New constructs a tokenizer by name. The model file is only consulted by
// tokenizers that load a learned vocabulary.
func New(name, modelFile string) (Tokenizer, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unrecognized tokenizer: %q. Must be one of %v", name, Names())
	}
	return build(modelFile)
}
