package datasets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tapeml/tapedata/tokenizers"
)

// TokenizerModelFile is the tokenizer model expected under the data root
// when a tokenizer is selected by name.
const TokenizerModelFile = "pfam.model"

// Option configures dataset construction.
type Option func(*options)

type options struct {
	tokenizer     tokenizers.Tokenizer
	tokenizerName string
	cache         CacheMode
	rawTokens     bool
	numClasses    int
	seed          int64
	hasSeed       bool
}

func buildOptions(opts []Option) options {
	o := options{tokenizerName: "bpe", numClasses: 3}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTokenizer supplies a pre-built tokenizer, bypassing name resolution.
func WithTokenizer(tok tokenizers.Tokenizer) Option {
	return func(o *options) { o.tokenizer = tok }
}

// WithTokenizerName selects a tokenizer by registry name. Tokenizers that
// load a learned vocabulary read it from <dataPath>/pfam.model. The default
// is "bpe".
func WithTokenizerName(name string) Option {
	return func(o *options) { o.tokenizerName = name }
}

// WithCache selects the record caching strategy. The default is CacheAuto.
func WithCache(mode CacheMode) Option {
	return func(o *options) { o.cache = mode }
}

// WithRawTokens keeps examples as token strings instead of converting them
// to vocabulary ids.
func WithRawTokens() Option {
	return func(o *options) { o.rawTokens = true }
}

// WithNumClasses selects 3- or 8-class labels for the secondary structure
// task. The default is 3.
func WithNumClasses(n int) Option {
	return func(o *options) { o.numClasses = n }
}

// WithSeed fixes the random source used by the masking procedure.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed; o.hasSeed = true }
}

// TokenizedExample is one record with its tokenized primary sequence. The
// token sequence always begins with the cls token and ends with the sep
// token; AttentionMask is all ones with the same length. IDs is nil when
// the dataset was built with WithRawTokens.
type TokenizedExample struct {
	Record        Record
	Tokens        []string
	IDs           []int64
	AttentionMask []int64
}

// TokenizingDataset wraps a record source and a tokenizer, producing
// tokenized examples with boundary tokens and attention masks.
type TokenizingDataset struct {
	source     RecordSource
	tokenizer  tokenizers.Tokenizer
	convertIDs bool
	closer     io.Closer
}

// NewTokenizingDataset opens dataFile, resolved either as an absolute path
// or relative to dataPath, and wraps it with the configured tokenizer.
func NewTokenizingDataset(dataPath, dataFile string, opts ...Option) (*TokenizingDataset, error) {
	o := buildOptions(opts)
	return newTokenizingDataset(dataPath, dataFile, o)
}

func newTokenizingDataset(dataPath, dataFile string, o options) (*TokenizingDataset, error) {
	tok := o.tokenizer
	if tok == nil {
		var err error
		tok, err = tokenizers.New(o.tokenizerName, filepath.Join(dataPath, TokenizerModelFile))
		if err != nil {
			return nil, err
		}
	}

	resolved := dataFile
	if _, err := os.Stat(resolved); err != nil {
		resolved = filepath.Join(dataPath, dataFile)
		if _, err := os.Stat(resolved); err != nil {
			return nil, fmt.Errorf("data file not found: %w", err)
		}
	}

	source, err := NewRecordSource(resolved, o.cache)
	if err != nil {
		return nil, err
	}
	d := &TokenizingDataset{
		source:     source,
		tokenizer:  tok,
		convertIDs: !o.rawTokens,
	}
	if closer, ok := source.(io.Closer); ok {
		d.closer = closer
	}
	return d, nil
}

// Len returns the number of examples.
func (d *TokenizingDataset) Len() int {
	return d.source.Len()
}

// Tokenizer returns the tokenizer in use.
func (d *TokenizingDataset) Tokenizer() tokenizers.Tokenizer {
	return d.tokenizer
}

// Get fetches the record at index and tokenizes its primary sequence.
func (d *TokenizingDataset) Get(index int) (TokenizedExample, error) {
	rec, err := d.source.Get(index)
	if err != nil {
		return TokenizedExample{}, err
	}

	raw := d.tokenizer.Tokenize(rec.Primary)
	tokens := make([]string, 0, len(raw)+2)
	tokens = append(tokens, d.tokenizer.CLSToken())
	tokens = append(tokens, raw...)
	tokens = append(tokens, d.tokenizer.SepToken())

	ex := TokenizedExample{Record: rec, Tokens: tokens}
	if d.convertIDs {
		ids, err := d.tokenizer.ConvertTokensToIDs(tokens)
		if err != nil {
			return TokenizedExample{}, err
		}
		ex.IDs = ids
	}

	ex.AttentionMask = make([]int64, len(tokens))
	for i := range ex.AttentionMask {
		ex.AttentionMask[i] = 1
	}
	return ex, nil
}

// Close releases the underlying record source when it holds resources.
func (d *TokenizingDataset) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}
