package tokenizers

import "fmt"

// Tokenizer converts a raw residue sequence into discrete tokens and maps
// tokens to and from integer vocabulary ids. All implementations reserve
// pad, mask, cls and sep tokens.
type Tokenizer interface {
	Tokenize(text string) []string
	ConvertTokensToIDs(tokens []string) ([]int64, error)
	ConvertTokenToID(token string) (int64, error)
	ConvertIDToToken(id int64) (string, error)
	PadToken() string
	MaskToken() string
	CLSToken() string
	SepToken() string
	VocabSize() int
}

// Subworder is implemented by tokenizers whose tokens may span multiple
// residues. Downstream per-residue label alignment needs to know this.
type Subworder interface {
	Subword() bool
}

// Reserved special tokens shared by all tokenizers in this package. Their
// ids are assigned before any vocabulary pieces, so <pad> is always id 0.
const (
	TokenPad  = "<pad>"
	TokenMask = "<mask>"
	TokenCLS  = "<cls>"
	TokenSep  = "<sep>"
	TokenUnk  = "<unk>"
)

var reservedTokens = []string{TokenPad, TokenMask, TokenCLS, TokenSep, TokenUnk}

// vocab is the shared token table implementation: an ordered list of tokens
// plus the reverse index.
type vocab struct {
	tokens []string
	ids    map[string]int64
}

func newVocab(pieces []string) vocab {
	v := vocab{ids: make(map[string]int64, len(reservedTokens)+len(pieces))}
	for _, tok := range reservedTokens {
		v.ids[tok] = int64(len(v.tokens))
		v.tokens = append(v.tokens, tok)
	}
	for _, p := range pieces {
		if _, ok := v.ids[p]; ok {
			continue
		}
		v.ids[p] = int64(len(v.tokens))
		v.tokens = append(v.tokens, p)
	}
	return v
}

func (v vocab) size() int { return len(v.tokens) }

func (v vocab) id(token string) (int64, error) {
	if id, ok := v.ids[token]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("token %q not in vocabulary", token)
}

func (v vocab) token(id int64) (string, error) {
	if id < 0 || id >= int64(len(v.tokens)) {
		return "", fmt.Errorf("token id %d out of range [0, %d)", id, len(v.tokens))
	}
	return v.tokens[id], nil
}

// idOrUnk resolves a token id, falling back to <unk> for tokens outside the
// vocabulary.
func (v vocab) idOrUnk(token string) int64 {
	if id, ok := v.ids[token]; ok {
		return id
	}
	return v.ids[TokenUnk]
}
