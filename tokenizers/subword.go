package tokenizers

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WordMarker prefixes the first piece of every tokenized sequence, matching
// the convention of the model files this tokenizer loads.
const WordMarker = "▁"

// Subword tokenizes sequences against a learned piece vocabulary using
// greedy longest-match. Pieces are loaded from a plain-text model file, one
// piece per line; blank lines and lines starting with '#' are skipped.
type Subword struct {
	vocab vocab
	trie  *trie
}

// NewSubword loads a piece vocabulary from modelFile.
func NewSubword(modelFile string) (*Subword, error) {
	f, err := os.Open(modelFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open tokenizer model %s: %w", modelFile, err)
	}
	defer f.Close()

	var pieces []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pieces = append(pieces, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tokenizer model %s: %w", modelFile, err)
	}
	if len(pieces) == 0 {
		return nil, fmt.Errorf("tokenizer model %s contains no pieces", modelFile)
	}

	s := &Subword{vocab: newVocab(pieces), trie: newTrie()}
	for _, p := range pieces {
		if err := s.trie.insert(p); err != nil {
			return nil, err
		}
	}
	// The bare marker must always segment cleanly even when the model has
	// no piece starting with it.
	if err := s.trie.insert(WordMarker); err != nil {
		return nil, err
	}
	return s, nil
}

// Tokenize segments the sequence into vocabulary pieces. The word marker is
// prepended before matching, so the first piece carries it.
func (s *Subword) Tokenize(text string) []string {
	return s.trie.split(WordMarker + strings.ToUpper(text))
}

// ConvertTokensToIDs maps pieces to ids, substituting <unk> for pieces
// outside the vocabulary.
func (s *Subword) ConvertTokensToIDs(tokens []string) ([]int64, error) {
	ids := make([]int64, len(tokens))
	for i, tok := range tokens {
		ids[i] = s.vocab.idOrUnk(tok)
	}
	return ids, nil
}

func (s *Subword) ConvertTokenToID(token string) (int64, error) {
	return s.vocab.id(token)
}

func (s *Subword) ConvertIDToToken(id int64) (string, error) {
	return s.vocab.token(id)
}

func (s *Subword) PadToken() string  { return TokenPad }
func (s *Subword) MaskToken() string { return TokenMask }
func (s *Subword) CLSToken() string  { return TokenCLS }
func (s *Subword) SepToken() string  { return TokenSep }
func (s *Subword) VocabSize() int    { return s.vocab.size() }

// Subword reports that pieces may span multiple residues.
func (s *Subword) Subword() bool { return true }
