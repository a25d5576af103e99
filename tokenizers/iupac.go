package tokenizers

import "strings"

// iupacLetters is the IUPAC extended amino-acid alphabet, including the
// ambiguity codes (B, Z, X) and the rare residues (O, U).
const iupacLetters = "ABCDEFGHIKLMNOPQRSTUVWXYZ"

// AminoAcid tokenizes a protein sequence one residue per token against the
// fixed IUPAC vocabulary. Residues outside the alphabet map to <unk>.
type AminoAcid struct {
	vocab vocab
}

// NewAminoAcid returns a character-level tokenizer over the IUPAC alphabet.
func NewAminoAcid() *AminoAcid {
	pieces := make([]string, 0, len(iupacLetters))
	for _, r := range iupacLetters {
		pieces = append(pieces, string(r))
	}
	return &AminoAcid{vocab: newVocab(pieces)}
}

// Tokenize splits the sequence into single-residue tokens, uppercased.
func (a *AminoAcid) Tokenize(text string) []string {
	text = strings.ToUpper(text)
	tokens := make([]string, 0, len(text))
	for _, r := range text {
		tokens = append(tokens, string(r))
	}
	return tokens
}

// ConvertTokensToIDs maps tokens to vocabulary ids, substituting <unk> for
// unknown residues.
func (a *AminoAcid) ConvertTokensToIDs(tokens []string) ([]int64, error) {
	ids := make([]int64, len(tokens))
	for i, tok := range tokens {
		ids[i] = a.vocab.idOrUnk(tok)
	}
	return ids, nil
}

func (a *AminoAcid) ConvertTokenToID(token string) (int64, error) {
	return a.vocab.id(token)
}

func (a *AminoAcid) ConvertIDToToken(id int64) (string, error) {
	return a.vocab.token(id)
}

func (a *AminoAcid) PadToken() string  { return TokenPad }
func (a *AminoAcid) MaskToken() string { return TokenMask }
func (a *AminoAcid) CLSToken() string  { return TokenCLS }
func (a *AminoAcid) SepToken() string  { return TokenSep }
func (a *AminoAcid) VocabSize() int    { return a.vocab.size() }

// Subword reports that amino-acid tokens never span residues.
func (a *AminoAcid) Subword() bool { return false }
