package tokenizers

import "fmt"

// trie is a byte trie used for greedy longest-match tokenization of
// vocabulary pieces.
type trie struct {
	children map[byte]*trie
	piece    string
	end      bool
}

func newTrie() *trie {
	return &trie{children: map[byte]*trie{}}
}

// insert adds a piece to the trie.
func (t *trie) insert(piece string) error {
	if len(piece) == 0 {
		return fmt.Errorf("zero length piece not supported")
	}
	cur := t
	for i := 0; i < len(piece); i++ {
		b := piece[i]
		if cur.children[b] == nil {
			cur.children[b] = &trie{children: map[byte]*trie{}}
		}
		cur = cur.children[b]
	}
	cur.end = true
	cur.piece = piece
	return nil
}

// split segments input into the longest matching pieces. Bytes with no
// matching piece are emitted as single-byte segments.
func (t *trie) split(input string) []string {
	var pieces []string
	for len(input) != 0 {
		cur := t
		matched := ""
		endIdx := 1
		for next := 0; next < len(input); next++ {
			child := cur.children[input[next]]
			if child == nil {
				break
			}
			cur = child
			if cur.end {
				matched = cur.piece
				endIdx = next + 1
			}
		}
		if matched == "" {
			endIdx = 1
		}
		pieces = append(pieces, input[:endIdx])
		input = input[endIdx:]
	}
	return pieces
}
