package tokenizers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModel(t *testing.T, pieces ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pfam.model")
	content := "# test pieces\n"
	for _, p := range pieces {
		content += p + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSubwordGreedyMatch(t *testing.T) {
	tok, err := NewSubword(writeModel(t, WordMarker+"MV", "KL", "K", "L", "A"))
	require.NoError(t, err)

	// Longest match wins: "KL" beats "K" then "L".
	assert.Equal(t, []string{WordMarker + "MV", "KL", "A"}, tok.Tokenize("MVKLA"))
	assert.True(t, tok.Subword())
}

func TestSubwordMarkerFallback(t *testing.T) {
	// No piece carries the marker; the bare marker segments on its own.
	tok, err := NewSubword(writeModel(t, "M", "V"))
	require.NoError(t, err)

	assert.Equal(t, []string{WordMarker, "M", "V"}, tok.Tokenize("MV"))
}

func TestSubwordUnknownPieceMapsToUnk(t *testing.T) {
	tok, err := NewSubword(writeModel(t, "M", "V"))
	require.NoError(t, err)

	unkID, err := tok.ConvertTokenToID(TokenUnk)
	require.NoError(t, err)

	ids, err := tok.ConvertTokensToIDs([]string{"M", "Z"})
	require.NoError(t, err)
	assert.Equal(t, unkID, ids[1])
}

func TestSubwordEmptyModel(t *testing.T) {
	_, err := NewSubword(writeModel(t))
	assert.Error(t, err)
}

func TestSubwordMissingModel(t *testing.T) {
	_, err := NewSubword(filepath.Join(t.TempDir(), "missing.model"))
	assert.Error(t, err)
}

func TestRegistryNew(t *testing.T) {
	tok, err := New("iupac", "")
	require.NoError(t, err)
	assert.Equal(t, 30, tok.VocabSize())

	model := writeModel(t, "M", "V")
	tok, err = New("bpe", model)
	require.NoError(t, err)
	assert.True(t, tok.(Subworder).Subword())

	_, err = New("wordpiece", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bpe")
	assert.Contains(t, err.Error(), "iupac")
}
