package datasets

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFasta writes a FASTA file with the given header/sequence pairs.
func writeFasta(t *testing.T, path string, records ...[2]string) {
	t.Helper()
	var content string
	for _, rec := range records {
		content += ">" + rec[0] + "\n" + rec[1] + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// writeTaskStore builds <root>/<task>/<task>_<mode>.lmdb from records and
// returns its path.
func writeTaskStore(t *testing.T, root, task, mode string, records []Record) string {
	t.Helper()
	dir := filepath.Join(root, task)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.lmdb", task, mode))
	require.NoError(t, WriteStore(path, records))
	return path
}

// seqRecord returns a minimal record for the given id and sequence.
func seqRecord(id, primary string) Record {
	return Record{ID: id, Primary: primary, ProteinLength: len(primary)}
}
