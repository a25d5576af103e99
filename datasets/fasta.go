package datasets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// FastaDataset is a random-access view over a FASTA file, keyed by record
// position. Records are indexed by byte offset at construction; reads are
// lazy unless the cache mode (or the CacheAuto threshold) selects eager
// loading.
type FastaDataset struct {
	path     string
	offsets  []int64
	inMemory bool
	cache    []Record
}

// NewFastaDataset opens and indexes a FASTA file.
func NewFastaDataset(path string, cache CacheMode) (*FastaDataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("fasta file not found: %w", err)
	}

	offsets, err := indexFasta(path)
	if err != nil {
		return nil, err
	}

	d := &FastaDataset{path: path, offsets: offsets}
	inMemory := cache == CacheAll
	if cache == CacheAuto && len(offsets) < InMemoryThreshold {
		log.Info("reading full fasta file into memory because number of examples is very low",
			"path", path, "records", len(offsets))
		inMemory = true
	}
	if inMemory {
		if err := d.loadAll(); err != nil {
			return nil, err
		}
		d.inMemory = true
	}
	return d, nil
}

// indexFasta scans the file once and records the byte offset of every
// record header line.
func indexFasta(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fasta file %s: %w", path, err)
	}
	defer f.Close()

	var offsets []int64
	var pos int64
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if strings.HasPrefix(line, ">") {
			offsets = append(offsets, pos)
		}
		pos += int64(len(line))
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to index fasta file %s: %w", path, err)
		}
	}
	return offsets, nil
}

// loadAll reads every record into the cache eagerly.
func (d *FastaDataset) loadAll() error {
	f, err := os.Open(d.path)
	if err != nil {
		return fmt.Errorf("failed to open fasta file %s: %w", d.path, err)
	}
	defer f.Close()

	d.cache = make([]Record, 0, len(d.offsets))
	reader := bufio.NewReader(f)
	for {
		rec, err := readFastaRecord(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		d.cache = append(d.cache, rec)
	}
	if len(d.cache) != len(d.offsets) {
		return fmt.Errorf("fasta file %s: indexed %d records but read %d", d.path, len(d.offsets), len(d.cache))
	}
	return nil
}

// readFastaRecord reads one record starting at a header line. Returns
// io.EOF when the reader is exhausted before a header is seen.
func readFastaRecord(reader *bufio.Reader) (Record, error) {
	var header string
	for {
		line, err := reader.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, ">") {
			header = strings.TrimPrefix(trimmed, ">")
			break
		}
		if err == io.EOF {
			return Record{}, io.EOF
		}
		if err != nil {
			return Record{}, err
		}
	}

	var seq strings.Builder
	for {
		peek, err := reader.Peek(1)
		if err == nil && peek[0] == '>' {
			break
		}
		line, err := reader.ReadString('\n')
		seq.WriteString(strings.TrimSpace(line))
		if err != nil {
			break
		}
	}

	id := header
	if fields := strings.Fields(header); len(fields) > 0 {
		id = fields[0]
	}
	primary := seq.String()
	return Record{ID: id, Primary: primary, ProteinLength: len(primary)}, nil
}

// Len returns the number of records in the file.
func (d *FastaDataset) Len() int {
	return len(d.offsets)
}

// Get returns the record at index, from the cache when in-memory mode is
// active.
func (d *FastaDataset) Get(index int) (Record, error) {
	if err := checkIndex(index, len(d.offsets)); err != nil {
		return Record{}, err
	}
	if d.inMemory {
		return d.cache[index], nil
	}
	return d.readAt(index)
}

// readAt seeks to the indexed offset and parses a single record.
func (d *FastaDataset) readAt(index int) (Record, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to open fasta file %s: %w", d.path, err)
	}
	defer f.Close()

	if _, err := f.Seek(d.offsets[index], io.SeekStart); err != nil {
		return Record{}, fmt.Errorf("failed to seek to record %d: %w", index, err)
	}
	rec, err := readFastaRecord(bufio.NewReader(f))
	if err != nil {
		return Record{}, fmt.Errorf("failed to read record %d from %s: %w", index, d.path, err)
	}
	return rec, nil
}
