package datasets

// padInt64 stacks variable-length sequences into a [len(seqs), maxLen]
// buffer, filling unused positions with fill. Each sequence is copied into
// the leading sub-region of its row.
func padInt64(seqs [][]int64, fill int64) [][]int64 {
	maxLen := 0
	for _, s := range seqs {
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}

	out := make([][]int64, len(seqs))
	for i, s := range seqs {
		row := make([]int64, maxLen)
		for j := range row {
			row[j] = fill
		}
		copy(row, s)
		out[i] = row
	}
	return out
}

// padInt64Grid stacks variable-shape matrices into a
// [len(grids), maxRows, maxCols] buffer filled with fill. The maximum is
// taken element-wise over both axes.
func padInt64Grid(grids [][][]int64, fill int64) [][][]int64 {
	maxRows, maxCols := 0, 0
	for _, g := range grids {
		if len(g) > maxRows {
			maxRows = len(g)
		}
		for _, row := range g {
			if len(row) > maxCols {
				maxCols = len(row)
			}
		}
	}

	out := make([][][]int64, len(grids))
	for i, g := range grids {
		m := make([][]int64, maxRows)
		for r := range m {
			row := make([]int64, maxCols)
			for c := range row {
				row[c] = fill
			}
			if r < len(g) {
				copy(row, g[r])
			}
			m[r] = row
		}
		out[i] = m
	}
	return out
}
