// Package seed builds starting chromosome rows for the NSGA-III engine
// from two independent sources: empirical 5′UTRs ranked by measured
// translation efficiency, and gradient-ascent optimisation through the TE
// oracle's differentiable interface (spec.md §4.9).
package seed

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/avantgene/utrforge/nucleotide"
)

// utr5Column and the tissue TE columns that follow it are the expected
// layout of the empirical-seed spreadsheet (spec.md §6 wire formats).
const utr5Column = "utr5"

type empiricalRow struct {
	utr5   string
	meanTE float64
}

// TopUTR5Seeds parses an empirical-seed CSV from r, keeps rows whose UTR5
// length lies in [minLen, maxLen] ∩ [1, nucleotide.UTR5Window], sorts by
// mean TE across all tissue columns descending, and returns the top n
// 5′UTR strings.
func TopUTR5Seeds(r io.Reader, n, minLen, maxLen int) ([]string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	utr5Idx, teIdxs := -1, []int{}
	for i, name := range header {
		if name == utr5Column {
			utr5Idx = i
			continue
		}
		teIdxs = append(teIdxs, i)
	}
	if utr5Idx == -1 {
		return nil, nil
	}

	lowerBound := minLen
	if lowerBound < 1 {
		lowerBound = 1
	}
	upperBound := maxLen
	if upperBound > nucleotide.UTR5Window {
		upperBound = nucleotide.UTR5Window
	}

	var rows []empiricalRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		utr5 := record[utr5Idx]
		if len(utr5) < lowerBound || len(utr5) > upperBound {
			continue
		}
		mean, ok := meanOf(record, teIdxs)
		if !ok {
			continue
		}
		rows = append(rows, empiricalRow{utr5: utr5, meanTE: mean})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].meanTE > rows[j].meanTE })

	if n > len(rows) {
		n = len(rows)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = rows[i].utr5
	}
	return out, nil
}

func meanOf(record []string, idxs []int) (float64, bool) {
	if len(idxs) == 0 {
		return 0, false
	}
	var sum float64
	for _, idx := range idxs {
		if idx >= len(record) {
			return 0, false
		}
		v, err := strconv.ParseFloat(record[idx], 64)
		if err != nil {
			return 0, false
		}
		sum += v
	}
	return sum / float64(len(idxs)), true
}

// LoadTopUTR5SeedsFromFile opens path and delegates to TopUTR5Seeds. A
// missing file is not an error: the orchestrator must still be able to
// proceed without empirical seeds (spec.md §4.9 "File-missing → empty
// list").
func LoadTopUTR5SeedsFromFile(path string, n, minLen, maxLen int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return TopUTR5Seeds(f, n, minLen, maxLen)
}
