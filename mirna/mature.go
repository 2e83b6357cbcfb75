package mirna

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// humanTaxonomyID is the NCBI taxonomy ID spec.md's mature-sequence table
// filters on: Homo sapiens.
const humanTaxonomyID = "9606"

// LoadMatureSequences parses a MiRBase-style tab-separated mature-sequence
// table, keeping only rows whose species column is humanTaxonomyID, and
// returns a miRBase ID -> mature RNA sequence map (spec.md §6 wire formats).
// Sequences are upper-cased and DNA Ts are folded to RNA Us so the result is
// ready to feed directly into sponge.Build.
func LoadMatureSequences(r io.Reader) (map[string]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("mirna: reading mature-sequence header: %w", err)
	}

	speciesIdx := indexOf(header, "species_id")
	idIdx := indexOf(header, "mirbase_id")
	seqIdx := indexOf(header, "mature_sequence")
	if speciesIdx == -1 || idIdx == -1 || seqIdx == -1 {
		return nil, fmt.Errorf("mirna: mature-sequence table missing required columns (species_id, mirbase_id, mature_sequence)")
	}

	out := make(map[string]string)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mirna: reading mature-sequence row: %w", err)
		}
		if speciesIdx >= len(record) || idIdx >= len(record) || seqIdx >= len(record) {
			continue
		}
		if record[speciesIdx] != humanTaxonomyID {
			continue
		}
		seq := strings.ToUpper(strings.ReplaceAll(record[seqIdx], "T", "U"))
		out[record[idIdx]] = seq
	}
	return out, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}
