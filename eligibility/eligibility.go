// Package eligibility answers whether a named person may register,
// backed by an externally maintained CSV roster of eligible people.
package eligibility

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"ballotgate/auth"
)

// Checker is the narrow contract the coordinator consumes.
type Checker interface {
	IsEligible(first, last string) bool
}

// All accepts every name. Used when no eligibility feed is configured.
type All struct{}

func (All) IsEligible(first, last string) bool { return true }

// CSVList is a Checker over a CSV file with one "first,last" row per
// eligible person. Names are matched after the same normalization used for
// identity derivation, so formatting differences in the feed don't lock
// anyone out.
type CSVList struct {
	names map[string]struct{}
}

// LoadCSV reads the eligibility file. Rows with fewer than two fields are
// rejected; extra columns are ignored so the feed can carry cohort or note
// columns without breaking us.
func LoadCSV(path string) (*CSVList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open eligibility file: %w", err)
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (*CSVList, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	list := &CSVList{names: make(map[string]struct{})}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read eligibility file: %w", err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("eligibility row has %d fields, want at least 2", len(row))
		}
		list.names[key(row[0], row[1])] = struct{}{}
	}
	return list, nil
}

func (l *CSVList) IsEligible(first, last string) bool {
	_, ok := l.names[key(first, last)]
	return ok
}

// Len reports how many people the feed lists, for startup logging.
func (l *CSVList) Len() int {
	return len(l.names)
}

func key(first, last string) string {
	return auth.NormalizeName(first) + "\x00" + auth.NormalizeName(last)
}
