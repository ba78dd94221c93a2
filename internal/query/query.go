package query

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one city/state look-up
type Record struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// String returns "City, ST"
func (r Record) String() string {
	return fmt.Sprintf("%s, %s", r.City, r.State)
}

// LoadFile reads records from a CSV file of city,state rows
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening query file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses city,state rows. There is no header row; extra columns are
// ignored, short rows are an error.
func Read(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records := make([]Record, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}

		if len(row) < 2 {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: want city and state, got %d column(s)", line, len(row))
		}

		records = append(records, Record{
			City:  strings.TrimSpace(row[0]),
			State: strings.TrimSpace(row[1]),
		})
	}

	return records, nil
}
