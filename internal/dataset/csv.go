// Package dataset supplies postal rows to the core from the outside
// world: the KEN_ALL CSV file distributed by Japan Post, or a Postgres
// table produced by the importer. The core itself never does I/O.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/masanorih/address2zip/internal/models"
)

// KEN_ALL column layout (no header row).
const (
	colPostalCode = 2
	colPrefecture = 6
	colCity       = 7
	colDistrict   = 8
)

// ReadRows parses KEN_ALL-format CSV records from r, which must already
// be UTF-8. Rows with fewer than 9 columns or an empty district are
// skipped.
func ReadRows(r io.Reader) ([]models.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // column count varies across dataset revisions

	var rows []models.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: failed to read record: %w", err)
		}
		if len(record) <= colDistrict {
			continue
		}
		if record[colDistrict] == "" {
			continue
		}
		rows = append(rows, models.Row{
			PostalCode: record[colPostalCode],
			Prefecture: record[colPrefecture],
			City:       record[colCity],
			District:   record[colDistrict],
		})
	}
	return rows, nil
}

// LoadFile reads a KEN_ALL CSV file from disk. Japan Post distributes
// the file in Shift_JIS; pass encoding "utf8" for a re-encoded copy.
func LoadFile(path, encoding string) ([]models.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if encoding != "utf8" {
		r = transform.NewReader(f, japanese.ShiftJIS.NewDecoder())
	}
	return ReadRows(r)
}
