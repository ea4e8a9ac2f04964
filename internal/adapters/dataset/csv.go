// Package dataset loads raw player records from CSV files. Columns are
// resolved by header name, never by position, so the on-disk column order is
// not load-bearing.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Name columns tried in order when resolving a player's display name.
var nameColumns = []string{"short_name", "name", "long_name", "player_name"}

// Record is one raw player row: an identifier, a display name, and the
// numeric attributes keyed by column name. Immutable once loaded.
type Record struct {
	ID    string
	Name  string
	Attrs map[string]float64
}

// Load reads every record from a CSV file.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses records from CSV content. The first row must be a header; the
// name column is resolved from the usual candidates and numeric cells are
// parsed as float64. Cells that do not parse are simply absent from Attrs,
// leaving required-attribute enforcement to the feature extractor.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}

	nameIdx := -1
	for _, candidate := range nameColumns {
		for i, col := range header {
			if col == candidate {
				nameIdx = i
				break
			}
		}
		if nameIdx >= 0 {
			break
		}
	}
	idIdx := -1
	for i, col := range header {
		if col == "player_id" || col == "sofifa_id" || col == "id" {
			idIdx = i
			break
		}
	}

	var records []Record
	row := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row %d: %w", row+2, err)
		}
		row++

		rec := Record{Attrs: make(map[string]float64, len(header))}
		for i, cell := range fields {
			if i >= len(header) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if v, perr := strconv.ParseFloat(cell, 64); perr == nil {
				rec.Attrs[header[i]] = v
			}
		}
		if nameIdx >= 0 && nameIdx < len(fields) {
			rec.Name = strings.TrimSpace(fields[nameIdx])
		}
		if idIdx >= 0 && idIdx < len(fields) {
			rec.ID = strings.TrimSpace(fields[idIdx])
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("row-%d", row)
		}
		if rec.Name == "" {
			rec.Name = rec.ID
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset holds no records")
	}
	return records, nil
}
