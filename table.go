package genphen

import (
	"encoding/csv"
	"io"
	"strconv"
)

// MissingCell is the textual rendering of a missing value in tabular
// exports.
const MissingCell = "NA"

// Table is the row-oriented rendition of a dataset: one record per entry
// with a sequential id, the entry name, its population, and one column per
// feature. It is the exchange format for reporting and plotting
// collaborators.
type Table struct {
	Header  []string
	Records [][]string
}

// Tabularise renders the dataset as a Table. Missing cells become
// MissingCell; NaN and infinite values are rendered verbatim by strconv.
func (d *Dataset) Tabularise() (*Table, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	header := make([]string, 0, 3+d.P())
	header = append(header, "id", "entries", "populations")
	header = append(header, d.Features...)

	records := make([][]string, d.N())
	for i := 0; i < d.N(); i++ {
		rec := make([]string, 0, len(header))
		rec = append(rec, strconv.Itoa(i+1), d.Entries[i], d.Populations[i])
		for j := 0; j < d.P(); j++ {
			if d.Missing[i][j] {
				rec = append(rec, MissingCell)
				continue
			}
			rec = append(rec, strconv.FormatFloat(d.Values[i][j], 'g', -1, 64))
		}
		records[i] = rec
	}

	return &Table{Header: header, Records: records}, nil
}

// WriteCSV streams the table as comma-separated values.
func (t *Table) WriteCSV(w io.Writer) error {
	return t.write(w, ',')
}

// WriteTSV streams the table as tab-separated values.
func (t *Table) WriteTSV(w io.Writer) error {
	return t.write(w, '\t')
}

func (t *Table) write(w io.Writer, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
