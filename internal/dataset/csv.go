package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV parses delimited text with a header row into a dataset.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	d := New(header...)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if err := d.AppendRow(record); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	return d, nil
}

// WriteCSV renders the dataset as UTF-8 delimited text with a header row.
func WriteCSV(w io.Writer, d *Dataset) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(d.columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range d.rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
