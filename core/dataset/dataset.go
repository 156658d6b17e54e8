package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Row is a single CSV record keyed by header name. Values keep their original
// text, including empty strings.
type Row map[string]string

// Dataset is an in-memory CSV table. Headers preserves the file's column
// order so writes reproduce the input layout.
type Dataset struct {
	Name    string
	Headers []string
	Rows    []Row
}

// Read parses CSV content from r. The first record is the header row; data
// rows may carry fewer or more fields than the header, short rows pad missing
// columns with the empty string and surplus fields are dropped.
func Read(name string, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset %s: no header row", name)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset %s: read header: %w", name, err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	ds := &Dataset{Name: name, Headers: headers}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset %s: read row %d: %w", name, len(ds.Rows)+2, err)
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// ReadFile reads a CSV file from disk. The dataset name is the file's base
// name without extension.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(BaseName(path), f)
}

// Write serializes the dataset to w, headers first. Missing cells are written
// as empty strings.
func (d *Dataset) Write(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(d.Headers); err != nil {
		return fmt.Errorf("dataset %s: write header: %w", d.Name, err)
	}
	record := make([]string, len(d.Headers))
	for _, row := range d.Rows {
		for i, h := range d.Headers {
			record[i] = row[h]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("dataset %s: write row: %w", d.Name, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes the dataset to a CSV file, replacing any existing file.
func (d *Dataset) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// BaseName strips the directory and extension from a file path, leaving the
// dataset name used for derived output files.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
