package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// utf8BOM lets spreadsheet tools detect the encoding of translated text.
const utf8BOM = "\ufeff"

// CSVExporter writes datasets as RFC 4180 CSV. Cells that a spreadsheet would
// evaluate as a formula are prefixed with a quote.
type CSVExporter struct {
	delimiter rune
}

// CSVOption customises a CSVExporter.
type CSVOption func(*CSVExporter)

// WithDelimiter switches the field separator, e.g. ';' for locales that use a
// decimal comma.
func WithDelimiter(delimiter rune) CSVOption {
	return func(e *CSVExporter) {
		e.delimiter = delimiter
	}
}

// NewCSVExporter builds a comma-separated exporter.
func NewCSVExporter(opts ...CSVOption) *CSVExporter {
	e := &CSVExporter{delimiter: ','}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ContentType reports the MIME type of rendered output.
func (e *CSVExporter) ContentType() string {
	return "text/csv; charset=utf-8"
}

// Render encodes the header row followed by every dataset row.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate("csv"); err != nil {
		return nil, err
	}
	buf := bytes.NewBufferString(utf8BOM)
	writer := csv.NewWriter(buf)
	writer.Comma = e.delimiter

	header := make([]string, len(data.Columns))
	for i, column := range data.Columns {
		header[i] = column.Title()
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range data.Rows {
		record := data.record(row)
		for i := range record {
			record[i] = neutralizeFormula(record[i])
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func neutralizeFormula(value string) string {
	if value == "" {
		return value
	}
	if strings.ContainsRune("=+-@\t\r", rune(value[0])) {
		return "'" + value
	}
	return value
}
