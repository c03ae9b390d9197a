package export

import "fmt"

// Column is one exported field: Key indexes the row map, Label is printed in the header.
type Column struct {
	Key   string
	Label string
}

// Title returns the header text, falling back to the key.
func (c Column) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Key
}

// Dataset is tabular export content. Rows missing a column render as empty cells.
type Dataset struct {
	Columns []Column
	Rows    []map[string]string
}

func (d Dataset) validate(format string) error {
	if len(d.Columns) == 0 {
		return fmt.Errorf("%s export requires at least one column", format)
	}
	return nil
}

func (d Dataset) record(row map[string]string) []string {
	record := make([]string, len(d.Columns))
	for i, column := range d.Columns {
		record[i] = row[column.Key]
	}
	return record
}
