package convert

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
)

// csvValueColumn holds scalar rows when an array mixes objects and scalars.
const csvValueColumn = "value"

// CSVConverter treats the first record as the header and every following
// record as an object of strings.
type CSVConverter struct{}

// NewCSVConverter creates a CSV converter.
func NewCSVConverter() *CSVConverter {
	return &CSVConverter{}
}

// Format implements Converter.
func (c *CSVConverter) Format() domain.Format {
	return domain.FormatCSV
}

// ToCanonical implements Converter. Short rows are padded with empty strings
// and surplus cells are keyed column_N. A repeated header name gets a _2, _3
// suffix so no cell is lost. Blank input yields an empty array.
func (c *CSVConverter) ToCanonical(text string) (canonical.Value, error) {
	if strings.TrimSpace(text) == "" {
		return []canonical.Value{}, nil
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		convErr := &coreerrors.ConversionError{Format: string(domain.FormatCSV), Op: opParse, Err: err}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			convErr.Err = parseErr.Err
			convErr.Line = parseErr.Line
			convErr.Column = parseErr.Column
			convErr.Snippet = snippet(text, parseErr.Line, parseErr.Column)
		}
		return nil, convErr
	}

	header := csvHeader(records[0])

	rows := make([]canonical.Value, 0, len(records)-1)
	for _, record := range records[1:] {
		row := canonical.NewObject()
		for i, name := range header {
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			row.Set(name, cell)
		}
		for i := len(header); i < len(record); i++ {
			row.Set(csvColumnName(i), record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func csvHeader(names []string) []string {
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		taken[name] = true
	}

	header := make([]string, len(names))
	used := make(map[string]bool, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			name = csvColumnName(i)
		}
		if used[name] {
			base := name
			for n := 2; used[name] || taken[name]; n++ {
				name = base + "_" + strconv.Itoa(n)
			}
		}
		used[name] = true
		header[i] = name
	}
	return header
}

func csvColumnName(i int) string {
	return "column_" + strconv.Itoa(i+1)
}

// FromCanonical implements Converter. Columns are the union of row keys in
// first-seen order; nested values are written as compact JSON.
func (c *CSVConverter) FromCanonical(v canonical.Value) (string, error) {
	var items []canonical.Value
	switch t := v.(type) {
	case []canonical.Value:
		items = t
	case *canonical.Object:
		items = []canonical.Value{t}
	default:
		return "", c.renderError(fmt.Errorf("top-level %s cannot be written as rows", canonical.TypeName(v)))
	}
	if len(items) == 0 {
		return "", nil
	}

	rows := make([]*canonical.Object, 0, len(items))
	var columns []string
	seen := make(map[string]bool)
	for _, item := range items {
		row, ok := item.(*canonical.Object)
		if !ok {
			row = canonical.NewObject()
			row.Set(csvValueColumn, item)
		}
		for _, k := range row.Keys() {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return "", c.renderError(err)
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			cell, _ := row.Get(col)
			text, err := csvCell(cell)
			if err != nil {
				return "", c.renderError(err)
			}
			record[i] = text
		}
		if err := w.Write(record); err != nil {
			return "", c.renderError(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", c.renderError(err)
	}
	return buf.String(), nil
}

func csvCell(v canonical.Value) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case json.Number:
		return string(t), nil
	default:
		out, err := canonical.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

func (c *CSVConverter) renderError(err error) error {
	return &coreerrors.ConversionError{Format: string(domain.FormatCSV), Op: opRender, Err: err}
}
