// Package csvio reads requisition CSV exports and writes classified results.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
)

// Column names of the requisition export
const (
	ColumnText      = "DS_RECEITA"
	ColumnRequester = "SOLICITANTE"
	ColumnPhone     = "TEL"
	ColumnResult    = "exame_resultado"
)

var (
	// ErrMissingColumn is returned when the text column is absent from the header
	ErrMissingColumn = errors.New("missing required column")
	// ErrRaggedRow is returned when a row has more cells than the header
	ErrRaggedRow = errors.New("row wider than header")
)

// Cell values treated as missing
var missingMarkers = map[string]bool{
	"":     true,
	"nan":  true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"none": true,
}

// Table is a parsed CSV: its header, raw rows and the records built from them
type Table struct {
	Header  []string
	Rows    [][]string
	Records []entity.Record
}

// Read parses a requisition CSV. The text column is required; requester and
// phone columns are optional. Short rows are padded to the header width.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnText)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	textCol := indexOf(header, ColumnText)
	if textCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnText)
	}
	requesterCol := indexOf(header, ColumnRequester)
	phoneCol := indexOf(header, ColumnPhone)

	table := &Table{Header: header}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(table.Rows)+1, err)
		}
		if len(row) > len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d", ErrRaggedRow, len(table.Rows)+1, len(row), len(header))
		}
		if len(row) < len(header) {
			row = append(row, make([]string, len(header)-len(row))...)
		}
		table.Rows = append(table.Rows, row)
		table.Records = append(table.Records, entity.Record{
			Text:      cell(row, textCol),
			Requester: cell(row, requesterCol),
			Phone:     cell(row, phoneCol),
		})
	}

	return table, nil
}

// Write emits the table with an extra result column, labels[i] for row i
func Write(w io.Writer, table *Table, labels []string) error {
	if len(labels) != len(table.Rows) {
		return fmt.Errorf("got %d labels for %d rows", len(labels), len(table.Rows))
	}

	writer := csv.NewWriter(w)
	header := append(append([]string{}, table.Header...), ColumnResult)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range table.Rows {
		out := make([]string, len(table.Header)+1)
		copy(out, row)
		out[len(table.Header)] = labels[i]
		if err := writer.Write(out); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Texts returns the requisition text of every record, in row order
func (t *Table) Texts() []string {
	texts := make([]string, len(t.Records))
	for i, rec := range t.Records {
		texts[i] = rec.Text
	}
	return texts
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	v := row[col]
	if missingMarkers[strings.ToLower(strings.TrimSpace(v))] {
		return ""
	}
	return v
}
