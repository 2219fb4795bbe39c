package multipass

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/projecteru2/core/log"
)

// Table is the display-oriented view of `list --format csv`. Every row has
// exactly len(Header) cells; rows that did not are listed in Ragged.
type Table struct {
	Header []string
	Rows   [][]string
	Ragged []int // indexes into Rows
}

// ListTable runs `list --format csv` and parses it with ParseTable.
func (c *Client) ListTable(ctx context.Context) (Table, error) {
	out, err := c.run(ctx, "list", "--format", "csv")
	if err != nil {
		return Table{}, fmt.Errorf("list instances: %w", err)
	}
	t, err := ParseTable(out)
	if err != nil {
		return Table{}, err
	}
	if len(t.Ragged) > 0 {
		log.WithFunc("multipass.ListTable").Warnf(ctx, "%d ragged csv rows normalised: %v", len(t.Ragged), t.Ragged)
	}
	return t, nil
}

// ParseTable splits csv output into a header and rows. Blank lines are
// skipped. Short rows are padded with empty cells and long rows have their
// surplus cells joined into the last column; both are recorded in Ragged.
func ParseTable(out string) (Table, error) {
	r := csv.NewReader(strings.NewReader(out))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse csv: %w", err)
	}
	var t Table
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		if t.Header == nil {
			t.Header = rec
			continue
		}
		row, ragged := normalizeRow(rec, len(t.Header))
		if ragged {
			t.Ragged = append(t.Ragged, len(t.Rows))
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func normalizeRow(rec []string, width int) ([]string, bool) {
	switch {
	case len(rec) == width:
		return rec, false
	case len(rec) < width:
		row := make([]string, width)
		copy(row, rec)
		return row, true
	default:
		row := make([]string, width)
		copy(row, rec[:width-1])
		row[width-1] = strings.Join(rec[width-1:], ",")
		return row, true
	}
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
