// Package export writes pitch rows and reshaped stats tables as CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/riskibarqy/rio-stats/internal/domain/categorystats"
	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
	"github.com/riskibarqy/rio-stats/internal/domain/game"
)

// PitchCSV writes pitch rows to w. The header goes out with the first batch.
type PitchCSV struct {
	mu          sync.Mutex
	w           *csv.Writer
	wroteHeader bool
}

func NewPitchCSV(w io.Writer) *PitchCSV {
	return &PitchCSV{w: csv.NewWriter(w)}
}

func (c *PitchCSV) WritePitches(ctx context.Context, _ exportbatch.Batch, rows []game.PitchRow) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.wroteHeader {
		if err := c.w.Write(game.PitchColumns); err != nil {
			return fmt.Errorf("write pitch header: %w", err)
		}
		c.wroteHeader = true
	}
	for i, row := range rows {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := c.w.Write(row.Values()); err != nil {
			return fmt.Errorf("write pitch row game=%s event=%d: %w", row.GameID, row.EventNum, err)
		}
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("flush pitch rows: %w", err)
	}
	return nil
}

// WriteTable writes a reshaped table with its header. Absent cells are empty.
func WriteTable(w io.Writer, table categorystats.Table) error {
	out := csv.NewWriter(w)
	if err := out.Write(table.Header()); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	record := make([]string, 0, len(table.Header()))
	for _, row := range table.Rows {
		record = record[:0]
		record = append(record, row.Key...)
		for _, cell := range row.Cells {
			if !cell.Present {
				record = append(record, "")
				continue
			}
			record = append(record, strconv.FormatFloat(cell.Value, 'f', -1, 64))
		}
		if err := out.Write(record); err != nil {
			return fmt.Errorf("write table row %v: %w", row.Key, err)
		}
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}
