package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rio-stats/internal/domain/categorystats"
	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
	qb "github.com/riskibarqy/rio-stats/internal/platform/querybuilder"
)

type StatCellRepository struct {
	db *sqlx.DB
}

func NewStatCellRepository(db *sqlx.DB) *StatCellRepository {
	return &StatCellRepository{db: db}
}

var _ categorystats.Repository = (*StatCellRepository)(nil)

// SaveTable stores one row per present cell. Absent cells are not written.
func (r *StatCellRepository) SaveTable(ctx context.Context, batch exportbatch.Batch, table categorystats.Table) error {
	models := statCellModels(batch, table)
	if len(models) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save stat table: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, chunk := range chunks(models, maxRowsPerInsert) {
		query, args, err := qb.InsertModels("stat_cells", chunk, "")
		if err != nil {
			return fmt.Errorf("build insert stat cells query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert stat cells batch=%s: %w", batch.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save stat table tx: %w", err)
	}
	return nil
}

type statCellInsertModel struct {
	BatchID   string  `db:"batch_id"`
	Grouping  string  `db:"grouping_kind"`
	UserKey   *string `db:"user_key"`
	CharKey   *string `db:"character_key"`
	Category  string  `db:"category"`
	Swing     string  `db:"swing"`
	Stat      string  `db:"stat"`
	Value     float64 `db:"value"`
	Ambiguous bool    `db:"ambiguous"`
}

func statCellModels(batch exportbatch.Batch, table categorystats.Table) []statCellInsertModel {
	names := table.Grouping.KeyNames()
	var out []statCellInsertModel
	for _, row := range table.Rows {
		var userKey, charKey *string
		for i, name := range names {
			if i >= len(row.Key) {
				break
			}
			key := row.Key[i]
			switch name {
			case "user":
				userKey = &key
			case "character":
				charKey = &key
			}
		}
		for i, cell := range row.Cells {
			if !cell.Present || i >= len(table.Columns) {
				continue
			}
			col := table.Columns[i]
			out = append(out, statCellInsertModel{
				BatchID:   batch.ID,
				Grouping:  table.Grouping.String(),
				UserKey:   userKey,
				CharKey:   charKey,
				Category:  col.Category,
				Swing:     col.Swing,
				Stat:      col.Stat,
				Value:     cell.Value,
				Ambiguous: table.Ambiguous,
			})
		}
	}
	return out
}
