package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
	"github.com/riskibarqy/rio-stats/internal/domain/game"
	qb "github.com/riskibarqy/rio-stats/internal/platform/querybuilder"
)

type PitchRowRepository struct {
	db *sqlx.DB
}

func NewPitchRowRepository(db *sqlx.DB) *PitchRowRepository {
	return &PitchRowRepository{db: db}
}

var _ game.PitchWriter = (*PitchRowRepository)(nil)

// WritePitches stores rows keyed by (game_id, event_num). Re-exporting a game
// moves its rows to the newer batch.
func (r *PitchRowRepository) WritePitches(ctx context.Context, batch exportbatch.Batch, rows []game.PitchRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx write pitch rows: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, chunk := range chunks(pitchRowModels(batch, rows), maxRowsPerInsert) {
		query, args, err := qb.InsertModels("pitch_rows", chunk, pitchRowConflictClause)
		if err != nil {
			return fmt.Errorf("build insert pitch rows query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert pitch rows batch=%s: %w", batch.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write pitch rows tx: %w", err)
	}
	return nil
}

var pitchRowConflictClause = qb.MustOnConflictUpdate(
	pitchRowInsertModel{},
	[]string{"game_id", "event_num"},
	"exported_at = NOW()",
)

type pitchRowInsertModel struct {
	BatchID string `db:"batch_id"`
	game.PitchRow
}

type pitchRowKey struct {
	gameID   string
	eventNum int
}

// pitchRowModels keeps the last row per (game_id, event_num) in the position
// of its first occurrence. The same game decoded from two files would
// otherwise put one key twice into a single upsert, which Postgres rejects.
func pitchRowModels(batch exportbatch.Batch, rows []game.PitchRow) []pitchRowInsertModel {
	index := make(map[pitchRowKey]int, len(rows))
	out := make([]pitchRowInsertModel, 0, len(rows))
	for _, row := range rows {
		model := pitchRowInsertModel{BatchID: batch.ID, PitchRow: row}
		key := pitchRowKey{row.GameID, row.EventNum}
		if i, ok := index[key]; ok {
			out[i] = model
			continue
		}
		index[key] = len(out)
		out = append(out, model)
	}
	return out
}
