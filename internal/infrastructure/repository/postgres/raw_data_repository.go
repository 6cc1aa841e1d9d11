package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rio-stats/internal/domain/rawdata"
	qb "github.com/riskibarqy/rio-stats/internal/platform/querybuilder"
)

type RawDataRepository struct {
	db *sqlx.DB
}

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

var _ rawdata.Repository = (*RawDataRepository)(nil)

// UpsertMany archives stat files and API bodies in multi-row statements. A
// payload whose hash did not change keeps its original ingested_at.
func (r *RawDataRepository) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	models := rawPayloadModels(items)
	if len(models) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx archive raw payloads: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, chunk := range chunks(models, maxRowsPerInsert) {
		query, args, err := qb.InsertModels("raw_payloads", chunk, rawPayloadConflictClause)
		if err != nil {
			return fmt.Errorf("build archive raw payloads query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("archive %d raw payloads from %s: %w", len(chunk), chunk[0].Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive raw payloads tx: %w", err)
	}
	return nil
}

const rawPayloadConflictClause = `ON CONFLICT (source, entity_type, entity_key)
DO UPDATE SET
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    source_updated_at = EXCLUDED.source_updated_at,
    ingested_at = NOW()
WHERE raw_payloads.payload_hash <> EXCLUDED.payload_hash`

type rawPayloadInsertModel struct {
	Source          string     `db:"source"`
	EntityType      string     `db:"entity_type"`
	EntityKey       string     `db:"entity_key"`
	Payload         string     `db:"payload"`
	PayloadHash     string     `db:"payload_hash"`
	SourceUpdatedAt *time.Time `db:"source_updated_at"`
}

type rawPayloadKey struct {
	source, entityType, entityKey string
}

// rawPayloadModels keeps the last payload per conflict key: one INSERT ... ON
// CONFLICT statement cannot update the same row twice.
func rawPayloadModels(items []rawdata.Payload) []rawPayloadInsertModel {
	index := make(map[rawPayloadKey]int, len(items))
	out := make([]rawPayloadInsertModel, 0, len(items))
	for _, item := range items {
		model := rawPayloadInsertModel{
			Source:          item.Source,
			EntityType:      item.EntityType,
			EntityKey:       item.EntityKey,
			Payload:         item.PayloadJSON,
			PayloadHash:     item.PayloadHash,
			SourceUpdatedAt: item.SourceUpdatedAt,
		}
		key := rawPayloadKey{item.Source, item.EntityType, item.EntityKey}
		if i, ok := index[key]; ok {
			out[i] = model
			continue
		}
		index[key] = len(out)
		out = append(out, model)
	}
	return out
}
