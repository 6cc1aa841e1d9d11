package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
	qb "github.com/riskibarqy/rio-stats/internal/platform/querybuilder"
)

type ExportBatchRepository struct {
	db *sqlx.DB
}

func NewExportBatchRepository(db *sqlx.DB) *ExportBatchRepository {
	return &ExportBatchRepository{db: db}
}

var _ exportbatch.Repository = (*ExportBatchRepository)(nil)

func (r *ExportBatchRepository) Create(ctx context.Context, batch exportbatch.Batch) error {
	query, args, err := qb.InsertModel("export_batches", batch, "")
	if err != nil {
		return fmt.Errorf("build insert export batch query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert export batch id=%s: %w", batch.ID, err)
	}
	return nil
}

func (r *ExportBatchRepository) ListRecent(ctx context.Context, limit int) ([]exportbatch.Batch, error) {
	query, args, err := qb.Select("id", "kind", "source", "row_count", "created_at").
		From("export_batches").
		OrderBy("created_at DESC", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list export batches query: %w", err)
	}

	var out []exportbatch.Batch
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list export batches: %w", err)
	}
	return out, nil
}
