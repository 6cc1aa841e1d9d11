package categorystats

import (
	"context"

	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
)

// Repository persists reshaped tables, one stored value per present cell.
type Repository interface {
	SaveTable(ctx context.Context, batch exportbatch.Batch, table Table) error
}
