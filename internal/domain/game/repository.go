package game

import (
	"context"

	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
)

// PitchWriter stores the pitch rows of one export batch.
type PitchWriter interface {
	WritePitches(ctx context.Context, batch exportbatch.Batch, rows []PitchRow) error
}
