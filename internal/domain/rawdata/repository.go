package rawdata

import "context"

// Repository archives raw payloads. UpsertMany replaces the stored payload for
// an existing (source, entity type, entity key) only when its hash differs.
type Repository interface {
	UpsertMany(ctx context.Context, items []Payload) error
}
