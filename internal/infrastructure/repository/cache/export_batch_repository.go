package cache

import (
	"context"
	"fmt"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
	basecache "github.com/riskibarqy/rio-stats/internal/platform/cache"
)

const exportBatchPrefix = "export-batch:"

// ExportBatchRepository caches recent batch listings in front of another
// repository. Creating a batch drops every cached listing.
type ExportBatchRepository struct {
	next   exportbatch.Repository
	loader *basecache.Loader
}

func NewExportBatchRepository(next exportbatch.Repository, store basecache.Store) *ExportBatchRepository {
	return &ExportBatchRepository{next: next, loader: basecache.NewLoader(store)}
}

func (r *ExportBatchRepository) Create(ctx context.Context, batch exportbatch.Batch) error {
	if err := r.next.Create(ctx, batch); err != nil {
		return err
	}
	if store := r.loader.Store(); store != nil {
		store.DeletePrefix(ctx, exportBatchPrefix)
	}
	return nil
}

func (r *ExportBatchRepository) ListRecent(ctx context.Context, limit int) ([]exportbatch.Batch, error) {
	raw, err := r.loader.GetOrLoad(ctx, exportBatchPrefix+"recent:"+strconv.Itoa(limit), func(ctx context.Context) ([]byte, error) {
		items, err := r.next.ListRecent(ctx, limit)
		if err != nil {
			return nil, err
		}
		return sonic.Marshal(items)
	})
	if err != nil {
		return nil, err
	}

	var items []exportbatch.Batch
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cached export batches: %w", err)
	}
	return items, nil
}
