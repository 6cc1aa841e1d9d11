package webstats

import (
	"context"

	"github.com/riskibarqy/rio-stats/internal/domain/landing"
)

// Source is the read API of the stats service.
type Source interface {
	Stats(ctx context.Context, q StatsQuery) (map[string]any, error)
	LandingData(ctx context.Context, q StatsQuery) ([]landing.Row, error)
	Events(ctx context.Context, q StatsQuery) (map[string]any, error)
	Games(ctx context.Context, q GamesQuery) ([]GameListing, error)
	Tags(ctx context.Context, f TagFilter) ([]Tag, error)
	TagSets(ctx context.Context, f TagSetFilter) ([]TagSet, error)
	Users(ctx context.Context) ([]User, error)
}
