package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/riskibarqy/rio-stats/internal/domain/webstats"
	webstatsmock "github.com/riskibarqy/rio-stats/internal/mocks/domain/webstats"
)

func TestCatalog_MemoizesTagSets(t *testing.T) {
	t.Parallel()

	source := webstatsmock.NewSource(t)
	source.On("TagSets", anyCtx, webstats.TagSetFilter{}).
		Return([]webstats.TagSet{{ID: 3, Name: "Stars Off Ranked"}, {ID: 7, Name: "Big Balla"}}, nil).
		Once()

	catalog := NewCatalog(source)
	ctx := context.Background()

	modes, err := catalog.GameModes(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := map[string]int{"Stars Off Ranked": 3, "Big Balla": 7}; !reflect.DeepEqual(modes, want) {
		t.Fatalf("expected modes %v, got %v", want, modes)
	}

	id, err := catalog.GameModeID(ctx, "stars off ranked")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 3 {
		t.Fatalf("expected id 3, got %d", id)
	}

	name, ok, err := catalog.GameModeName(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || name != "Big Balla" {
		t.Fatalf("expected Big Balla, got %q (%v)", name, ok)
	}

	if _, err := catalog.GameModeID(ctx, "Stars On"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := catalog.GameModeID(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCatalog_RetriesAfterFailure(t *testing.T) {
	t.Parallel()

	source := webstatsmock.NewSource(t)
	source.On("Users", anyCtx).Return(nil, errors.New("timeout")).Once()
	source.On("Users", anyCtx).Return([]webstats.User{{ID: "1", Username: "alice"}, {ID: "2", Username: "bob"}}, nil).Once()

	catalog := NewCatalog(source)
	if _, err := catalog.Usernames(context.Background()); err == nil {
		t.Fatalf("expected first load to fail")
	}

	names, err := catalog.Usernames(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"alice", "bob"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("expected names %v, got %v", want, names)
	}

	names, err = catalog.Usernames(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(names))
	}
}

func TestCatalog_TagViews(t *testing.T) {
	t.Parallel()

	source := webstatsmock.NewSource(t)
	source.On("Tags", anyCtx, webstats.TagFilter{}).Return([]webstats.Tag{
		{ID: 1, Name: "Netplay", Type: webstats.TagTypeCommunity},
		{ID: 2, Name: "Anarchy", Type: webstats.TagTypeCommunity},
		{ID: 3, Name: "Starless", Type: webstats.TagTypeComponent},
		{ID: 4, Name: "Hazardless", Type: webstats.TagTypeGeckoCode},
	}, nil).Once()

	catalog := NewCatalog(source)
	ctx := context.Background()

	communities, err := catalog.Communities(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"Anarchy", "Netplay"}; !reflect.DeepEqual(communities, want) {
		t.Fatalf("expected communities %v, got %v", want, communities)
	}

	filters, err := catalog.FilterTags(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := map[string]int{"Starless": 3, "Hazardless": 4}; !reflect.DeepEqual(filters, want) {
		t.Fatalf("expected filters %v, got %v", want, filters)
	}
}

func TestCatalog_ResetReloads(t *testing.T) {
	t.Parallel()

	source := webstatsmock.NewSource(t)
	source.On("TagSets", anyCtx, webstats.TagSetFilter{}).Return([]webstats.TagSet{{ID: 1, Name: "Ranked"}}, nil).Twice()

	catalog := NewCatalog(source)
	_, err := catalog.TagSets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	catalog.Reset()
	_, err = catalog.TagSets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCatalog_NameGames(t *testing.T) {
	t.Parallel()

	source := webstatsmock.NewSource(t)
	source.On("TagSets", anyCtx, webstats.TagSetFilter{}).Return([]webstats.TagSet{{ID: 5, Name: "Ranked"}}, nil).Once()

	named, err := NewCatalog(source).NameGames(context.Background(), []webstats.GameListing{
		{ID: 1, GameMode: 5},
		{ID: 2, GameMode: 99},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(named) != 2 {
		t.Fatalf("expected 2 named, got %d", len(named))
	}
	if named[0].GameModeName != "Ranked" {
		t.Fatalf("expected game mode name Ranked, got %q", named[0].GameModeName)
	}
	if len(named[1].GameModeName) != 0 {
		t.Fatalf("expected no game mode name, got %v", named[1].GameModeName)
	}
}

func TestCatalog_NoSource(t *testing.T) {
	t.Parallel()

	if _, err := NewCatalog(nil).Tags(context.Background()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
