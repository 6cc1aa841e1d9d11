package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/rio-stats/internal/domain/webstats"
)

// Catalog memoizes the slow-changing lists of the stats service: tags,
// communities, users and game modes. A failed load is not remembered, so the
// next call retries.
type Catalog struct {
	source webstats.Source

	mu      sync.Mutex
	tags    []webstats.Tag
	tagSets []webstats.TagSet
	users   []webstats.User
	loaded  map[string]bool
}

func NewCatalog(source webstats.Source) *Catalog {
	return &Catalog{
		source: source,
		loaded: map[string]bool{},
	}
}

const (
	catalogTags    = "tags"
	catalogTagSets = "tag_sets"
	catalogUsers   = "users"
)

// Reset drops everything memoized so far.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tags = nil
	c.tagSets = nil
	c.users = nil
	c.loaded = map[string]bool{}
}

func (c *Catalog) Tags(ctx context.Context) ([]webstats.Tag, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Catalog.Tags")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureSource(); err != nil {
		return nil, err
	}
	if !c.loaded[catalogTags] {
		tags, err := c.source.Tags(ctx, webstats.TagFilter{})
		if err != nil {
			return nil, fmt.Errorf("list tags: %w", err)
		}
		c.tags = tags
		c.loaded[catalogTags] = true
	}
	return append([]webstats.Tag(nil), c.tags...), nil
}

// Communities lists the names of community tags, sorted.
func (c *Catalog) Communities(ctx context.Context) ([]string, error) {
	tags, err := c.Tags(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag.Type == webstats.TagTypeCommunity {
			names = append(names, tag.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// FilterTags maps the name of every tag usable as a tag filter to its id.
func (c *Catalog) FilterTags(ctx context.Context) (map[string]int, error) {
	tags, err := c.Tags(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(tags))
	for _, tag := range tags {
		if tag.IsFilterable() {
			out[tag.Name] = tag.ID
		}
	}
	return out, nil
}

func (c *Catalog) TagSets(ctx context.Context) ([]webstats.TagSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Catalog.TagSets")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureSource(); err != nil {
		return nil, err
	}
	if !c.loaded[catalogTagSets] {
		sets, err := c.source.TagSets(ctx, webstats.TagSetFilter{})
		if err != nil {
			return nil, fmt.Errorf("list tag sets: %w", err)
		}
		c.tagSets = sets
		c.loaded[catalogTagSets] = true
	}
	return append([]webstats.TagSet(nil), c.tagSets...), nil
}

// GameModes maps game mode names to tag set ids.
func (c *Catalog) GameModes(ctx context.Context) (map[string]int, error) {
	sets, err := c.TagSets(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(sets))
	for _, set := range sets {
		out[set.Name] = set.ID
	}
	return out, nil
}

// GameModeName resolves a tag set id back to its name.
func (c *Catalog) GameModeName(ctx context.Context, id int) (string, bool, error) {
	sets, err := c.TagSets(ctx)
	if err != nil {
		return "", false, err
	}
	for _, set := range sets {
		if set.ID == id {
			return set.Name, true, nil
		}
	}
	return "", false, nil
}

// GameModeID looks a game mode up by name, ignoring case.
func (c *Catalog) GameModeID(ctx context.Context, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: game mode name is required", ErrInvalidInput)
	}
	sets, err := c.TagSets(ctx)
	if err != nil {
		return 0, err
	}
	for _, set := range sets {
		if strings.EqualFold(set.Name, name) {
			return set.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: game mode=%s", ErrNotFound, name)
}

func (c *Catalog) Users(ctx context.Context) ([]webstats.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Catalog.Users")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureSource(); err != nil {
		return nil, err
	}
	if !c.loaded[catalogUsers] {
		users, err := c.source.Users(ctx)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		c.users = users
		c.loaded[catalogUsers] = true
	}
	return append([]webstats.User(nil), c.users...), nil
}

// Usernames lists every known username in the order the source returns them.
func (c *Catalog) Usernames(ctx context.Context) ([]string, error) {
	users, err := c.Users(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names, nil
}

// NamedGame is a game listing with its game mode resolved to a name.
type NamedGame struct {
	webstats.GameListing
	GameModeName string `json:"game_mode_name,omitempty"`
}

// NameGames attaches game mode names to listings. Unknown modes keep an empty name.
func (c *Catalog) NameGames(ctx context.Context, games []webstats.GameListing) ([]NamedGame, error) {
	sets, err := c.TagSets(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(sets))
	for _, set := range sets {
		names[set.ID] = set.Name
	}
	out := make([]NamedGame, 0, len(games))
	for _, g := range games {
		out = append(out, NamedGame{GameListing: g, GameModeName: names[g.GameMode]})
	}
	return out, nil
}

func (c *Catalog) ensureSource() error {
	if c.source == nil {
		return fmt.Errorf("%w: stats source is not configured", ErrDependencyUnavailable)
	}
	return nil
}
