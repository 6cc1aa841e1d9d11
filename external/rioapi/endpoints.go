package rioapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/rio-stats/internal/domain/landing"
	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
	"github.com/riskibarqy/rio-stats/internal/domain/webstats"
	"github.com/riskibarqy/rio-stats/internal/platform/payload"
)

const (
	EndpointStats       = "/stats/"
	EndpointLandingData = "/landing_data/"
	EndpointEvents      = "/events/"
	EndpointGames       = "/games/"
	EndpointTagList     = "/tag/list"
	EndpointTagSetList  = "/tag_set/list"
	EndpointUsers       = "/user/all"
)

var _ webstats.Source = (*Client)(nil)

func (c *Client) Stats(ctx context.Context, q webstats.StatsQuery) (map[string]any, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return c.getObject(ctx, EndpointStats, q.Params())
}

func (c *Client) Events(ctx context.Context, q webstats.StatsQuery) (map[string]any, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return c.getObject(ctx, EndpointEvents, q.Params())
}

func (c *Client) LandingData(ctx context.Context, q webstats.StatsQuery) ([]landing.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.fetch(ctx, request{method: http.MethodGet, path: EndpointLandingData, params: q.Params()})
	if err != nil {
		return nil, fmt.Errorf("fetch landing data: %w", err)
	}
	return landing.DecodeRows(raw)
}

func (c *Client) Games(ctx context.Context, q webstats.GamesQuery) ([]webstats.GameListing, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	body, err := c.getObject(ctx, EndpointGames, q.Params())
	if err != nil {
		return nil, err
	}
	items, ok := payload.Array(body, "games")
	if !ok {
		return nil, rioerr.MissingKey("games")
	}

	out := make([]webstats.GameListing, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, rioerr.NewParseError(fmt.Sprintf("games/%d", i), item, nil)
		}
		listing, err := parseGameListing(obj)
		if err != nil {
			return nil, fmt.Errorf("games/%d: %w", i, err)
		}
		out = append(out, listing)
	}
	return out, nil
}

func (c *Client) Tags(ctx context.Context, f webstats.TagFilter) ([]webstats.Tag, error) {
	body := map[string]any{}
	if len(f.Types) > 0 {
		body["Types"] = f.Types
	}
	if len(f.CommunityIDs) > 0 {
		body["community_ids"] = f.CommunityIDs
	}

	var resp struct {
		Tags []webstats.Tag `json:"Tags"`
	}
	if err := c.postJSON(ctx, EndpointTagList, body, &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

func (c *Client) TagSets(ctx context.Context, f webstats.TagSetFilter) ([]webstats.TagSet, error) {
	body := map[string]any{}
	if f.ActiveOnly {
		body["Active"] = "t"
	}
	if len(f.CommunityIDs) > 0 {
		body["Communities"] = f.CommunityIDs
	}

	var resp struct {
		TagSets []webstats.TagSet `json:"Tag Sets"`
	}
	if err := c.postJSON(ctx, EndpointTagSetList, body, &resp); err != nil {
		return nil, err
	}
	return resp.TagSets, nil
}

// Users returns every registered user ordered by username.
func (c *Client) Users(ctx context.Context) ([]webstats.User, error) {
	raw, err := c.fetch(ctx, request{method: http.MethodGet, path: EndpointUsers})
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	var resp struct {
		Users map[string]string `json:"users"`
	}
	if err := sonic.Unmarshal(raw, &resp); err != nil {
		return nil, rioerr.NewParseError("users", len(raw), err)
	}

	out := make([]webstats.User, 0, len(resp.Users))
	for id, name := range resp.Users {
		out = append(out, webstats.User{ID: id, Username: name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Username == out[j].Username {
			return out[i].ID < out[j].ID
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}

func (c *Client) getObject(ctx context.Context, path string, params []webstats.Param) (map[string]any, error) {
	raw, err := c.fetch(ctx, request{method: http.MethodGet, path: path, params: params})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	var out map[string]any
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, rioerr.NewParseError(path, len(raw), err)
	}
	return out, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body map[string]any, target any) error {
	raw, err := c.fetch(ctx, request{method: http.MethodPost, path: path, body: body})
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return rioerr.NewParseError(path, len(raw), err)
	}
	return nil
}

func parseGameListing(obj map[string]any) (webstats.GameListing, error) {
	var (
		g   webstats.GameListing
		err error
	)
	if g.ID, err = payload.RequireInt(obj, "game_id", "games"); err != nil {
		return g, err
	}
	if g.HomeUser, err = payload.RequireText(obj, "home_user", "games"); err != nil {
		return g, err
	}
	if g.AwayUser, err = payload.RequireText(obj, "away_user", "games"); err != nil {
		return g, err
	}
	if g.HomeScore, err = payload.RequireInt(obj, "home_score", "games"); err != nil {
		return g, err
	}
	if g.AwayScore, err = payload.RequireInt(obj, "away_score", "games"); err != nil {
		return g, err
	}
	if start, ok, err := payload.Int(obj, "date_time_start"); err != nil {
		return g, err
	} else if ok {
		g.StartedAt = time.Unix(int64(start), 0).UTC()
	}
	if end, ok, err := payload.Int(obj, "date_time_end"); err != nil {
		return g, err
	} else if ok {
		g.EndedAt = time.Unix(int64(end), 0).UTC()
	}
	if g.GameMode, _, err = payload.Int(obj, "game_mode"); err != nil {
		return g, err
	}
	if g.Stadium, _, err = payload.Int(obj, "stadium"); err != nil {
		return g, err
	}
	return g, nil
}
