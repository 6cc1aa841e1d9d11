// Package webstats models the read side of the Project Rio web API: filter
// queries, community tags, game modes, users and game listings.
package webstats

import "time"

// Tag types reported by /tag/list.
const (
	TagTypeCommunity   = "Community"
	TagTypeGeckoCode   = "Gecko Code"
	TagTypeComponent   = "Component"
	TagTypeCompetition = "Competition"
)

type Tag struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Desc        string `json:"desc"`
	CommunityID *int   `json:"comm_id"`
	Active      bool   `json:"active"`
	DateCreated int64  `json:"date_created"`
}

// IsFilterable reports whether the tag can be used as a tag/exclude_tag filter
// on its own, i.e. it names a gecko code or a game component.
func (t Tag) IsFilterable() bool {
	return t.Type == TagTypeGeckoCode || t.Type == TagTypeComponent
}

// TagSet is a game mode: a named bundle of tags scoped to a community.
type TagSet struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Desc        string `json:"desc"`
	CommunityID *int   `json:"comm_id"`
	StartDate   int64  `json:"start_date"`
	EndDate     int64  `json:"end_date"`
}

type User struct {
	ID       string
	Username string
}

type TagFilter struct {
	Types        []string `json:"Types,omitempty"`
	CommunityIDs []int    `json:"community_ids,omitempty"`
}

type TagSetFilter struct {
	ActiveOnly   bool
	CommunityIDs []int
}

// GameListing is one row of /games/.
type GameListing struct {
	ID        int
	HomeUser  string
	AwayUser  string
	HomeScore int
	AwayScore int
	StartedAt time.Time
	EndedAt   time.Time
	GameMode  int
	Stadium   int
}

// Result is the winner/loser view of a listing. The away side wins ties.
type Result struct {
	WinnerUser  string
	WinnerScore int
	LoserUser   string
	LoserScore  int
}

func (g GameListing) Result() Result {
	if g.HomeScore > g.AwayScore {
		return Result{WinnerUser: g.HomeUser, WinnerScore: g.HomeScore, LoserUser: g.AwayUser, LoserScore: g.AwayScore}
	}
	return Result{WinnerUser: g.AwayUser, WinnerScore: g.AwayScore, LoserUser: g.HomeUser, LoserScore: g.HomeScore}
}
