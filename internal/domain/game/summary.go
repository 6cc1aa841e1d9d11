package game

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
	"github.com/riskibarqy/rio-stats/internal/domain/schema"
)

type TeamSummary struct {
	Team          int      `json:"team"`
	Player        string   `json:"player"`
	Score         int      `json:"score"`
	Captain       string   `json:"captain,omitempty"`
	Characters    []string `json:"characters"`
	AtBats        int      `json:"at_bats"`
	Hits          int      `json:"hits"`
	Homeruns      int      `json:"homeruns"`
	Walks         int      `json:"walks"`
	Strikeouts    int      `json:"strikeouts"`
	RunsAllowed   int      `json:"runs_allowed"`
	OutsPitched   int      `json:"outs_pitched"`
	BattingAvg    *float64 `json:"batting_avg"`
	OnBasePct     *float64 `json:"obp"`
	Slugging      *float64 `json:"slg"`
	OPS           *float64 `json:"ops"`
	ERA           *float64 `json:"era"`
	AnyStarred    bool     `json:"any_starred"`
}

type Summary struct {
	GameID          string         `json:"game_id"`
	Version         string         `json:"version"`
	Stadium         string         `json:"stadium"`
	StartDate       int            `json:"start_date"`
	EndDate         int            `json:"end_date"`
	InningsSelected int            `json:"innings_selected"`
	InningsPlayed   int            `json:"innings_played"`
	WasQuit         bool           `json:"was_quit"`
	WasMercy        bool           `json:"was_mercy"`
	Superstar       bool           `json:"superstar"`
	Events          int            `json:"events"`
	Teams           [2]TeamSummary `json:"teams"`
	WinningTeam     *int           `json:"winning_team"`
	WinningPitcher  string         `json:"winning_pitcher,omitempty"`
	LosingPitcher   string         `json:"losing_pitcher,omitempty"`
}

// Summary collects the headline numbers of a game. Ties leave the decision fields empty.
func (r *Record) Summary() (Summary, error) {
	id, err := r.GameID()
	if err != nil {
		return Summary{}, err
	}
	out := Summary{
		GameID:  fmt.Sprintf("%X", id),
		Version: r.Version(),
		Events:  r.EventCount(),
	}
	if out.Stadium, err = r.StadiumName(); err != nil {
		return Summary{}, err
	}
	if out.StartDate, err = r.StartDate(); err != nil {
		return Summary{}, err
	}
	if out.EndDate, err = r.EndDate(); err != nil {
		return Summary{}, err
	}
	if out.InningsSelected, err = r.InningsSelected(); err != nil {
		return Summary{}, err
	}
	if out.InningsPlayed, err = r.InningsPlayed(); err != nil {
		return Summary{}, err
	}
	if out.WasQuit, err = r.WasQuit(); err != nil {
		return Summary{}, err
	}
	if out.WasMercy, err = r.WasMercy(); err != nil {
		return Summary{}, err
	}
	if out.Superstar, err = r.IsSuperstarGame(); err != nil {
		return Summary{}, err
	}

	for _, team := range []schema.Team{schema.Team0, schema.Team1} {
		ts, err := r.teamSummary(team)
		if err != nil {
			return Summary{}, err
		}
		out.Teams[team] = ts
	}

	winner, err := r.WinningTeam()
	switch {
	case errors.Is(err, rioerr.ErrNoDecision):
		return out, nil
	case err != nil:
		return Summary{}, err
	}
	w := int(winner)
	out.WinningTeam = &w

	if slot, err := r.WinningPitcher(); err == nil {
		out.WinningPitcher, _ = r.Character(winner, slot)
	}
	if slot, err := r.LosingPitcher(); err == nil {
		out.LosingPitcher, _ = r.Character(winner.Other(), slot)
	}
	return out, nil
}

func (r *Record) teamSummary(team schema.Team) (TeamSummary, error) {
	ts := TeamSummary{Team: int(team)}
	var err error
	if ts.Player, err = r.Player(team); err != nil {
		return ts, err
	}
	if ts.Score, err = r.Score(team); err != nil {
		return ts, err
	}
	if ts.Captain, _, err = r.Captain(team); err != nil {
		return ts, err
	}
	if ts.Characters, err = r.Characters(team); err != nil {
		return ts, err
	}
	if ts.AnyStarred, err = r.IsStarred(team, AllSlots); err != nil {
		return ts, err
	}

	line, err := r.BattingLine(team, AllSlots)
	if err != nil {
		return ts, err
	}
	ts.AtBats, ts.Hits, ts.Homeruns, ts.Walks = line.AtBats, line.Hits, line.Homeruns, line.Walks
	ts.BattingAvg = line.Average().Ptr()
	ts.OnBasePct = line.OnBase().Ptr()
	ts.Slugging = line.Slugging().Ptr()
	ts.OPS = line.OnBasePlusSlugging().Ptr()

	if ts.Strikeouts, err = r.Strikeouts(team, AllSlots); err != nil {
		return ts, err
	}
	if ts.RunsAllowed, err = r.RunsAllowed(team, AllSlots); err != nil {
		return ts, err
	}
	if ts.OutsPitched, err = r.OutsPitched(team, AllSlots); err != nil {
		return ts, err
	}
	ts.ERA = EarnedRunAverage(ts.RunsAllowed, ts.OutsPitched).Ptr()
	return ts, nil
}
