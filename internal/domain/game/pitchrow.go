package game

import (
	"fmt"
	"strconv"

	"github.com/riskibarqy/rio-stats/internal/domain/character"
)

// PitchRow is one pitch seen from both the pitching and the batting side.
type PitchRow struct {
	EventNum              int     `json:"eventNumber" db:"event_num"`
	PitchingPlayer        string  `json:"pitchingPlayer" db:"pitching_player"`
	BattingPlayer         string  `json:"battingPlayer" db:"batting_player"`
	PitchingCharacter     string  `json:"pitchingCharacter" db:"pitching_character"`
	BattingCharacter      string  `json:"battingCharacter" db:"batting_character"`
	PitchingCharacterBase string  `json:"pitchingCharacterNoVariant" db:"pitching_character_base"`
	BattingCharacterBase  string  `json:"battingCharacterNoVariant" db:"batting_character_base"`
	PitcherStarred        bool    `json:"pitcherStarred" db:"pitcher_starred"`
	BatterStarred         bool    `json:"batterStarred" db:"batter_starred"`
	Inning                int     `json:"inning" db:"inning"`
	HalfInning            int     `json:"halfInning" db:"half_inning"`
	PitchingScore         int     `json:"pitchingScore" db:"pitching_score"`
	BattingScore          int     `json:"battingScore" db:"batting_score"`
	PitchingStars         int     `json:"pitchingStars" db:"pitching_stars"`
	BattingStars          int     `json:"battingStars" db:"batting_stars"`
	Balls                 int     `json:"balls" db:"balls"`
	Strikes               int     `json:"strikes" db:"strikes"`
	Outs                  int     `json:"outs" db:"outs"`
	StarChance            int     `json:"starChance" db:"star_chance"`
	Stamina               int     `json:"stamina" db:"stamina"`
	Chemistry             int     `json:"chemistry" db:"chemistry"`
	BattingOrder          int     `json:"battingOrder" db:"batting_order"`
	BatterHand            string  `json:"batterHand" db:"batter_hand"`
	Runners               int     `json:"runners" db:"runners"`
	PitchType             string  `json:"pitchType" db:"pitch_type"`
	PitchXPos             float64 `json:"pitchXPos" db:"pitch_x_pos"`
	PitchInZone           int     `json:"pitchInZone" db:"pitch_in_zone"`
	SwingType             string  `json:"swingType" db:"swing_type"`
	BatterPosX            float64 `json:"batterPosX" db:"batter_pos_x"`
	BatterPosZ            float64 `json:"batterPosZ" db:"batter_pos_z"`
	RBI                   int     `json:"rBIs" db:"rbi"`
	Result                string  `json:"result" db:"result"`
	GameID                string  `json:"gameID" db:"game_id"`
	GameMode              *int    `json:"gameMode" db:"game_mode"`
	Stadium               string  `json:"stadium" db:"stadium"`
}

// PitchColumns is the CSV header, in the order of PitchRow.Values.
var PitchColumns = []string{
	"eventNumber", "pitchingPlayer", "battingPlayer",
	"pitchingCharacter", "battingCharacter",
	"pitchingCharacterNoVariant", "battingCharacterNoVariant",
	"pitcherStarred", "batterStarred",
	"inning", "halfInning",
	"pitchingScore", "battingScore", "pitchingStars", "battingStars",
	"balls", "strikes", "outs",
	"starChance", "stamina", "chemistry",
	"battingOrder", "batterHand", "runners",
	"pitchType", "pitchXPos", "pitchInZone", "swingType",
	"batterPosX", "batterPosZ",
	"rBIs", "result",
	"gameID", "gameMode", "stadium",
}

func (p PitchRow) Values() []string {
	mode := ""
	if p.GameMode != nil {
		mode = strconv.Itoa(*p.GameMode)
	}
	return []string{
		strconv.Itoa(p.EventNum), p.PitchingPlayer, p.BattingPlayer,
		p.PitchingCharacter, p.BattingCharacter,
		p.PitchingCharacterBase, p.BattingCharacterBase,
		boolFlag(p.PitcherStarred), boolFlag(p.BatterStarred),
		strconv.Itoa(p.Inning), strconv.Itoa(p.HalfInning),
		strconv.Itoa(p.PitchingScore), strconv.Itoa(p.BattingScore),
		strconv.Itoa(p.PitchingStars), strconv.Itoa(p.BattingStars),
		strconv.Itoa(p.Balls), strconv.Itoa(p.Strikes), strconv.Itoa(p.Outs),
		strconv.Itoa(p.StarChance), strconv.Itoa(p.Stamina), strconv.Itoa(p.Chemistry),
		strconv.Itoa(p.BattingOrder), p.BatterHand, strconv.Itoa(p.Runners),
		p.PitchType, formatFloat(p.PitchXPos), strconv.Itoa(p.PitchInZone), p.SwingType,
		formatFloat(p.BatterPosX), formatFloat(p.BatterPosZ),
		strconv.Itoa(p.RBI), p.Result,
		p.GameID, mode, p.Stadium,
	}
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EventError names an event that could not be turned into a pitch row.
type EventError struct {
	Event int
	Err   error
}

func (e EventError) Error() string { return fmt.Sprintf("event %d: %v", e.Event, e.Err) }

func (e EventError) Unwrap() error { return e.Err }

// PitchRows builds one row per event that carries a pitch. Players, rosters
// and scores are read from the literal sides the half inning names. An event
// that cannot be read is left out and reported in skipped; err is set only
// when the game header itself is unreadable.
func (r *Record) PitchRows() (rows []PitchRow, skipped []EventError, err error) {
	id, err := r.GameID()
	if err != nil {
		return nil, nil, err
	}
	stadium, err := r.StadiumName()
	if err != nil {
		return nil, nil, err
	}
	var mode *int
	if m, ok, err := r.GameMode(); err != nil {
		return nil, nil, err
	} else if ok {
		mode = &m
	}

	rows = make([]PitchRow, 0, len(r.events))
	for _, ev := range r.Events() {
		if ev.err != nil {
			skipped = append(skipped, EventError{Event: ev.Index(), Err: ev.err})
			continue
		}
		pitch, ok := ev.Pitch()
		if !ok {
			continue
		}
		row := PitchRow{
			GameID:   fmt.Sprintf("%X", id),
			GameMode: mode,
			Stadium:  stadium,
		}
		if err := r.fillPitchRow(&row, ev, pitch); err != nil {
			skipped = append(skipped, EventError{Event: ev.Index(), Err: err})
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func (r *Record) fillPitchRow(row *PitchRow, ev AtBatEvent, pitch Pitch) error {
	batting, err := ev.BattingSide()
	if err != nil {
		return err
	}
	pitching := batting.Other()

	ints := []struct {
		dst *int
		get func() (int, error)
	}{
		{&row.EventNum, ev.EventNum},
		{&row.Inning, ev.Inning},
		{&row.HalfInning, ev.HalfInning},
		{&row.Balls, ev.Balls},
		{&row.Strikes, ev.Strikes},
		{&row.Outs, ev.Outs},
		{&row.StarChance, ev.StarChance},
		{&row.Stamina, ev.PitcherStamina},
		{&row.Chemistry, ev.ChemLinksOnBase},
		{&row.BattingOrder, ev.BatterSlot},
		{&row.RBI, ev.RBI},
		{&row.Runners, ev.RunnerCount},
		{&row.PitchingScore, func() (int, error) { return ev.Score(pitching) }},
		{&row.BattingScore, func() (int, error) { return ev.Score(batting) }},
		{&row.PitchingStars, func() (int, error) { return ev.TeamStars(pitching) }},
		{&row.BattingStars, func() (int, error) { return ev.TeamStars(batting) }},
	}
	for _, f := range ints {
		v, err := f.get()
		if err != nil {
			return err
		}
		*f.dst = v
	}

	pitcherSlot, err := ev.PitcherSlot()
	if err != nil {
		return err
	}
	if row.PitchingPlayer, err = r.playerAt(pitching); err != nil {
		return err
	}
	if row.BattingPlayer, err = r.playerAt(batting); err != nil {
		return err
	}
	if row.PitchingCharacter, err = r.characterAt(pitching, pitcherSlot); err != nil {
		return err
	}
	if row.BattingCharacter, err = r.characterAt(batting, row.BattingOrder); err != nil {
		return err
	}
	row.PitchingCharacterBase = character.StripVariant(row.PitchingCharacter)
	row.BattingCharacterBase = character.StripVariant(row.BattingCharacter)
	if row.PitcherStarred, err = r.isStarredAt(pitching, pitcherSlot); err != nil {
		return err
	}
	if row.BatterStarred, err = r.isStarredAt(batting, row.BattingOrder); err != nil {
		return err
	}
	if row.BatterHand, err = r.battingHandAt(batting, row.BattingOrder); err != nil {
		return err
	}
	if row.Result, err = ev.ResultOfAB(); err != nil {
		return err
	}

	row.PitchType, _ = pitch.Type()
	row.SwingType, _ = pitch.SwingType()
	if row.PitchXPos, _, err = pitch.StrikezonePosition(); err != nil {
		return err
	}
	if row.PitchInZone, _, err = pitch.InStrikezone(); err != nil {
		return err
	}
	pos, _, err := pitch.BatContactPos()
	if err != nil {
		return err
	}
	row.BatterPosX, row.BatterPosZ = pos.X, pos.Z
	return nil
}
