package game

import (
	"github.com/riskibarqy/rio-stats/internal/domain/schema"
)

var (
	awayRoster = [RosterSize]string{"Mario", "Luigi", "Peach", "Toad(R)", "Yoshi", "Wario", "Boo", "Koopa(G)", "Bowser Jr"}
	homeRoster = [RosterSize]string{"DK", "Diddy", "Dixie", "Goomba", "Koopa(R)", "Monty", "Petey", "Birdo", "Shy Guy(R)"}
)

func offense(ab, h, singles, doubles, triples, hr, bb, hbp int) map[string]any {
	return map[string]any{
		"At Bats":          float64(ab),
		"Hits":             float64(h),
		"Singles":          float64(singles),
		"Doubles":          float64(doubles),
		"Triples":          float64(triples),
		"Homeruns":         float64(hr),
		"Successful Bunts": float64(0),
		"Sac Flys":         float64(0),
		"Strikeouts":       float64(1),
		"Walks (4 Balls)":  float64(bb),
		"Walks (Hit)":      float64(hbp),
		"RBI":              float64(h),
		"Bases Stolen":     float64(0),
		"Star Hits":        float64(0),
	}
}

func defense(runsAllowed, outsPitched int) map[string]any {
	wasPitcher := 0
	if outsPitched > 0 {
		wasPitcher = 1
	}
	return map[string]any{
		"Batters Faced":        float64(outsPitched + runsAllowed),
		"Runs Allowed":         float64(runsAllowed),
		"Batters Walked":       float64(0),
		"Batters Hit":          float64(0),
		"Hits Allowed":         float64(runsAllowed),
		"HRs Allowed":          float64(0),
		"Pitches Thrown":       float64(outsPitched * 4),
		"Stamina":              float64(10),
		"Was Pitcher":          float64(wasPitcher),
		"Strikeouts":           float64(0),
		"Star Pitches Thrown":  float64(0),
		"Big Plays":            float64(0),
		"Outs Pitched":         float64(outsPitched),
		"Pitches Per Position": []any{map[string]any{"P": float64(outsPitched * 4), "C": float64(0)}},
		"Outs Per Position":    []any{map[string]any{"P": float64(outsPitched)}},
	}
}

func slotRecord(name string, side schema.Side, captain, star bool, off, def map[string]any) map[string]any {
	flag := func(b bool) float64 {
		if b {
			return 1
		}
		return 0
	}
	return map[string]any{
		"Team":            float64(side),
		"CharID":          name,
		"Superstar":       flag(star),
		"Captain":         flag(captain),
		"Fielding Hand":   "Right",
		"Batting Hand":    float64(0),
		"Offensive Stats": off,
		"Defensive Stats": def,
	}
}

type eventSpec struct {
	inning, half    int
	away, home      int
	pitcher, batter int
	result          string
	extra           map[string]any
}

func event(num int, spec eventSpec) map[string]any {
	ev := map[string]any{
		"Event Num":               float64(num),
		"Inning":                  float64(spec.inning),
		"Half Inning":             float64(spec.half),
		"Away Score":              float64(spec.away),
		"Home Score":              float64(spec.home),
		"Balls":                   float64(1),
		"Strikes":                 float64(2),
		"Outs":                    float64(0),
		"Star Chance":             float64(0),
		"Away Stars":              float64(4),
		"Home Stars":              float64(3),
		"Pitcher Stamina":         float64(9),
		"Chemistry Links on Base": float64(0),
		"Pitcher Roster Loc":      float64(spec.pitcher),
		"Batter Roster Loc":       float64(spec.batter),
		"Catcher Roster Loc":      float64(1),
		"RBI":                     float64(0),
		"Num Outs During Play":    float64(0),
		"Result of AB":            spec.result,
	}
	for k, v := range spec.extra {
		ev[k] = v
	}
	return ev
}

func contactPitch() map[string]any {
	return map[string]any{
		"Pitcher Team Id":            float64(0),
		"Pitcher Char Id":            "DK",
		"Pitch Type":                 "Charge",
		"Charge Type":                "Slider",
		"Star Pitch":                 float64(0),
		"Pitch Speed":                float64(162),
		"Ball Position - Strikezone": -0.260153,
		"In Strikezone":              float64(1),
		"Bat Contact Pos - X":        -0.134028,
		"Bat Contact Pos - Z":        1.5,
		"DB":                         float64(0),
		"Type of Swing":              "Slap",
		"Contact": map[string]any{
			"Type of Contact":             "Nice - Right",
			"Charge Power Up":             float64(0),
			"Charge Power Down":           float64(0),
			"Star Swing Five-Star":        float64(0),
			"Input Direction - Push/Pull": "Towards Batter",
			"Input Direction - Stick":     "Right",
			"Frame of Swing Upon Contact": "2",
			"Ball Power":                  "139",
			"Vert Angle":                  "158",
			"Horiz Angle":                 "1,722",
			"Contact Absolute":            109.703,
			"Contact Quality":             0.988479,
			"RNG1":                        "4,552",
			"RNG2":                        "5,350",
			"RNG3":                        "183",
			"Ball Velocity - X":           -0.592068,
			"Ball Velocity - Y":           0.166802,
			"Ball Velocity - Z":           0.323508,
			"Ball Contact Pos - X":        -0.216502,
			"Ball Contact Pos - Z":        1.5,
			"Ball Landing Position - X":   -45.4675,
			"Ball Landing Position - Y":   0.176705,
			"Ball Landing Position - Z":   17.4371,
			"Ball Max Height":             4.23982,
			"Ball Hang Time":              "89",
			"Contact Result - Primary":    "Fair",
			"Contact Result - Secondary":  "HR",
			"First Fielder": map[string]any{
				"Fielder Position":        "LF",
				"Fielder Character":       "Wario",
				"Fielder Action":          "None",
				"Fielder Jump":            float64(0),
				"Fielder Swap":            float64(0),
				"Fielder Manual Selected": "No Selected Char",
				"Fielder Position - X":    -40.0,
				"Fielder Position - Y":    0.0,
				"Fielder Position - Z":    20.0,
				"Fielder Bobble":          "None",
			},
		},
	}
}

// buildGame lays out a three-inning game the home side wins 3-1. The away
// roster bats .333 over 24 at-bats; the home leadoff slot carries a double,
// a homerun and a walk.
func buildGame(version string) map[string]any {
	profile := schema.Resolve(version)
	stats := map[string]any{}
	for slot := range RosterSize {
		awayOff := offense(3, 1, 1, 0, 0, 0, 0, 0)
		if slot == 8 {
			awayOff = offense(0, 0, 0, 0, 0, 0, 0, 0)
		}
		awayDef := defense(0, 0)
		switch slot {
		case 0:
			awayDef = defense(2, 6)
		case 1:
			awayDef = defense(1, 3)
		}
		stats[profile.SideRosterKey(schema.SideAway, slot)] = slotRecord(awayRoster[slot], schema.SideAway, slot == 0, false, awayOff, awayDef)

		homeOff := offense(3, 1, 1, 0, 0, 0, 0, 0)
		homeDef := defense(0, 0)
		if slot == 0 {
			homeOff = offense(4, 2, 0, 1, 0, 1, 1, 0)
			homeDef = defense(1, 9)
		}
		stats[profile.SideRosterKey(schema.SideHome, slot)] = slotRecord(homeRoster[slot], schema.SideHome, slot == 0, slot == 2, homeOff, homeDef)
	}

	malformedContact := contactPitch()
	malformedContact["Contact"].(map[string]any)["Ball Hang Time"] = "eighty"

	events := []any{
		event(0, eventSpec{inning: 1, half: 0, pitcher: 0, batter: 0, result: "Out", extra: map[string]any{
			"Pitch": map[string]any{"Pitch Type": "Curve", "Type of Swing": "None"},
		}}),
		event(1, eventSpec{inning: 1, half: 1, pitcher: 0, batter: 0, result: "HR", extra: map[string]any{
			"Pitch": contactPitch(),
		}}),
		event(2, eventSpec{inning: 2, half: 0, home: 1, pitcher: 0, batter: 1, result: "Double", extra: map[string]any{
			"Pitch": malformedContact,
		}}),
		event(3, eventSpec{inning: 2, half: 1, away: 1, home: 1, pitcher: 1, batter: 1, result: "HR", extra: map[string]any{
			"Runner 1B": map[string]any{"Runner Roster Loc": float64(0), "Runner Char Id": "DK", "Runner Initial Base": float64(1), "Out Type": "None", "Out Location": float64(0), "Steal": "None", "Runner Result Base": float64(4)},
			"Runner 3B": map[string]any{"Runner Roster Loc": float64(5), "Runner Char Id": "Monty", "Runner Initial Base": float64(3), "Out Type": "None", "Out Location": float64(0), "Steal": "Normal", "Runner Result Base": float64(4)},
		}}),
		event(4, eventSpec{inning: 3, half: 0, away: 1, home: 2, pitcher: 0, batter: 2, result: "Strikeout"}),
		event(5, eventSpec{inning: 3, half: 1, away: 1, home: 2, pitcher: 1, batter: 2, result: "7"}),
	}

	return map[string]any{
		"GameID":               "1A,2B3C",
		"Version":              version,
		"Date - Start":         float64(1700000000),
		"Date - End":           float64(1700001800),
		"StadiumID":            float64(3),
		"Away Player":          "alice",
		"Home Player":          "bob",
		"Away Score":           float64(1),
		"Home Score":           float64(3),
		"Innings Selected":     float64(3),
		"Innings Played":       float64(3),
		"Quitter Team":         "",
		"Average Ping":         float64(12),
		"Lag Spikes":           float64(0),
		"Character Game Stats": stats,
		"Events":               events,
	}
}

func mustRecord(tb interface {
	Helper()
	Fatalf(string, ...any)
}, raw map[string]any) *Record {
	tb.Helper()
	rec, err := New(raw)
	if err != nil {
		tb.Fatalf("build record: %v", err)
	}
	return rec
}
