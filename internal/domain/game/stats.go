package game

import (
	"github.com/riskibarqy/rio-stats/internal/domain/schema"
	"github.com/riskibarqy/rio-stats/internal/platform/payload"
)

// OffenseStat names a counting stat under "Offensive Stats".
type OffenseStat string

const (
	StatAtBats          OffenseStat = "At Bats"
	StatHits            OffenseStat = "Hits"
	StatSingles         OffenseStat = "Singles"
	StatDoubles         OffenseStat = "Doubles"
	StatTriples         OffenseStat = "Triples"
	StatHomeruns        OffenseStat = "Homeruns"
	StatSuccessfulBunts OffenseStat = "Successful Bunts"
	StatSacFlys         OffenseStat = "Sac Flys"
	StatStrikeouts      OffenseStat = "Strikeouts"
	StatWalksBallFour   OffenseStat = "Walks (4 Balls)"
	StatWalksHitByPitch OffenseStat = "Walks (Hit)"
	StatRBI             OffenseStat = "RBI"
	StatBasesStolen     OffenseStat = "Bases Stolen"
	StatStarHits        OffenseStat = "Star Hits"
)

// DefenseStat names a counting stat under "Defensive Stats".
type DefenseStat string

const (
	StatBattersFaced      DefenseStat = "Batters Faced"
	StatRunsAllowed       DefenseStat = "Runs Allowed"
	StatBattersWalked     DefenseStat = "Batters Walked"
	StatBattersHit        DefenseStat = "Batters Hit"
	StatHitsAllowed       DefenseStat = "Hits Allowed"
	StatHRsAllowed        DefenseStat = "HRs Allowed"
	StatPitchesThrown     DefenseStat = "Pitches Thrown"
	StatStamina           DefenseStat = "Stamina"
	StatPitchedStrikeouts DefenseStat = "Strikeouts"
	StatStarPitchesThrown DefenseStat = "Star Pitches Thrown"
	StatBigPlays          DefenseStat = "Big Plays"
	StatOutsPitched       DefenseStat = "Outs Pitched"
)

// OffensiveStat reads a batting counting stat. AllSlots sums the team.
func (r *Record) OffensiveStat(name OffenseStat, team schema.Team, slot int) (int, error) {
	return r.counting(keyOffensive, string(name), team, slot)
}

// DefensiveStat reads a pitching or fielding counting stat. AllSlots sums the team.
func (r *Record) DefensiveStat(name DefenseStat, team schema.Team, slot int) (int, error) {
	return r.counting(keyDefensive, string(name), team, slot)
}

func (r *Record) counting(section, name string, team schema.Team, slot int) (int, error) {
	if err := validate(team, slot, true); err != nil {
		return 0, err
	}
	if slot != AllSlots {
		return r.single(section, name, team, slot)
	}
	total := 0
	for s := range RosterSize {
		n, err := r.single(section, name, team, s)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (r *Record) single(section, name string, team schema.Team, slot int) (int, error) {
	obj, path, err := r.slot(team, slot)
	if err != nil {
		return 0, err
	}
	stats, err := payload.RequireObject(obj, section, path)
	if err != nil {
		return 0, err
	}
	return payload.RequireInt(stats, name, path+"/"+section)
}

func (r *Record) AtBats(team schema.Team, slot int) (int, error) {
	return r.OffensiveStat(StatAtBats, team, slot)
}

func (r *Record) Hits(team schema.Team, slot int) (int, error) {
	return r.OffensiveStat(StatHits, team, slot)
}

func (r *Record) Singles(team schema.Team, slot int) (int, error) {
	return r.OffensiveStat(StatSingles, team, slot)
}

func (r *Record) Doubles(team schema.Team, slot int) (int, error) {
	return r.OffensiveStat(StatDoubles, team, slot)
}

func (r *Record) Triples(team schema.Team, slot int) (int, error) {
	return r.OffensiveStat(StatTriples, team, slot)
}

func (r *Record) Homeruns(team schema.Team, slot int) (int, error) {
	return r.OffensiveStat(StatHomeruns, team, slot)
}

func (r *Record) SuccessfulBunts(team schema.Team, slot int) (int, error) {
	return r.OffensiveStat(StatSuccessfulBunts, team, slot)
}

func (r *Record) SacFlys(team schema.Team, slot int) (int, error) {
	return r.OffensiveStat(StatSacFlys, team, slot)
}

func (r *Record) Strikeouts(team schema.Team, slot int) (int, error) {
	return r.OffensiveStat(StatStrikeouts, team, slot)
}

// Walks counts ball-four walks plus hit-by-pitch.
func (r *Record) Walks(team schema.Team, slot int) (int, error) {
	return r.sumOffense(team, slot, StatWalksBallFour, StatWalksHitByPitch)
}

func (r *Record) RBI(team schema.Team, slot int) (int, error) {
	return r.OffensiveStat(StatRBI, team, slot)
}

func (r *Record) BasesStolen(team schema.Team, slot int) (int, error) {
	return r.OffensiveStat(StatBasesStolen, team, slot)
}

func (r *Record) StarHitsUsed(team schema.Team, slot int) (int, error) {
	return r.OffensiveStat(StatStarHits, team, slot)
}

func (r *Record) BattersFaced(team schema.Team, slot int) (int, error) {
	return r.DefensiveStat(StatBattersFaced, team, slot)
}

func (r *Record) RunsAllowed(team schema.Team, slot int) (int, error) {
	return r.DefensiveStat(StatRunsAllowed, team, slot)
}

// BattersWalked counts ball-four walks plus hit batters.
func (r *Record) BattersWalked(team schema.Team, slot int) (int, error) {
	bb, err := r.DefensiveStat(StatBattersWalked, team, slot)
	if err != nil {
		return 0, err
	}
	hbp, err := r.DefensiveStat(StatBattersHit, team, slot)
	if err != nil {
		return 0, err
	}
	return bb + hbp, nil
}

func (r *Record) HitsAllowed(team schema.Team, slot int) (int, error) {
	return r.DefensiveStat(StatHitsAllowed, team, slot)
}

func (r *Record) HomerunsAllowed(team schema.Team, slot int) (int, error) {
	return r.DefensiveStat(StatHRsAllowed, team, slot)
}

func (r *Record) PitchesThrown(team schema.Team, slot int) (int, error) {
	return r.DefensiveStat(StatPitchesThrown, team, slot)
}

func (r *Record) Stamina(team schema.Team, slot int) (int, error) {
	return r.DefensiveStat(StatStamina, team, slot)
}

func (r *Record) StrikeoutsPitched(team schema.Team, slot int) (int, error) {
	return r.DefensiveStat(StatPitchedStrikeouts, team, slot)
}

func (r *Record) StarPitchesThrown(team schema.Team, slot int) (int, error) {
	return r.DefensiveStat(StatStarPitchesThrown, team, slot)
}

func (r *Record) BigPlays(team schema.Team, slot int) (int, error) {
	return r.DefensiveStat(StatBigPlays, team, slot)
}

func (r *Record) OutsPitched(team schema.Team, slot int) (int, error) {
	return r.DefensiveStat(StatOutsPitched, team, slot)
}

// InningsPitched is outs pitched over three.
func (r *Record) InningsPitched(team schema.Team, slot int) (float64, error) {
	outs, err := r.OutsPitched(team, slot)
	if err != nil {
		return 0, err
	}
	return float64(outs) / 3, nil
}

func (r *Record) sumOffense(team schema.Team, slot int, names ...OffenseStat) (int, error) {
	total := 0
	for _, name := range names {
		n, err := r.OffensiveStat(name, team, slot)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
