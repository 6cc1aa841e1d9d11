package game

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
	"github.com/riskibarqy/rio-stats/internal/domain/schema"
)

// WinningTeam is the logical team with the higher final score; ties have no winner.
func (r *Record) WinningTeam() (schema.Team, error) {
	s0, err := r.Score(schema.Team0)
	if err != nil {
		return 0, err
	}
	s1, err := r.Score(schema.Team1)
	if err != nil {
		return 0, err
	}
	switch {
	case s0 > s1:
		return schema.Team0, nil
	case s1 > s0:
		return schema.Team1, nil
	default:
		return 0, crerr.Wrapf(rioerr.ErrNoDecision, "tied %d-%d", s0, s1)
	}
}

func (r *Record) LosingTeam() (schema.Team, error) {
	winner, err := r.WinningTeam()
	if err != nil {
		return 0, err
	}
	return winner.Other(), nil
}

// FinalLeadChangeEvent is the index of the play on which the winner took the
// lead for good: the last event whose pre-play score did not favour the winner.
func (r *Record) FinalLeadChangeEvent() (int, error) {
	winner, err := r.WinningTeam()
	if err != nil {
		return 0, err
	}
	winSide, err := r.profile.Side(winner)
	if err != nil {
		return 0, err
	}

	for i := len(r.events) - 1; i >= 0; i-- {
		ev := r.eventAt(i)
		w, err := ev.Score(winSide)
		if err != nil {
			return 0, err
		}
		l, err := ev.Score(winSide.Other())
		if err != nil {
			return 0, err
		}
		if w <= l {
			return i, nil
		}
	}
	return 0, crerr.Wrap(rioerr.ErrNoDecision, "no lead change found")
}

// LosingPitcher is the roster slot on the mound when the winner took the lead.
func (r *Record) LosingPitcher() (int, error) {
	idx, err := r.FinalLeadChangeEvent()
	if err != nil {
		return 0, err
	}
	return r.eventAt(idx).PitcherSlot()
}

// WinningPitcher is the winner's pitcher in the half inning adjacent to the
// lead change: the latest one before it, or the first one after it when the
// lead was taken in the game's opening half inning.
func (r *Record) WinningPitcher() (int, error) {
	idx, err := r.FinalLeadChangeEvent()
	if err != nil {
		return 0, err
	}
	leadHalf, err := r.eventAt(idx).HalfInning()
	if err != nil {
		return 0, err
	}

	for i := idx - 1; i >= 0; i-- {
		slot, found, err := r.pitcherIfOtherHalf(i, leadHalf)
		if err != nil || found {
			return slot, err
		}
	}
	for i := idx + 1; i < len(r.events); i++ {
		slot, found, err := r.pitcherIfOtherHalf(i, leadHalf)
		if err != nil || found {
			return slot, err
		}
	}
	return 0, crerr.Wrap(rioerr.ErrNoDecision, "winning team never pitched")
}

func (r *Record) pitcherIfOtherHalf(i, leadHalf int) (int, bool, error) {
	ev := r.eventAt(i)
	half, err := ev.HalfInning()
	if err != nil {
		return 0, false, err
	}
	if half == leadHalf {
		return 0, false, nil
	}
	slot, err := ev.PitcherSlot()
	return slot, err == nil, err
}
