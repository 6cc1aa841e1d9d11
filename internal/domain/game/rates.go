package game

import (
	"strconv"

	"github.com/riskibarqy/rio-stats/internal/domain/schema"
)

// Rate is a derived ratio that is undefined when its denominator is zero.
type Rate struct {
	Value   float64
	Defined bool
}

func Ratio(numerator, denominator float64) Rate {
	if denominator == 0 {
		return Rate{}
	}
	return Rate{Value: numerator / denominator, Defined: true}
}

func (r Rate) Add(other Rate) Rate {
	if !r.Defined || !other.Defined {
		return Rate{}
	}
	return Rate{Value: r.Value + other.Value, Defined: true}
}

func (r Rate) String() string {
	if !r.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(r.Value, 'f', 3, 64)
}

// Ptr is the nullable form used by JSON and SQL sinks.
func (r Rate) Ptr() *float64 {
	if !r.Defined {
		return nil
	}
	v := r.Value
	return &v
}

// BattingLine holds the aggregated components every batting rate derives from.
type BattingLine struct {
	AtBats   int
	Hits     int
	Singles  int
	Doubles  int
	Triples  int
	Homeruns int
	Walks    int
}

func (r *Record) BattingLine(team schema.Team, slot int) (BattingLine, error) {
	var line BattingLine
	fields := []struct {
		stat OffenseStat
		dst  *int
	}{
		{StatAtBats, &line.AtBats},
		{StatHits, &line.Hits},
		{StatSingles, &line.Singles},
		{StatDoubles, &line.Doubles},
		{StatTriples, &line.Triples},
		{StatHomeruns, &line.Homeruns},
	}
	for _, f := range fields {
		n, err := r.OffensiveStat(f.stat, team, slot)
		if err != nil {
			return BattingLine{}, err
		}
		*f.dst = n
	}
	walks, err := r.Walks(team, slot)
	if err != nil {
		return BattingLine{}, err
	}
	line.Walks = walks
	return line, nil
}

func (l BattingLine) Average() Rate {
	return Ratio(float64(l.Hits), float64(l.AtBats))
}

// OnBase counts walks on top of hits against at-bats, matching how stat files record at-bats.
func (l BattingLine) OnBase() Rate {
	return Ratio(float64(l.Hits+l.Walks), float64(l.AtBats))
}

// Slugging weighs total bases against at-bats net of walks; a non-positive denominator is undefined.
func (l BattingLine) Slugging() Rate {
	bases := l.Singles + 2*l.Doubles + 3*l.Triples + 4*l.Homeruns
	denominator := l.AtBats - l.Walks
	if denominator <= 0 {
		return Rate{}
	}
	return Ratio(float64(bases), float64(denominator))
}

func (l BattingLine) OnBasePlusSlugging() Rate {
	return l.OnBase().Add(l.Slugging())
}

func (r *Record) BattingAverage(team schema.Team, slot int) (Rate, error) {
	line, err := r.BattingLine(team, slot)
	if err != nil {
		return Rate{}, err
	}
	return line.Average(), nil
}

func (r *Record) OnBasePct(team schema.Team, slot int) (Rate, error) {
	line, err := r.BattingLine(team, slot)
	if err != nil {
		return Rate{}, err
	}
	return line.OnBase(), nil
}

func (r *Record) Slugging(team schema.Team, slot int) (Rate, error) {
	line, err := r.BattingLine(team, slot)
	if err != nil {
		return Rate{}, err
	}
	return line.Slugging(), nil
}

func (r *Record) OnBasePlusSlugging(team schema.Team, slot int) (Rate, error) {
	line, err := r.BattingLine(team, slot)
	if err != nil {
		return Rate{}, err
	}
	return line.OnBasePlusSlugging(), nil
}

// ERA is nine times runs allowed per inning pitched.
func (r *Record) ERA(team schema.Team, slot int) (Rate, error) {
	runs, err := r.RunsAllowed(team, slot)
	if err != nil {
		return Rate{}, err
	}
	outs, err := r.OutsPitched(team, slot)
	if err != nil {
		return Rate{}, err
	}
	return EarnedRunAverage(runs, outs), nil
}

func EarnedRunAverage(runsAllowed, outsPitched int) Rate {
	innings := float64(outsPitched) / 3
	return Ratio(9*float64(runsAllowed), innings)
}
