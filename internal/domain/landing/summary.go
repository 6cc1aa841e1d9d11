package landing

import (
	"strconv"

	"github.com/riskibarqy/rio-stats/internal/domain/game"
	"github.com/riskibarqy/rio-stats/internal/domain/lookup"
)

type Summary struct {
	Rows    int       `json:"rows"`
	Hits    int       `json:"hits"`
	Outs    int       `json:"outs"`
	AtBats  int       `json:"at_bats"`
	Average game.Rate `json:"-"`
}

// Summarize counts results over landing rows. The average is hits over at-bats.
func Summarize(rows []Row) Summary {
	s := Summary{Rows: len(rows)}
	for _, r := range rows {
		if r.IsHit() {
			s.Hits++
		}
		if r.IsOut() {
			s.Outs++
		}
		if r.IsAtBat() {
			s.AtBats++
		}
	}
	s.Average = game.Ratio(float64(s.Hits), float64(s.AtBats))
	return s
}

// ContactRatios is the share of each contact type among rows with the given
// swing type, keyed by contact type name.
func ContactRatios(rows []Row, swing int) map[string]float64 {
	counts := map[string]int{}
	total := 0
	for _, r := range rows {
		if r.TypeOfSwing != swing {
			continue
		}
		name, ok := lookup.ContactType.Name(r.TypeOfContact)
		if !ok {
			name = strconv.Itoa(r.TypeOfContact)
		}
		counts[name]++
		total++
	}
	out := make(map[string]float64, len(counts))
	for name, n := range counts {
		out[name] = float64(n) / float64(total)
	}
	return out
}

// Filter keeps the rows matching keep.
func Filter(rows []Row, keep func(Row) bool) []Row {
	var out []Row
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
