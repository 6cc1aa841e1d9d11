// Package rating estimates head-to-head outcomes from Glicko ratings.
package rating

import (
	"math"

	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
)

// Player is a rating with its deviation.
type Player struct {
	Rating    float64 `json:"rating" validate:"required"`
	Deviation float64 `json:"deviation" validate:"gte=0"`
}

// g dampens a rating difference by the combined uncertainty.
func g(x float64) float64 {
	return 1 / math.Sqrt(1+(3*x*x)/(math.Pi*math.Pi))
}

// WinProbability is the chance that a beats b.
func WinProbability(a, b Player) (float64, error) {
	if a.Deviation < 0 || b.Deviation < 0 {
		return 0, rioerr.InvalidArgument("rating deviation must be >= 0")
	}
	combined := math.Sqrt(a.Deviation*a.Deviation + b.Deviation*b.Deviation)
	exponent := g(combined) * (b.Rating - a.Rating)
	return 1 - 1/(1+math.Exp(-exponent)), nil
}
