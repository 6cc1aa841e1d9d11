// Package landing analyses ball landing rows from the web API: how far and
// how fast the first fielder had to move, and how contact turned into results.
package landing

import (
	"math"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/rio-stats/internal/domain/game"
	"github.com/riskibarqy/rio-stats/internal/domain/lookup"
	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
)

// Row is one entry of the landing data endpoint.
type Row struct {
	BallXContactPos float64 `json:"ball_x_contact_pos"`
	BallZContactPos float64 `json:"ball_z_contact_pos"`
	BallXLandingPos float64 `json:"ball_x_landing_pos"`
	BallYLandingPos float64 `json:"ball_y_landing_pos"`
	BallZLandingPos float64 `json:"ball_z_landing_pos"`
	BallXVelocity   float64 `json:"ball_x_velocity"`
	BallYVelocity   float64 `json:"ball_y_velocity"`
	BallZVelocity   float64 `json:"ball_z_velocity"`
	BallHangTime    float64 `json:"ball_hang_time"`
	FielderPosition int     `json:"fielder_position"`
	FielderXPos     float64 `json:"fielder_x_pos"`
	FielderYPos     float64 `json:"fielder_y_pos"`
	FielderZPos     float64 `json:"fielder_z_pos"`
	FinalResult     int     `json:"final_result"`
	TypeOfContact   int     `json:"type_of_contact"`
	TypeOfSwing     int     `json:"type_of_swing"`
	RNG1            int     `json:"rng1"`
	RNG2            int     `json:"rng2"`
	RNG3            int     `json:"rng3"`
}

type response struct {
	Data []Row `json:"Data"`
}

// DecodeRows reads the {"Data": [...]} envelope of the landing endpoint.
func DecodeRows(data []byte) ([]Row, error) {
	var resp response
	if err := sonic.Unmarshal(data, &resp); err != nil {
		return nil, rioerr.NewParseError("landing data", len(data), err)
	}
	return resp.Data, nil
}

func (r Row) Landing() game.Vec3 {
	return game.Vec3{X: r.BallXLandingPos, Y: r.BallYLandingPos, Z: r.BallZLandingPos}
}

func (r Row) Fielder() game.Vec3 {
	return game.Vec3{X: r.FielderXPos, Y: r.FielderYPos, Z: r.FielderZPos}
}

func (r Row) RNGValue() int {
	return game.RNGValue(r.RNG1, r.RNG2, r.RNG3)
}

func (r Row) IsHit() bool {
	return lookup.IsHit(r.FinalResult)
}

func (r Row) IsOut() bool {
	return lookup.IsOut(r.FinalResult)
}

// IsAtBat also counts plain outs, which the out classification leaves aside.
func (r Row) IsAtBat() bool {
	return r.IsHit() || r.IsOut() || r.FinalResult == lookup.ResultOut
}

var startingPositions = map[string]game.Vec3{
	"P":  {X: 0, Y: 0.22299999, Z: 18.3999996},
	"C":  {X: 0, Y: 0, Z: -3.7999995},
	"1B": {X: 18.5, Y: 0, Z: 22},
	"2B": {X: 11, Y: 0, Z: 36},
	"3B": {X: -18.5, Y: 0, Z: 22},
	"SS": {X: -11, Y: 0, Z: 36},
	"LF": {X: -34, Y: 0, Z: 60},
	"CF": {X: 0, Y: 0, Z: 76},
	"RF": {X: 34, Y: 0, Z: 60},
}

// lockout is the number of frames a fielder cannot move after contact.
var lockout = map[string]float64{
	"P":  25,
	"C":  40,
	"1B": 16,
	"2B": 15,
	"3B": 18,
	"SS": 17,
	"LF": 50,
	"CF": 50,
	"RF": 50,
}

// StartingPosition is where a fielder stands when the pitch is thrown.
func StartingPosition(position int) (game.Vec3, bool) {
	name, ok := lookup.Position.Name(position)
	if !ok {
		return game.Vec3{}, false
	}
	v, ok := startingPositions[name]
	return v, ok
}

func Lockout(position int) (float64, bool) {
	name, ok := lookup.Position.Name(position)
	if !ok {
		return 0, false
	}
	v, ok := lockout[name]
	return v, ok
}

// Movement is a distance covered within the frames left after lockout.
type Movement struct {
	Distance     float64   `json:"distance"`
	Distance2D   float64   `json:"distance_2d"`
	AdjustedHang float64   `json:"adjusted_hang"`
	Speed        game.Rate `json:"-"`
	Speed2D      game.Rate `json:"-"`
}

// FielderMovement measures the first fielder's run from the starting spot.
// ok is false for positions without a starting spot.
func FielderMovement(r Row) (Movement, bool) {
	start, ok := StartingPosition(r.FielderPosition)
	if !ok {
		return Movement{}, false
	}
	lock, _ := Lockout(r.FielderPosition)
	diff := r.Fielder().Sub(start)
	adjusted := math.Max(r.BallHangTime-lock, 0)
	return movement(diff, adjusted), true
}

// BallReach measures the run a fielder would need to reach the landing spot.
// Adjusted hang time is not floored here, so a ball that lands during
// lockout gets a zero speed rather than an undefined one.
func BallReach(r Row) (Movement, bool) {
	start, ok := StartingPosition(r.FielderPosition)
	if !ok || r.BallHangTime == 0 {
		return Movement{}, false
	}
	lock, _ := Lockout(r.FielderPosition)
	diff := r.Landing().Sub(start)
	return movement(diff, r.BallHangTime-lock), true
}

func movement(diff game.Vec3, adjusted float64) Movement {
	m := Movement{
		Distance:     diff.Norm(),
		Distance2D:   diff.NormXZ(),
		AdjustedHang: adjusted,
	}
	m.Speed = clipSpeed(game.Ratio(m.Distance, adjusted))
	m.Speed2D = clipSpeed(game.Ratio(m.Distance2D, adjusted))
	return m
}

func clipSpeed(r game.Rate) game.Rate {
	if r.Defined && r.Value < 0 {
		r.Value = 0
	}
	return r
}

// Gap is the offset between where the ball landed and where the fielder ended up.
type Gap struct {
	Offset     game.Vec3 `json:"offset"`
	Distance   float64   `json:"distance"`
	Distance2D float64   `json:"distance_2d"`
}

func BallFielderGap(r Row) Gap {
	offset := r.Landing().Sub(r.Fielder())
	return Gap{Offset: offset, Distance: offset.Norm(), Distance2D: offset.NormXZ()}
}
