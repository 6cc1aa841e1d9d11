package game

import (
	"math"

	"github.com/riskibarqy/rio-stats/internal/domain/lookup"
	"github.com/riskibarqy/rio-stats/internal/platform/payload"
)

type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// NormXZ ignores height.
func (v Vec3) NormXZ() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}

// RNG is the three-part random seed recorded at contact.
type RNG struct {
	R1 int `json:"rng1"`
	R2 int `json:"rng2"`
	R3 int `json:"rng3"`
}

// Value folds the seed into the 0..99 roll the game uses.
func (r RNG) Value() int {
	return RNGValue(r.R1, r.R2, r.R3)
}

func RNGValue(rng1, rng2, rng3 int) int {
	sum := rng1 - (rng2 & 0xff) + floorDiv(rng2, 100) + rng3
	v := sum - floorDiv(sum, 100)*100
	if v < 0 {
		v = -v
	}
	return v
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func vec2(obj map[string]any, prefix string) (Vec2, bool, error) {
	if !payload.Has(obj, prefix+" - X") {
		return Vec2{}, false, nil
	}
	x, _, err := payload.Float(obj, prefix+" - X")
	if err != nil {
		return Vec2{}, true, err
	}
	z, ok, err := payload.Float(obj, prefix+" - Z")
	if err != nil || !ok {
		return Vec2{}, ok, err
	}
	return Vec2{X: x, Z: z}, true, nil
}

func vec3(obj map[string]any, prefix string) (Vec3, bool, error) {
	if !payload.Has(obj, prefix+" - X") {
		return Vec3{}, false, nil
	}
	var out Vec3
	for _, axis := range []struct {
		key string
		dst *float64
	}{{" - X", &out.X}, {" - Y", &out.Y}, {" - Z", &out.Z}} {
		v, ok, err := payload.Float(obj, prefix+axis.key)
		if err != nil {
			return Vec3{}, true, err
		}
		if !ok {
			return Vec3{}, false, nil
		}
		*axis.dst = v
	}
	return out, true, nil
}

// Pitch is the optional pitch group of an event.
type Pitch struct {
	raw map[string]any
}

func (p Pitch) PitcherTeamID() (int, bool, error) { return payload.Int(p.raw, "Pitcher Team Id") }
func (p Pitch) PitcherCharID() (string, bool)     { return payload.Text(p.raw, "Pitcher Char Id") }
func (p Pitch) Type() (string, bool)              { return payload.Text(p.raw, "Pitch Type") }
func (p Pitch) ChargeType() (string, bool)        { return payload.Text(p.raw, "Charge Type") }
func (p Pitch) StarPitch() (int, bool, error)     { return payload.Int(p.raw, "Star Pitch") }
func (p Pitch) Speed() (int, bool, error)         { return payload.Int(p.raw, "Pitch Speed") }
func (p Pitch) InStrikezone() (int, bool, error)  { return payload.Int(p.raw, "In Strikezone") }
func (p Pitch) DB() (int, bool, error)            { return payload.Int(p.raw, "DB") }
func (p Pitch) SwingType() (string, bool)         { return payload.Text(p.raw, "Type of Swing") }

// StrikezonePosition is the horizontal crossing point relative to the zone.
func (p Pitch) StrikezonePosition() (float64, bool, error) {
	return payload.Float(p.raw, "Ball Position - Strikezone")
}

func (p Pitch) BatContactPos() (Vec2, bool, error) {
	return vec2(p.raw, "Bat Contact Pos")
}

// SwingCode resolves the swing label through the swing-type table.
func (p Pitch) SwingCode() (int, bool, error) {
	raw, ok := p.SwingType()
	if !ok {
		return 0, false, nil
	}
	code, err := lookup.SwingType.Resolve(raw)
	return code, true, err
}

func (p Pitch) Contact() (Contact, bool) {
	obj, ok := payload.Object(p.raw, "Contact")
	if !ok {
		return Contact{}, false
	}
	return Contact{raw: obj}, true
}

// Contact is nested under Pitch when the bat met the ball.
type Contact struct {
	raw map[string]any
}

func (c Contact) Type() (string, bool)                { return payload.Text(c.raw, "Type of Contact") }
func (c Contact) ChargePowerUp() (float64, bool, error) { return payload.Float(c.raw, "Charge Power Up") }
func (c Contact) ChargePowerDown() (float64, bool, error) {
	return payload.Float(c.raw, "Charge Power Down")
}
func (c Contact) FiveStarSwing() (int, bool, error) { return payload.Int(c.raw, "Star Swing Five-Star") }
func (c Contact) InputPushPull() (string, bool)     { return payload.Text(c.raw, "Input Direction - Push/Pull") }
func (c Contact) InputStick() (string, bool)        { return payload.Text(c.raw, "Input Direction - Stick") }
func (c Contact) Frame() (int, bool, error)         { return payload.Int(c.raw, "Frame of Swing Upon Contact") }
func (c Contact) BallPower() (int, bool, error)     { return payload.Int(c.raw, "Ball Power") }
func (c Contact) VertAngle() (int, bool, error)     { return payload.Int(c.raw, "Vert Angle") }
func (c Contact) HorizAngle() (int, bool, error)    { return payload.Int(c.raw, "Horiz Angle") }
func (c Contact) Absolute() (float64, bool, error)  { return payload.Float(c.raw, "Contact Absolute") }
func (c Contact) Quality() (float64, bool, error)   { return payload.Float(c.raw, "Contact Quality") }
func (c Contact) MaxHeight() (float64, bool, error) { return payload.Float(c.raw, "Ball Max Height") }
func (c Contact) HangTime() (int, bool, error)      { return payload.Int(c.raw, "Ball Hang Time") }
func (c Contact) PrimaryResult() (string, bool)     { return payload.Text(c.raw, "Contact Result - Primary") }
func (c Contact) SecondaryResult() (string, bool)   { return payload.Text(c.raw, "Contact Result - Secondary") }

func (c Contact) Velocity() (Vec3, bool, error) {
	return vec3(c.raw, "Ball Velocity")
}

func (c Contact) Position() (Vec2, bool, error) {
	return vec2(c.raw, "Ball Contact Pos")
}

func (c Contact) Landing() (Vec3, bool, error) {
	return vec3(c.raw, "Ball Landing Position")
}

func (c Contact) RNG() (RNG, bool, error) {
	if !payload.Has(c.raw, "RNG1") {
		return RNG{}, false, nil
	}
	var out RNG
	for _, part := range []struct {
		key string
		dst *int
	}{{"RNG1", &out.R1}, {"RNG2", &out.R2}, {"RNG3", &out.R3}} {
		v, ok, err := payload.Int(c.raw, part.key)
		if err != nil {
			return RNG{}, true, err
		}
		if !ok {
			return RNG{}, false, nil
		}
		*part.dst = v
	}
	return out, true, nil
}

func (c Contact) FirstFielder() (Fielder, bool) {
	obj, ok := payload.Object(c.raw, "First Fielder")
	if !ok {
		return Fielder{}, false
	}
	return Fielder{raw: obj}, true
}

// Fielder is the first fielder to touch a ball in play.
type Fielder struct {
	raw map[string]any
}

func (f Fielder) Position() (string, bool)       { return payload.Text(f.raw, "Fielder Position") }
func (f Fielder) Character() (string, bool)      { return payload.Text(f.raw, "Fielder Character") }
func (f Fielder) Action() (string, bool)         { return payload.Text(f.raw, "Fielder Action") }
func (f Fielder) Jump() (int, bool, error)       { return payload.Int(f.raw, "Fielder Jump") }
func (f Fielder) Swap() (int, bool, error)       { return payload.Int(f.raw, "Fielder Swap") }
func (f Fielder) ManualSelected() (string, bool) { return payload.Text(f.raw, "Fielder Manual Selected") }
func (f Fielder) Bobble() (string, bool)         { return payload.Text(f.raw, "Fielder Bobble") }

func (f Fielder) Location() (Vec3, bool, error) {
	return vec3(f.raw, "Fielder Position")
}

// Runner is a base runner's journey through one play.
type Runner struct {
	raw map[string]any
}

func (r Runner) RosterSlot() (int, bool, error)  { return payload.Int(r.raw, "Runner Roster Loc") }
func (r Runner) CharID() (string, bool)          { return payload.Text(r.raw, "Runner Char Id") }
func (r Runner) InitialBase() (int, bool, error) { return payload.Int(r.raw, "Runner Initial Base") }
func (r Runner) ResultBase() (int, bool, error)  { return payload.Int(r.raw, "Runner Result Base") }
func (r Runner) OutType() (string, bool)         { return payload.Text(r.raw, "Out Type") }
func (r Runner) OutLocation() (int, bool, error) { return payload.Int(r.raw, "Out Location") }
func (r Runner) StealType() (string, bool)       { return payload.Text(r.raw, "Steal") }

// IsStealing is true unless the steal field is absent or one of the "None" sentinels.
func (r Runner) IsStealing() bool {
	raw, ok := r.StealType()
	if !ok {
		return false
	}
	name, err := lookup.StealType.Translate(raw)
	if err != nil {
		return raw != "None"
	}
	return name != "None"
}
