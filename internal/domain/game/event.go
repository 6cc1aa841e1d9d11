package game

import (
	"fmt"

	"github.com/riskibarqy/rio-stats/internal/domain/lookup"
	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
	"github.com/riskibarqy/rio-stats/internal/domain/schema"
	"github.com/riskibarqy/rio-stats/internal/platform/payload"
)

// AtBatEvent is one play-by-play entry. Fields are read on demand, so a
// malformed entry only fails the accessors that touch it.
type AtBatEvent struct {
	rec   *Record
	index int
	raw   map[string]any
	err   error
}

func (r *Record) EventCount() int {
	return len(r.events)
}

// Event returns the n-th event; negative n counts from the end.
func (r *Record) Event(n int) (AtBatEvent, error) {
	count := len(r.events)
	idx := n
	if n < 0 {
		idx = count + n
	}
	if idx < 0 || idx >= count {
		return AtBatEvent{}, rioerr.InvalidArgument("event %d does not exist in a game with %d events", n, count)
	}
	return r.eventAt(idx), nil
}

func (r *Record) Events() []AtBatEvent {
	out := make([]AtBatEvent, len(r.events))
	for i := range r.events {
		out[i] = r.eventAt(i)
	}
	return out
}

func (r *Record) eventAt(idx int) AtBatEvent {
	ev := AtBatEvent{rec: r, index: idx}
	obj, ok := r.events[idx].(map[string]any)
	if !ok {
		ev.err = rioerr.NewParseError(ev.path(), r.events[idx], nil)
		return ev
	}
	ev.raw = obj
	return ev
}

func (e AtBatEvent) Index() int {
	return e.index
}

// Raw exposes the undecoded entry.
func (e AtBatEvent) Raw() map[string]any {
	return e.raw
}

func (e AtBatEvent) path() string {
	return fmt.Sprintf("%s/%d", keyEvents, e.index)
}

func (e AtBatEvent) intField(key string) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	return payload.RequireInt(e.raw, key, e.path())
}

func (e AtBatEvent) EventNum() (int, error)        { return e.intField("Event Num") }
func (e AtBatEvent) Inning() (int, error)          { return e.intField("Inning") }
func (e AtBatEvent) HalfInning() (int, error)      { return e.intField("Half Inning") }
func (e AtBatEvent) Balls() (int, error)           { return e.intField("Balls") }
func (e AtBatEvent) Strikes() (int, error)         { return e.intField("Strikes") }
func (e AtBatEvent) Outs() (int, error)            { return e.intField("Outs") }
func (e AtBatEvent) StarChance() (int, error)      { return e.intField("Star Chance") }
func (e AtBatEvent) PitcherStamina() (int, error)  { return e.intField("Pitcher Stamina") }
func (e AtBatEvent) ChemLinksOnBase() (int, error) { return e.intField("Chemistry Links on Base") }
func (e AtBatEvent) PitcherSlot() (int, error)     { return e.intField("Pitcher Roster Loc") }
func (e AtBatEvent) BatterSlot() (int, error)      { return e.intField("Batter Roster Loc") }
func (e AtBatEvent) CatcherSlot() (int, error)     { return e.intField("Catcher Roster Loc") }
func (e AtBatEvent) RBI() (int, error)             { return e.intField("RBI") }
func (e AtBatEvent) OutsDuringPlay() (int, error)  { return e.intField("Num Outs During Play") }

func validateSide(side schema.Side) error {
	if side != schema.SideAway && side != schema.SideHome {
		return rioerr.InvalidArgument("side %d must be 0 (away) or 1 (home)", int(side))
	}
	return nil
}

// Score is the pre-play score of a literal side; event scores are never version-swapped.
func (e AtBatEvent) Score(side schema.Side) (int, error) {
	if err := validateSide(side); err != nil {
		return 0, err
	}
	return e.intField(side.String() + " Score")
}

func (e AtBatEvent) TeamStars(side schema.Side) (int, error) {
	if err := validateSide(side); err != nil {
		return 0, err
	}
	return e.intField(side.String() + " Stars")
}

// BattingSide follows the half inning: the away side bats in the top.
func (e AtBatEvent) BattingSide() (schema.Side, error) {
	half, err := e.HalfInning()
	if err != nil {
		return schema.SideAway, err
	}
	return schema.SideFromHalf(half)
}

func (e AtBatEvent) PitchingSide() (schema.Side, error) {
	side, err := e.BattingSide()
	if err != nil {
		return schema.SideAway, err
	}
	return side.Other(), nil
}

// BattingTeam is the logical team at bat.
func (e AtBatEvent) BattingTeam() (schema.Team, error) {
	side, err := e.BattingSide()
	if err != nil {
		return schema.Team0, err
	}
	return e.rec.profile.Team(side), nil
}

func (e AtBatEvent) PitchingTeam() (schema.Team, error) {
	team, err := e.BattingTeam()
	if err != nil {
		return schema.Team0, err
	}
	return team.Other(), nil
}

func (e AtBatEvent) Pitcher() (string, error) {
	side, err := e.PitchingSide()
	if err != nil {
		return "", err
	}
	slot, err := e.PitcherSlot()
	if err != nil {
		return "", err
	}
	return e.rec.characterAt(side, slot)
}

func (e AtBatEvent) Batter() (string, error) {
	side, err := e.BattingSide()
	if err != nil {
		return "", err
	}
	slot, err := e.BatterSlot()
	if err != nil {
		return "", err
	}
	return e.rec.characterAt(side, slot)
}

// Catcher belongs to the fielding side.
func (e AtBatEvent) Catcher() (string, error) {
	side, err := e.PitchingSide()
	if err != nil {
		return "", err
	}
	slot, err := e.CatcherSlot()
	if err != nil {
		return "", err
	}
	return e.rec.characterAt(side, slot)
}

// ResultOfAB is the raw at-bat outcome, a display name or a code.
func (e AtBatEvent) ResultOfAB() (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return payload.RequireText(e.raw, "Result of AB", e.path())
}

// FinalResult resolves the at-bat outcome to its final-result code.
func (e AtBatEvent) FinalResult() (int, error) {
	raw, err := e.ResultOfAB()
	if err != nil {
		return 0, err
	}
	return lookup.FinalResult.Resolve(raw)
}

func (e AtBatEvent) IsHit() (bool, error) {
	code, err := e.FinalResult()
	if err != nil {
		return false, err
	}
	return lookup.IsHit(code), nil
}

func (e AtBatEvent) IsOut() (bool, error) {
	code, err := e.FinalResult()
	if err != nil {
		return false, err
	}
	return lookup.IsOut(code), nil
}

func validateBase(base int, allowAny bool) error {
	if base >= 1 && base <= 3 {
		return nil
	}
	if allowAny && base == -1 {
		return nil
	}
	return rioerr.InvalidArgument("base %d must be 1..3 or -1", base)
}

// Runner returns the runner that started the play on base 1..3.
func (e AtBatEvent) Runner(base int) (Runner, bool, error) {
	if err := validateBase(base, false); err != nil {
		return Runner{}, false, err
	}
	if e.err != nil {
		return Runner{}, false, e.err
	}
	obj, ok := payload.Object(e.raw, fmt.Sprintf("Runner %dB", base))
	if !ok {
		return Runner{}, false, nil
	}
	return Runner{raw: obj}, true, nil
}

func (e AtBatEvent) BatterRunner() (Runner, bool) {
	if e.err != nil {
		return Runner{}, false
	}
	obj, ok := payload.Object(e.raw, "Runner Batter")
	if !ok {
		return Runner{}, false
	}
	return Runner{raw: obj}, true
}

// RunnerOnBase reports occupancy of a base; -1 checks all three.
func (e AtBatEvent) RunnerOnBase(base int) (bool, error) {
	if err := validateBase(base, true); err != nil {
		return false, err
	}
	for _, b := range basesFor(base) {
		_, ok, err := e.Runner(b)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// RunnerCount is the number of occupied bases before the play.
func (e AtBatEvent) RunnerCount() (int, error) {
	count := 0
	for _, b := range basesFor(-1) {
		_, ok, err := e.Runner(b)
		if err != nil {
			return 0, err
		}
		if ok {
			count++
		}
	}
	return count, nil
}

// Steal reports a steal attempt from a base; -1 checks all three.
func (e AtBatEvent) Steal(base int) (bool, error) {
	if err := validateBase(base, true); err != nil {
		return false, err
	}
	for _, b := range basesFor(base) {
		runner, ok, err := e.Runner(b)
		if err != nil {
			return false, err
		}
		if ok && runner.IsStealing() {
			return true, nil
		}
	}
	return false, nil
}

func basesFor(base int) []int {
	if base == -1 {
		return []int{1, 2, 3}
	}
	return []int{base}
}

func (e AtBatEvent) Pitch() (Pitch, bool) {
	if e.err != nil {
		return Pitch{}, false
	}
	obj, ok := payload.Object(e.raw, "Pitch")
	if !ok {
		return Pitch{}, false
	}
	return Pitch{raw: obj}, true
}

func (e AtBatEvent) Contact() (Contact, bool) {
	pitch, ok := e.Pitch()
	if !ok {
		return Contact{}, false
	}
	return pitch.Contact()
}

func (e AtBatEvent) FirstFielder() (Fielder, bool) {
	contact, ok := e.Contact()
	if !ok {
		return Fielder{}, false
	}
	return contact.FirstFielder()
}

func (e AtBatEvent) PitchType() (string, bool) {
	pitch, ok := e.Pitch()
	if !ok {
		return "", false
	}
	return pitch.Type()
}

func (e AtBatEvent) SwingType() (string, bool) {
	pitch, ok := e.Pitch()
	if !ok {
		return "", false
	}
	return pitch.SwingType()
}

func (e AtBatEvent) TypeOfContact() (string, bool) {
	contact, ok := e.Contact()
	if !ok {
		return "", false
	}
	return contact.Type()
}

func (e AtBatEvent) ContactQuality() (float64, bool, error) {
	contact, ok := e.Contact()
	if !ok {
		return 0, false, nil
	}
	return contact.Quality()
}

func (e AtBatEvent) BallVelocity() (Vec3, bool, error) {
	contact, ok := e.Contact()
	if !ok {
		return Vec3{}, false, nil
	}
	return contact.Velocity()
}

func (e AtBatEvent) BallLanding() (Vec3, bool, error) {
	contact, ok := e.Contact()
	if !ok {
		return Vec3{}, false, nil
	}
	return contact.Landing()
}

func (e AtBatEvent) BallHangTime() (int, bool, error) {
	contact, ok := e.Contact()
	if !ok {
		return 0, false, nil
	}
	return contact.HangTime()
}

func (e AtBatEvent) HorizAngle() (int, bool, error) {
	contact, ok := e.Contact()
	if !ok {
		return 0, false, nil
	}
	return contact.HorizAngle()
}

func (e AtBatEvent) RNG() (RNG, bool, error) {
	contact, ok := e.Contact()
	if !ok {
		return RNG{}, false, nil
	}
	return contact.RNG()
}

func (e AtBatEvent) FirstFielderPosition() (string, bool) {
	fielder, ok := e.FirstFielder()
	if !ok {
		return "", false
	}
	return fielder.Position()
}
