package game

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
	"github.com/riskibarqy/rio-stats/internal/domain/schema"
	"github.com/riskibarqy/rio-stats/internal/platform/payload"
)

// HudEvent is one live HUD snapshot. Its event number carries an 'a' suffix
// before the result is known and 'b' after.
type HudEvent struct {
	raw      map[string]any
	eventNum string
}

// RosterEntry is a HUD roster slot.
type RosterEntry struct {
	Captain bool   `json:"captain"`
	CharID  string `json:"char_id"`
}

func ParseHud(data []byte) (*HudEvent, error) {
	var raw map[string]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, rioerr.NewParseError("hud", abbreviate(data), err)
	}
	return NewHud(raw)
}

func NewHud(raw map[string]any) (*HudEvent, error) {
	num, err := payload.RequireText(raw, "Event Num", "")
	if err != nil {
		return nil, err
	}
	if len(num) < 2 {
		return nil, rioerr.NewParseError("Event Num", num, nil)
	}
	return &HudEvent{raw: raw, eventNum: num}, nil
}

func (h *HudEvent) EventNum() string {
	return h.eventNum
}

// EventInteger drops the a/b suffix.
func (h *HudEvent) EventInteger() (int, error) {
	return payload.ParseInt("Event Num", h.eventNum[:len(h.eventNum)-1])
}

// IsAfterResult reports whether the snapshot was taken after the play resolved.
func (h *HudEvent) IsAfterResult() bool {
	return strings.HasSuffix(h.eventNum, "b")
}

func (h *HudEvent) intField(key string) (int, error) {
	return payload.RequireInt(h.raw, key, "")
}

func (h *HudEvent) Inning() (int, error)          { return h.intField("Inning") }
func (h *HudEvent) HalfInning() (int, error)      { return h.intField("Half Inning") }
func (h *HudEvent) Balls() (int, error)           { return h.intField("Balls") }
func (h *HudEvent) Strikes() (int, error)         { return h.intField("Strikes") }
func (h *HudEvent) Outs() (int, error)            { return h.intField("Outs") }
func (h *HudEvent) StarChance() (int, error)      { return h.intField("Star Chance") }
func (h *HudEvent) PitcherStamina() (int, error)  { return h.intField("Pitcher Stamina") }
func (h *HudEvent) ChemOnBase() (int, error)      { return h.intField("Chemistry Links on Base") }
func (h *HudEvent) OutsDuringPlay() (int, error)  { return h.intField("Num Outs During Play") }
func (h *HudEvent) PitcherSlot() (int, error)     { return h.intField("Pitcher Roster Loc") }
func (h *HudEvent) BatterSlot() (int, error)      { return h.intField("Batter Roster Loc") }
func (h *HudEvent) RunnerOnFirst() bool           { return payload.Has(h.raw, "Runner 1B") }
func (h *HudEvent) RunnerOnSecond() bool          { return payload.Has(h.raw, "Runner 2B") }
func (h *HudEvent) RunnerOnThird() bool           { return payload.Has(h.raw, "Runner 3B") }

// InningFloat places the half inning on a continuous axis: bottom of the 3rd is 3.5.
func (h *HudEvent) InningFloat() (float64, error) {
	inning, err := h.Inning()
	if err != nil {
		return 0, err
	}
	half, err := h.HalfInning()
	if err != nil {
		return 0, err
	}
	return float64(inning) + 0.5*float64(half), nil
}

// HUD files always use literal away/home keys.
func (h *HudEvent) Player(side schema.Side) (string, error) {
	if err := validateSide(side); err != nil {
		return "", err
	}
	return payload.RequireText(h.raw, side.String()+" Player", "")
}

func (h *HudEvent) Score(side schema.Side) (int, error) {
	if err := validateSide(side); err != nil {
		return 0, err
	}
	return h.intField(side.String() + " Score")
}

func (h *HudEvent) TeamStars(side schema.Side) (int, error) {
	if err := validateSide(side); err != nil {
		return 0, err
	}
	return h.intField(side.String() + " Stars")
}

func (h *HudEvent) Roster(side schema.Side) ([RosterSize]RosterEntry, error) {
	var out [RosterSize]RosterEntry
	if err := validateSide(side); err != nil {
		return out, err
	}
	for slot := range RosterSize {
		key := fmt.Sprintf("%s Roster %d", side, slot)
		obj, err := payload.RequireObject(h.raw, key, "")
		if err != nil {
			return out, err
		}
		captain, err := payload.RequireInt(obj, "Captain", key)
		if err != nil {
			return out, err
		}
		charID, err := payload.RequireText(obj, "CharID", key)
		if err != nil {
			return out, err
		}
		out[slot] = RosterEntry{Captain: captain == 1, CharID: charID}
	}
	return out, nil
}

// InningEnd holds when the play records the third out.
func (h *HudEvent) InningEnd() (bool, error) {
	outs, err := h.Outs()
	if err != nil {
		return false, err
	}
	during, err := h.OutsDuringPlay()
	if err != nil {
		return false, err
	}
	return outs+during == 3, nil
}

// EventResult is the at-bat result once known, "In Play" before that.
func (h *HudEvent) EventResult() (string, error) {
	if !h.IsAfterResult() {
		return "In Play", nil
	}
	return payload.RequireText(h.raw, "Result of AB", "")
}

// CaptainSlot fails with ErrMissingKey when no slot is flagged captain.
func (h *HudEvent) CaptainSlot(side schema.Side) (int, error) {
	roster, err := h.Roster(side)
	if err != nil {
		return 0, err
	}
	for slot, entry := range roster {
		if entry.Captain {
			return slot, nil
		}
	}
	return 0, rioerr.MissingKey(fmt.Sprintf("%s Roster captain", side))
}
