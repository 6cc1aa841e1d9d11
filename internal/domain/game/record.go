// Package game is the typed read surface over one decoded stat file.
//
// A Record resolves the file's schema profile once and routes every team and
// roster-slot accessor through it, so callers always address teams logically
// (0 or 1) regardless of which format version produced the file.
package game

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/rio-stats/internal/domain/character"
	"github.com/riskibarqy/rio-stats/internal/domain/lookup"
	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
	"github.com/riskibarqy/rio-stats/internal/domain/schema"
	"github.com/riskibarqy/rio-stats/internal/platform/payload"
)

const (
	keyGameID    = "GameID"
	keyStats     = "Character Game Stats"
	keyEvents    = "Events"
	keyVersion   = "Version"
	keyOffensive = "Offensive Stats"
	keyDefensive = "Defensive Stats"
)

// AllSlots aggregates over the nine roster slots.
const AllSlots = -1

// RosterSize is the number of slots per team.
const RosterSize = 9

type Record struct {
	raw     map[string]any
	stats   map[string]any
	events  []any
	profile schema.Profile
}

type options struct {
	registry *schema.Registry
}

type Option func(*options)

// WithRegistry resolves versions against a custom table.
func WithRegistry(registry *schema.Registry) Option {
	return func(o *options) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// Parse decodes a stat file and builds a Record from it.
func Parse(data []byte, opts ...Option) (*Record, error) {
	var raw map[string]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, rioerr.NewParseError("record", abbreviate(data), err)
	}
	return New(raw, opts...)
}

func New(raw map[string]any, opts ...Option) (*Record, error) {
	cfg := options{registry: schema.DefaultRegistry()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if raw == nil {
		return nil, rioerr.MissingKey(keyGameID)
	}
	if !payload.Has(raw, keyGameID) {
		return nil, rioerr.MissingKey(keyGameID)
	}
	stats, err := payload.RequireObject(raw, keyStats, "")
	if err != nil {
		return nil, err
	}
	if !payload.Has(raw, keyEvents) {
		return nil, rioerr.MissingKey(keyEvents)
	}
	events, ok := payload.Array(raw, keyEvents)
	if !ok {
		return nil, rioerr.NewParseError(keyEvents, raw[keyEvents], nil)
	}

	version, _ := payload.Text(raw, keyVersion)
	return &Record{
		raw:     raw,
		stats:   stats,
		events:  events,
		profile: cfg.registry.Resolve(version),
	}, nil
}

func (r *Record) Profile() schema.Profile {
	return r.profile
}

func (r *Record) Version() string {
	return r.profile.Version
}

// GameID decodes the hex id, ignoring grouping separators.
func (r *Record) GameID() (uint64, error) {
	raw, err := payload.RequireText(r.raw, keyGameID, "")
	if err != nil {
		return 0, err
	}
	return payload.ParseHexID(keyGameID, raw)
}

func (r *Record) StadiumID() (int, error) {
	return payload.RequireInt(r.raw, "StadiumID", "")
}

func (r *Record) StadiumName() (string, error) {
	id, err := r.StadiumID()
	if err != nil {
		return "", err
	}
	name, ok := lookup.Stadium.Name(id)
	if !ok {
		return "", rioerr.NewParseError("StadiumID", id, nil)
	}
	return name, nil
}

// StartDate is the unix timestamp the game started at.
func (r *Record) StartDate() (int, error) {
	return payload.RequireInt(r.raw, "Date - Start", "")
}

func (r *Record) EndDate() (int, error) {
	return payload.RequireInt(r.raw, "Date - End", "")
}

func (r *Record) StartTime() (time.Time, error) {
	ts, err := r.StartDate()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(ts), 0).UTC(), nil
}

// GameMode returns the tag set the game was played under, when the file records one.
func (r *Record) GameMode() (int, bool, error) {
	return payload.Int(r.raw, "TagSetID")
}

func (r *Record) InningsSelected() (int, error) {
	return payload.RequireInt(r.raw, "Innings Selected", "")
}

func (r *Record) InningsPlayed() (int, error) {
	return payload.RequireInt(r.raw, "Innings Played", "")
}

// Quitter is the quitting player's team marker, empty when nobody quit.
func (r *Record) Quitter() (string, error) {
	return payload.RequireText(r.raw, "Quitter Team", "")
}

func (r *Record) WasQuit() (bool, error) {
	quitter, err := r.Quitter()
	if err != nil {
		return false, err
	}
	return quitter != "", nil
}

// WasMercy holds when fewer innings were played than selected and nobody quit.
func (r *Record) WasMercy() (bool, error) {
	selected, err := r.InningsSelected()
	if err != nil {
		return false, err
	}
	played, err := r.InningsPlayed()
	if err != nil {
		return false, err
	}
	quit, err := r.WasQuit()
	if err != nil {
		return false, err
	}
	return selected-played >= 1 && !quit, nil
}

func (r *Record) AveragePing() (int, error) {
	return payload.RequireInt(r.raw, "Average Ping", "")
}

func (r *Record) LagSpikes() (int, error) {
	return payload.RequireInt(r.raw, "Lag Spikes", "")
}

// IsSuperstarGame reports whether any roster entry on either team is starred.
func (r *Record) IsSuperstarGame() (bool, error) {
	for _, team := range []schema.Team{schema.Team0, schema.Team1} {
		starred, err := r.IsStarred(team, AllSlots)
		if err != nil {
			return false, err
		}
		if starred {
			return true, nil
		}
	}
	return false, nil
}

func (r *Record) Player(team schema.Team) (string, error) {
	side, err := r.profile.Side(team)
	if err != nil {
		return "", err
	}
	return r.playerAt(side)
}

func (r *Record) playerAt(side schema.Side) (string, error) {
	return payload.RequireText(r.raw, side.String()+" Player", "")
}

func (r *Record) Score(team schema.Team) (int, error) {
	side, err := r.profile.Side(team)
	if err != nil {
		return 0, err
	}
	return payload.RequireInt(r.raw, side.String()+" Score", "")
}

// slot returns the per-slot sub-record and its path for error messages.
func (r *Record) slot(team schema.Team, slot int) (map[string]any, string, error) {
	key, err := r.profile.RosterKey(team, slot)
	if err != nil {
		return nil, "", err
	}
	return r.slotByKey(key)
}

func (r *Record) slotAt(side schema.Side, slot int) (map[string]any, string, error) {
	if slot < 0 || slot >= RosterSize {
		return nil, "", rioerr.NewParseError("roster slot", slot, nil)
	}
	return r.slotByKey(r.profile.SideRosterKey(side, slot))
}

func (r *Record) slotByKey(key string) (map[string]any, string, error) {
	obj, err := payload.RequireObject(r.stats, key, keyStats)
	if err != nil {
		return nil, "", err
	}
	return obj, keyStats + "/" + key, nil
}

func validateSlot(slot int, allowAll bool) error {
	if allowAll && slot == AllSlots {
		return nil
	}
	if slot < 0 || slot >= RosterSize {
		if allowAll {
			return rioerr.InvalidArgument("roster slot %d must be in -1..8", slot)
		}
		return rioerr.InvalidArgument("roster slot %d must be in 0..8", slot)
	}
	return nil
}

func validate(team schema.Team, slot int, allowAll bool) error {
	if err := team.Validate(); err != nil {
		return err
	}
	return validateSlot(slot, allowAll)
}

func (r *Record) Character(team schema.Team, slot int) (string, error) {
	if err := validate(team, slot, false); err != nil {
		return "", err
	}
	obj, path, err := r.slot(team, slot)
	if err != nil {
		return "", err
	}
	return payload.RequireText(obj, "CharID", path)
}

func (r *Record) characterAt(side schema.Side, slot int) (string, error) {
	obj, path, err := r.slotAt(side, slot)
	if err != nil {
		return "", err
	}
	return payload.RequireText(obj, "CharID", path)
}

// CharacterID resolves the slot's character against the enumeration.
func (r *Record) CharacterID(team schema.Team, slot int) (character.ID, error) {
	name, err := r.Character(team, slot)
	if err != nil {
		return 0, err
	}
	return character.Lookup(name)
}

// Characters lists the nine characters of a team in slot order.
func (r *Record) Characters(team schema.Team) ([]string, error) {
	if err := team.Validate(); err != nil {
		return nil, err
	}
	out := make([]string, 0, RosterSize)
	for slot := range RosterSize {
		name, err := r.Character(team, slot)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

// IsStarred reports a slot's superstar flag; AllSlots reports whether any slot is starred.
func (r *Record) IsStarred(team schema.Team, slot int) (bool, error) {
	if err := validate(team, slot, true); err != nil {
		return false, err
	}
	if slot == AllSlots {
		for s := range RosterSize {
			starred, err := r.IsStarred(team, s)
			if err != nil {
				return false, err
			}
			if starred {
				return true, nil
			}
		}
		return false, nil
	}
	obj, path, err := r.slot(team, slot)
	if err != nil {
		return false, err
	}
	flag, err := payload.RequireInt(obj, "Superstar", path)
	if err != nil {
		return false, err
	}
	return flag == 1, nil
}

func (r *Record) isStarredAt(side schema.Side, slot int) (bool, error) {
	obj, path, err := r.slotAt(side, slot)
	if err != nil {
		return false, err
	}
	flag, err := payload.RequireInt(obj, "Superstar", path)
	if err != nil {
		return false, err
	}
	return flag == 1, nil
}

// CaptainSlot returns the slot flagged as captain; ok is false when none is.
func (r *Record) CaptainSlot(team schema.Team) (int, bool, error) {
	if err := team.Validate(); err != nil {
		return 0, false, err
	}
	for slot := range RosterSize {
		obj, path, err := r.slot(team, slot)
		if err != nil {
			return 0, false, err
		}
		flag, err := payload.RequireInt(obj, "Captain", path)
		if err != nil {
			return 0, false, err
		}
		if flag == 1 {
			return slot, true, nil
		}
	}
	return 0, false, nil
}

func (r *Record) Captain(team schema.Team) (string, bool, error) {
	slot, ok, err := r.CaptainSlot(team)
	if err != nil || !ok {
		return "", false, err
	}
	name, err := r.Character(team, slot)
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (r *Record) FieldingHand(team schema.Team, slot int) (string, error) {
	return r.hand(team, slot, "Fielding Hand")
}

func (r *Record) BattingHand(team schema.Team, slot int) (string, error) {
	return r.hand(team, slot, "Batting Hand")
}

func (r *Record) battingHandAt(side schema.Side, slot int) (string, error) {
	obj, path, err := r.slotAt(side, slot)
	if err != nil {
		return "", err
	}
	return handName(obj, "Batting Hand", path)
}

func (r *Record) hand(team schema.Team, slot int, key string) (string, error) {
	if err := validate(team, slot, false); err != nil {
		return "", err
	}
	obj, path, err := r.slot(team, slot)
	if err != nil {
		return "", err
	}
	return handName(obj, key, path)
}

// handName accepts the numeric code, the display name, or the boolean form older files use.
func handName(obj map[string]any, key, path string) (string, error) {
	if !payload.Has(obj, key) {
		return "", rioerr.MissingKey(path + "/" + key)
	}
	switch v := obj[key].(type) {
	case bool:
		if v {
			return "Left", nil
		}
		return "Right", nil
	default:
		text, ok := payload.AsText(v)
		if !ok {
			return "", rioerr.NewParseError(key, v, nil)
		}
		return lookup.Hand.Translate(text)
	}
}

func (r *Record) WasPitcher(team schema.Team, slot int) (bool, error) {
	if err := validate(team, slot, false); err != nil {
		return false, err
	}
	flag, err := r.single(keyDefensive, "Was Pitcher", team, slot)
	if err != nil {
		return false, err
	}
	return flag == 1, nil
}

// PitchesPerPosition maps position labels to pitches spent there.
func (r *Record) PitchesPerPosition(team schema.Team, slot int) (map[string]int, error) {
	return r.perPosition(team, slot, "Pitches Per Position")
}

func (r *Record) OutsPerPosition(team schema.Team, slot int) (map[string]int, error) {
	return r.perPosition(team, slot, "Outs Per Position")
}

func (r *Record) perPosition(team schema.Team, slot int, key string) (map[string]int, error) {
	if err := validate(team, slot, false); err != nil {
		return nil, err
	}
	obj, path, err := r.slot(team, slot)
	if err != nil {
		return nil, err
	}
	defensive, err := payload.RequireObject(obj, keyDefensive, path)
	if err != nil {
		return nil, err
	}
	path = path + "/" + keyDefensive
	if !payload.Has(defensive, key) {
		return nil, rioerr.MissingKey(path + "/" + key)
	}

	// Files wrap the mapping in a one-element list.
	var table map[string]any
	switch v := defensive[key].(type) {
	case map[string]any:
		table = v
	case []any:
		if len(v) == 0 {
			return map[string]int{}, nil
		}
		m, ok := v[0].(map[string]any)
		if !ok {
			return nil, rioerr.NewParseError(key, v[0], nil)
		}
		table = m
	default:
		return nil, rioerr.NewParseError(key, v, nil)
	}

	out := make(map[string]int, len(table))
	for position, raw := range table {
		n, err := payload.AsInt(key+"/"+position, raw)
		if err != nil {
			return nil, err
		}
		out[position] = n
	}
	return out, nil
}

func abbreviate(data []byte) string {
	const limit = 64
	if len(data) <= limit {
		return string(data)
	}
	return fmt.Sprintf("%s...", data[:limit])
}
