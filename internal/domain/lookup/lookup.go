// Package lookup translates the game's numeric codes to display names and back.
package lookup

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/rio-stats/internal/domain/character"
	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
)

type Entry struct {
	Code int
	Name string
}

// Table is a bidirectional code/name table. Name lookups are case-insensitive
// and return the first code declared for a name.
type Table struct {
	name    string
	entries []Entry
	byCode  map[int]string
	byName  map[string]int
}

func NewTable(name string, entries ...Entry) *Table {
	t := &Table{
		name:    name,
		entries: entries,
		byCode:  make(map[int]string, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		t.byCode[e.Code] = e.Name
		key := strings.ToLower(e.Name)
		if _, exists := t.byName[key]; !exists {
			t.byName[key] = e.Code
		}
	}
	return t
}

func (t *Table) TableName() string {
	return t.name
}

func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Table) Name(code int) (string, bool) {
	name, ok := t.byCode[code]
	return name, ok
}

func (t *Table) Code(name string) (int, bool) {
	code, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// Resolve accepts either a code (digit text included) or a display name and
// returns the matching code.
func (t *Table) Resolve(term string) (int, error) {
	trimmed := strings.TrimSpace(term)
	if n, err := strconv.Atoi(trimmed); err == nil {
		if _, ok := t.byCode[n]; ok {
			return n, nil
		}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && f == float64(int(f)) {
		if _, ok := t.byCode[int(f)]; ok {
			return int(f), nil
		}
	}
	if code, ok := t.Code(trimmed); ok {
		return code, nil
	}
	return 0, rioerr.NewParseError(t.name, term, nil)
}

// Translate returns the display name for a code or name term.
func (t *Table) Translate(term string) (string, error) {
	code, err := t.Resolve(term)
	if err != nil {
		return "", err
	}
	return t.byCode[code], nil
}

var (
	Stadium = NewTable("stadium",
		Entry{0, "Mario Stadium"},
		Entry{1, "Bowser Castle"},
		Entry{2, "Wario Palace"},
		Entry{3, "Yoshi Park"},
		Entry{4, "Peach Garden"},
		Entry{5, "DK Jungle"},
		Entry{6, "Toy Field"},
	)

	ContactType = NewTable("contact type",
		Entry{255, "Miss"},
		Entry{0, "Sour - Left"},
		Entry{1, "Nice - Left"},
		Entry{2, "Perfect"},
		Entry{3, "Nice - Right"},
		Entry{4, "Sour - Right"},
	)

	Hand = NewTable("hand",
		Entry{0, "Left"},
		Entry{1, "Right"},
	)

	InputDirection = NewTable("input direction",
		Entry{0, "None"},
		Entry{1, "Left"},
		Entry{2, "Right"},
		Entry{4, "Down"},
		Entry{5, "Down and Left"},
		Entry{6, "Down and Right"},
		Entry{8, "Up"},
		Entry{9, "Up and Left"},
		Entry{10, "Up and Right"},
	)

	PitchType = NewTable("pitch type",
		Entry{0, "Curve"},
		Entry{1, "Charge"},
		Entry{2, "ChangeUp"},
	)

	ChargeType = NewTable("charge type",
		Entry{0, "N/A"},
		Entry{2, "Slider"},
		Entry{3, "Perfect"},
	)

	SwingType = NewTable("type of swing",
		Entry{0, "None"},
		Entry{1, "Slap"},
		Entry{2, "Charge"},
		Entry{3, "Star"},
		Entry{4, "Bunt"},
	)

	Position = NewTable("position",
		Entry{0, "P"},
		Entry{1, "C"},
		Entry{2, "1B"},
		Entry{3, "2B"},
		Entry{4, "3B"},
		Entry{5, "SS"},
		Entry{6, "LF"},
		Entry{7, "CF"},
		Entry{8, "RF"},
		Entry{255, "Inv"},
	)

	FielderAction = NewTable("fielder action",
		Entry{0, "None"},
		Entry{2, "Sliding"},
		Entry{3, "Walljump"},
	)

	FielderBobble = NewTable("fielder bobble",
		Entry{0, "None"},
		Entry{1, "Slide/stun lock"},
		Entry{2, "Fumble"},
		Entry{3, "Bobble"},
		Entry{4, "Fireball"},
		Entry{16, "Garlic knockout"},
		Entry{255, "None"},
	)

	StealType = NewTable("steal type",
		Entry{0, "None"},
		Entry{1, "Ready"},
		Entry{2, "Normal"},
		Entry{3, "Perfect"},
		Entry{55, "None"},
	)

	OutType = NewTable("out type",
		Entry{0, "None"},
		Entry{1, "Caught"},
		Entry{2, "Force"},
		Entry{3, "Tag"},
		Entry{4, "Force Back"},
		Entry{16, "Strike-out"},
	)

	PitchResult = NewTable("pitch result",
		Entry{0, "HBP"},
		Entry{1, "BB"},
		Entry{2, "Ball"},
		Entry{3, "Strike-looking"},
		Entry{4, "Strike-swing"},
		Entry{5, "Strike-bunting"},
		Entry{6, "Contact"},
		Entry{7, "Unknown"},
	)

	PrimaryContactResult = NewTable("primary contact result",
		Entry{0, "Out"},
		Entry{1, "Foul"},
		Entry{2, "Fair"},
		Entry{3, "Fielded"},
		Entry{4, "Unknown"},
	)

	SecondaryContactResult = NewTable("secondary contact result",
		Entry{0, "Out-caught"},
		Entry{1, "Out-force"},
		Entry{2, "Out-tag"},
		Entry{3, "foul"},
		Entry{7, "Single"},
		Entry{8, "Double"},
		Entry{9, "Triple"},
		Entry{10, "HR"},
		Entry{11, "Error - Input"},
		Entry{12, "Error - Chem"},
		Entry{13, "Bunt"},
		Entry{14, "SacFly"},
		Entry{15, "Ground Ball Double Play"},
		Entry{16, "Foul catch"},
	)

	FinalResult = NewTable("final result",
		Entry{ResultNone, "None"},
		Entry{ResultStrikeout, "Strikeout"},
		Entry{ResultWalk, "Walk (BB)"},
		Entry{ResultHBP, "Walk HBP"},
		Entry{ResultOut, "Out"},
		Entry{ResultCaught, "Caught (Anything Else)"},
		Entry{ResultCaughtLineDrive, "Caught (Line Drive)"},
		Entry{ResultSingle, "Single"},
		Entry{ResultDouble, "Double"},
		Entry{ResultTriple, "Triple"},
		Entry{ResultHomeRun, "HR"},
		Entry{ResultErrorInput, "Error Input"},
		Entry{ResultErrorChem, "Error Chem"},
		Entry{ResultBunt, "Bunt"},
		Entry{ResultSacFly, "Sac Fly"},
		Entry{ResultDoublePlay, "Ground Ball Double Play"},
		Entry{ResultFoulCatch, "Foul Catch"},
	)

	ManualSelect = NewTable("manual select",
		Entry{0, "No Selected Char"},
		Entry{1, "Selected Other Char"},
		Entry{2, "Selected This Char"},
	)

	CharacterName = characterTable()
)

func characterTable() *Table {
	entries := make([]Entry, 0, character.Count)
	for _, id := range character.All() {
		entries = append(entries, Entry{Code: int(id), Name: id.Name()})
	}
	return NewTable("character", entries...)
}

// Final result codes.
const (
	ResultNone            = 0
	ResultStrikeout       = 1
	ResultWalk            = 2
	ResultHBP             = 3
	ResultOut             = 4
	ResultCaught          = 5
	ResultCaughtLineDrive = 6
	ResultSingle          = 7
	ResultDouble          = 8
	ResultTriple          = 9
	ResultHomeRun         = 10
	ResultErrorInput      = 11
	ResultErrorChem       = 12
	ResultBunt            = 13
	ResultSacFly          = 14
	ResultDoublePlay      = 15
	ResultFoulCatch       = 16
)

func IsHit(code int) bool {
	switch code {
	case ResultSingle, ResultDouble, ResultTriple, ResultHomeRun:
		return true
	}
	return false
}

func IsOut(code int) bool {
	switch code {
	case ResultCaught, ResultCaughtLineDrive, ResultSacFly, ResultDoublePlay, ResultFoulCatch:
		return true
	}
	return false
}

// Tables lists every table by name for the CLI and HTTP lookup surfaces.
func Tables() map[string]*Table {
	all := []*Table{
		Stadium, ContactType, Hand, InputDirection, PitchType, ChargeType, SwingType,
		Position, FielderAction, FielderBobble, StealType, OutType, PitchResult,
		PrimaryContactResult, SecondaryContactResult, FinalResult, ManualSelect, CharacterName,
	}
	out := make(map[string]*Table, len(all))
	for _, t := range all {
		out[t.name] = t
	}
	return out
}
