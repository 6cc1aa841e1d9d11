// Package character is the closed enumeration of playable characters.
package character

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
)

// ID is the in-game character id, 0..53.
type ID int

type Class string

const (
	ClassBalance   Class = "Balance"
	ClassTechnique Class = "Technique"
	ClassSpeed     Class = "Speed"
	ClassPower     Class = "Power"
)

// Classes in the order the team-name heuristic compares them.
var Classes = []Class{ClassBalance, ClassTechnique, ClassSpeed, ClassPower}

type info struct {
	name       string
	class      Class
	simplified string
}

var roster = [...]info{
	{"Mario", ClassBalance, "Mario"},
	{"Luigi", ClassBalance, "Luigi"},
	{"DK", ClassPower, "DK"},
	{"Diddy", ClassSpeed, "Diddy"},
	{"Peach", ClassTechnique, "Peach"},
	{"Daisy", ClassBalance, "Daisy"},
	{"Yoshi", ClassSpeed, "Yoshi"},
	{"Baby Mario", ClassSpeed, "Baby Mario"},
	{"Baby Luigi", ClassSpeed, "Baby Luigi"},
	{"Bowser", ClassPower, "Bowser"},
	{"Wario", ClassPower, "Wario"},
	{"Waluigi", ClassTechnique, "Waluigi"},
	{"Koopa(G)", ClassBalance, "Koopa"},
	{"Toad(R)", ClassBalance, "Toad"},
	{"Boo", ClassTechnique, "Boo"},
	{"Toadette", ClassSpeed, "Toadette"},
	{"Shy Guy(R)", ClassBalance, "Shy Guy"},
	{"Birdo", ClassBalance, "Birdo"},
	{"Monty", ClassSpeed, "Monty"},
	{"Bowser Jr", ClassPower, "Bowser Jr"},
	{"Paratroopa(R)", ClassTechnique, "Paratroopa"},
	{"Pianta(B)", ClassPower, "Pianta"},
	{"Pianta(R)", ClassPower, "Pianta"},
	{"Pianta(Y)", ClassPower, "Pianta"},
	{"Noki(B)", ClassSpeed, "Noki"},
	{"Noki(R)", ClassSpeed, "Noki"},
	{"Noki(G)", ClassSpeed, "Noki"},
	{"Bro(H)", ClassPower, "Bro"},
	{"Toadsworth", ClassTechnique, "Toadsworth"},
	{"Toad(B)", ClassBalance, "Toad"},
	{"Toad(Y)", ClassBalance, "Toad"},
	{"Toad(G)", ClassBalance, "Toad"},
	{"Toad(P)", ClassBalance, "Toad"},
	{"Magikoopa(B)", ClassTechnique, "Magikoopa"},
	{"Magikoopa(R)", ClassTechnique, "Magikoopa"},
	{"Magikoopa(G)", ClassTechnique, "Magikoopa"},
	{"Magikoopa(Y)", ClassTechnique, "Magikoopa"},
	{"King Boo", ClassPower, "King Boo"},
	{"Petey", ClassPower, "Petey"},
	{"Dixie", ClassTechnique, "Dixie"},
	{"Goomba", ClassBalance, "Goomba"},
	{"Paragoomba", ClassSpeed, "Paragoomba"},
	{"Koopa(R)", ClassBalance, "Koopa"},
	{"Paratroopa(G)", ClassTechnique, "Paratroopa"},
	{"Shy Guy(B)", ClassBalance, "Shy Guy"},
	{"Shy Guy(Y)", ClassBalance, "Shy Guy"},
	{"Shy Guy(G)", ClassBalance, "Shy Guy"},
	{"Shy Guy(Bk)", ClassBalance, "Shy Guy"},
	{"Dry Bones(Gy)", ClassTechnique, "Dry Bones"},
	{"Dry Bones(G)", ClassTechnique, "Dry Bones"},
	{"Dry Bones(R)", ClassTechnique, "Dry Bones"},
	{"Dry Bones(B)", ClassTechnique, "Dry Bones"},
	{"Bro(F)", ClassPower, "Bro"},
	{"Bro(B)", ClassPower, "Bro"},
}

// Count of playable characters.
const Count = len(roster)

const (
	Mario    ID = 0
	Luigi    ID = 1
	DK       ID = 2
	Diddy    ID = 3
	Peach    ID = 4
	Daisy    ID = 5
	Yoshi    ID = 6
	Bowser   ID = 9
	Wario    ID = 10
	Waluigi  ID = 11
	Birdo    ID = 17
	BowserJr ID = 19
)

var captains = map[ID]struct{}{
	Mario: {}, Luigi: {}, DK: {}, Diddy: {}, Peach: {}, Daisy: {},
	Yoshi: {}, Birdo: {}, Wario: {}, Waluigi: {}, Bowser: {}, BowserJr: {},
}

// aliases are spellings seen in stat files, API payloads and user input.
var aliases = map[string]ID{
	"donkey kong":    DK,
	"donkeykong":     DK,
	"diddy kong":     Diddy,
	"dixie kong":     39,
	"bowser junior":  BowserJr,
	"jr":             BowserJr,
	"koopa troopa":   12,
	"green koopa":    12,
	"red koopa":      42,
	"toad":           13,
	"red toad":       13,
	"blue toad":      29,
	"yellow toad":    30,
	"green toad":     31,
	"purple toad":    32,
	"shy guy":        16,
	"red shy guy":    16,
	"blue shy guy":   44,
	"yellow shy guy": 45,
	"green shy guy":  46,
	"black shy guy":  47,
	"monty mole":     18,
	"petey piranha":  38,
	"hammer bro":     27,
	"fire bro":       52,
	"boomerang bro":  53,
	"dry bones":      48,
	"gray dry bones": 48,
	"paratroopa":     20,
	"pianta":         21,
	"noki":           24,
	"magikoopa":      33,
}

var index = buildIndex()

func buildIndex() map[string]ID {
	out := make(map[string]ID, Count*2+len(aliases))
	for i, c := range roster {
		out[normalize(c.name)] = ID(i)
	}
	for alias, id := range aliases {
		key := normalize(alias)
		if _, exists := out[key]; !exists {
			out[key] = id
		}
	}
	return out
}

// normalize folds case and drops punctuation so "Koopa (G)", "koopa(g)" and "KOOPA G" agree.
func normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup resolves a display name, alias or numeric id.
func Lookup(name string) (ID, error) {
	if id, ok := index[normalize(name)]; ok {
		return id, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(name)); err == nil && n >= 0 && n < Count {
		return ID(n), nil
	}
	return 0, rioerr.UnknownCharacter(name)
}

// FromName is Lookup for callers that already hold a canonical name.
func FromName(name string) (ID, bool) {
	id, err := Lookup(name)
	return id, err == nil
}

func (id ID) Valid() bool {
	return id >= 0 && int(id) < Count
}

func (id ID) Name() string {
	if !id.Valid() {
		return ""
	}
	return roster[id].name
}

func (id ID) String() string {
	return id.Name()
}

func (id ID) Class() Class {
	if !id.Valid() {
		return ""
	}
	return roster[id].class
}

// SimplifiedName drops the colour variant: "Koopa(R)" is "Koopa".
func (id ID) SimplifiedName() string {
	if !id.Valid() {
		return ""
	}
	return roster[id].simplified
}

func (id ID) IsCaptain() bool {
	_, ok := captains[id]
	return ok
}

// IsCaptain reports whether name resolves to a captain-eligible character.
func IsCaptain(name string) bool {
	id, err := Lookup(name)
	return err == nil && id.IsCaptain()
}

// All returns every id in enumeration order.
func All() []ID {
	out := make([]ID, Count)
	for i := range out {
		out[i] = ID(i)
	}
	return out
}

// StripVariant cuts a display name at its colour suffix: "Toad(R)" is "Toad".
func StripVariant(name string) string {
	if i := strings.IndexByte(name, '('); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	return name
}
