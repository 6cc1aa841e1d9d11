// Package teamname derives the in-game team name a roster plays under.
package teamname

import (
	"github.com/riskibarqy/rio-stats/internal/domain/character"
)

// themeThreshold is how many roster members must appear in a themed list.
const themeThreshold = 4

type themed struct {
	name    string
	members []string
}

type captainNames struct {
	fallback string
	classy   string
	themes   [2]themed
}

var names = map[character.ID]captainNames{
	character.Mario: {"Mario Heroes", "Mario Fireballs", [2]themed{
		{"Mario Sunshines", []string{"Luigi", "Monty", "Pianta", "Noki"}},
		{"Mario All Stars", []string{"Peach", "Yoshi", "DK", "Bowser"}},
	}},
	character.Luigi: {"Luigi Gentlemen", "Luigi Vacuums", [2]themed{
		{"Luigi Mansioneers", []string{"Bowser", "Toad", "Boo", "King Boo"}},
		{"Luigi Leapers", []string{"Waluigi", "Diddy", "Daisy", "Baby Luigi"}},
	}},
	character.Peach: {"Peach Roses", "Peach Dynasties", [2]themed{
		{"Peach Monarchs", []string{"Daisy", "Toad", "Toadsworth", "Toadette"}},
		{"Peach Princesses", []string{"Mario", "Bowser", "Baby Mario", "Bowser Jr"}},
	}},
	character.Daisy: {"Daisy Lillies", "Daisy Cupids", [2]themed{
		{"Daisy Queen Bees", []string{"Peach", "Dixie", "Toadette", "Noki"}},
		{"Daisy Petals", []string{"Birdo", "Dixie", "Wario", "Petey"}},
	}},
	character.Yoshi: {"Yoshi Eggs", "Yoshi Speed Stars", [2]themed{
		{"Yoshi Islanders", []string{"Birdo", "Baby Mario", "Baby Luigi", "Shy Guy"}},
		{"Yoshi Flutters", []string{"Boo", "King Boo", "Paratroopa", "Paragoomba"}},
	}},
	character.Birdo: {"Birdo Beauties", "Birdo Models", [2]themed{
		{"Birdo Bows", []string{"Mario", "Luigi", "Peach", "Toad"}},
		{"Birdo Fans", []string{"Yoshi", "Shy Guy", "Goomba", "Koopa"}},
	}},
	character.Wario: {"Wario Garlics", "Wario Steakheads", [2]themed{
		{"Wario Greats", []string{"Waluigi", "King Boo", "Magikoopa", "Petey"}},
		{"Wario Beasts", []string{"DK", "Bowser", "Bowser Jr", "Bro"}},
	}},
	character.Waluigi: {"Waluigi Mystiques", "Waluigi Smart Alecks", [2]themed{
		{"Waluigi Flankers", []string{"King Boo", "Wario", "Magikoopa", "Dry Bones"}},
		{"Waluigi Mashers", []string{"Mario", "Luigi", "Toadsworth", "Wario"}},
	}},
	character.DK: {"DK Explorers", "DK Wild Ones", [2]themed{
		{"DK Kongs", []string{"Diddy", "Dixie", "Goomba", "Koopa"}},
		{"DK Animals", []string{"Yoshi", "Bowser", "Monty", "Petey"}},
	}},
	character.Diddy: {"Diddy Survivors", "Diddy Ninjas", [2]themed{
		{"Diddy Tails", []string{"Yoshi", "Birdo", "Dixie", "Boo"}},
		{"Diddy Red Caps", []string{"Mario", "Birdo", "Baby Mario", "Toadette"}},
	}},
	character.Bowser: {"Bowser Flames", "Bowser Blue Shells", [2]themed{
		{"Bowser Monsters", []string{"Bowser Jr", "Dry Bones", "Bro"}},
		{"Bowser Black Stars", []string{"Waluigi", "Wario", "Petey", "Bro"}},
	}},
	character.BowserJr: {"Jr Fangs", "Jr Bombers", [2]themed{
		{"Jr Pixies", []string{"Diddy", "Boo", "Shy Guy", "Goomba"}},
		{"Jr Rookies", []string{"Diddy", "Dixie", "Baby Mario", "Baby Luigi"}},
	}},
}

// All lists every team name in captain order.
func All() []string {
	var out []string
	for _, id := range character.All() {
		n, ok := names[id]
		if !ok {
			continue
		}
		out = append(out, n.fallback, n.classy, n.themes[0].name, n.themes[1].name)
	}
	return out
}

// Name picks the team name for a roster led by captain. The first themed
// list with enough members wins, then the class name when the captain's class
// strictly outnumbers every other class, then the captain's default name.
// Incomplete rosters and non-captains have no name.
func Name(roster []string, captain string) (string, error) {
	for _, member := range roster {
		if member == "" {
			return "", nil
		}
	}
	captainID, err := character.Lookup(captain)
	if err != nil {
		return "", err
	}
	entry, ok := names[captainID]
	if !ok {
		return "", nil
	}

	simplified := make(map[string]int, len(roster))
	classes := make(map[character.Class]int, len(character.Classes))
	for _, member := range roster {
		id, err := character.Lookup(member)
		if err != nil {
			return "", err
		}
		simplified[id.SimplifiedName()]++
		classes[id.Class()]++
	}

	for _, theme := range entry.themes {
		total := 0
		for _, m := range theme.members {
			total += simplified[m]
		}
		if total >= themeThreshold {
			return theme.name, nil
		}
	}

	own := captainID.Class()
	for _, c := range character.Classes {
		if c != own && classes[c] >= classes[own] {
			return entry.fallback, nil
		}
	}
	return entry.classy, nil
}
