// Package schema maps a stat file's format version onto the addressing rules
// every accessor uses: which side a logical team sits on and how per-slot
// sub-records are keyed.
package schema

import (
	"fmt"

	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
)

// OldestVersion is assumed when a record carries no Version field.
const OldestVersion = "Pre 0.1.7"

// Team is a logical team reference, 0 or 1.
type Team int

const (
	Team0 Team = 0
	Team1 Team = 1
)

func (t Team) Validate() error {
	if t != Team0 && t != Team1 {
		return rioerr.InvalidArgument("team %d must be 0 or 1", int(t))
	}
	return nil
}

func (t Team) Other() Team {
	return 1 - t
}

// Side is a literal away/home position inside a file.
type Side int

const (
	SideAway Side = 0
	SideHome Side = 1
)

func (s Side) String() string {
	if s == SideHome {
		return "Home"
	}
	return "Away"
}

func (s Side) Other() Side {
	return 1 - s
}

// SideFromHalf returns the batting side for a half-inning value (0 top, 1 bottom).
func SideFromHalf(half int) (Side, error) {
	switch half {
	case 0:
		return SideAway, nil
	case 1:
		return SideHome, nil
	default:
		return SideAway, rioerr.NewParseError("Half Inning", half, nil)
	}
}

type KeyStyle int

const (
	// KeyStyleCurrent keys per-slot sub-records "{Away|Home} Roster {r}".
	KeyStyleCurrent KeyStyle = iota
	// KeyStyleLegacy keys them "Team {n} Roster {r}".
	KeyStyleLegacy
)

func (k KeyStyle) String() string {
	if k == KeyStyleLegacy {
		return "legacy"
	}
	return "current"
}

type Profile struct {
	Version  string
	Swapped  bool
	KeyStyle KeyStyle
}

// Side maps a logical team onto the file's away/home position.
func (p Profile) Side(team Team) (Side, error) {
	if err := team.Validate(); err != nil {
		return SideAway, err
	}
	if p.Swapped {
		return Side(team.Other()), nil
	}
	return Side(team), nil
}

// Team is the inverse of Side.
func (p Profile) Team(side Side) Team {
	if p.Swapped {
		return Team(side.Other())
	}
	return Team(side)
}

func (p Profile) RosterKey(team Team, slot int) (string, error) {
	side, err := p.Side(team)
	if err != nil {
		return "", err
	}
	if slot < 0 || slot > 8 {
		return "", rioerr.InvalidArgument("roster slot %d must be in 0..8", slot)
	}
	return p.SideRosterKey(side, slot), nil
}

func (p Profile) SideRosterKey(side Side, slot int) string {
	if p.KeyStyle == KeyStyleLegacy {
		return fmt.Sprintf("Team %d Roster %d", int(side), slot)
	}
	return fmt.Sprintf("%s Roster %d", side, slot)
}

// Registry is the closed table of versions whose layout differs from the current one.
type Registry struct {
	swapped map[string]struct{}
	legacy  map[string]struct{}
}

// NewRegistry builds a table. Every swapped version also uses legacy keys.
func NewRegistry(swapped, legacyOnly []string) *Registry {
	r := &Registry{
		swapped: make(map[string]struct{}, len(swapped)),
		legacy:  make(map[string]struct{}, len(swapped)+len(legacyOnly)),
	}
	for _, v := range swapped {
		r.swapped[v] = struct{}{}
		r.legacy[v] = struct{}{}
	}
	for _, v := range legacyOnly {
		r.legacy[v] = struct{}{}
	}
	return r
}

var defaultRegistry = NewRegistry(
	[]string{OldestVersion, "0.1.7a", "0.1.8", "0.1.9", "1.9.1"},
	[]string{"1.9.2", "1.9.3", "1.9.4"},
)

func DefaultRegistry() *Registry {
	return defaultRegistry
}

func (r *Registry) Resolve(version string) Profile {
	if version == "" {
		version = OldestVersion
	}
	profile := Profile{Version: version, KeyStyle: KeyStyleCurrent}
	if _, ok := r.swapped[version]; ok {
		profile.Swapped = true
	}
	if _, ok := r.legacy[version]; ok {
		profile.KeyStyle = KeyStyleLegacy
	}
	return profile
}

// Resolve uses the default registry.
func Resolve(version string) Profile {
	return defaultRegistry.Resolve(version)
}
