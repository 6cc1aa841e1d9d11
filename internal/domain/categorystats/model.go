// Package categorystats reshapes the web API's category stats payloads into
// flat tables with a fixed column order.
package categorystats

import (
	"fmt"
	"strings"
)

// Payload is a decoded "Stats" object from the web API.
type Payload = map[string]any

const (
	CategoryBatting  = "Batting"
	CategoryPitching = "Pitching"
	CategoryFielding = "Fielding"
	CategoryMisc     = "Misc"
)

// Categories is the closed set of top-level stat categories.
var Categories = []string{CategoryBatting, CategoryFielding, CategoryMisc, CategoryPitching}

const (
	SwingSlap    = "slap"
	SwingCharge  = "charge"
	SwingStar    = "star"
	SwingNone    = "none"
	SwingSummary = "summary"

	summaryPrefix = "summary_"
)

// SwingOrder is the column precedence of the swing axis.
var SwingOrder = []string{SwingSlap, SwingCharge, SwingStar, SwingNone, SwingSummary}

func isCategory(key string) bool {
	for _, c := range Categories {
		if key == c {
			return true
		}
	}
	return false
}

func isSwingLabel(key string) bool {
	switch strings.ToLower(key) {
	case SwingSlap, SwingCharge, SwingStar, SwingNone:
		return true
	}
	return false
}

func swingRank(swing string) int {
	for i, s := range SwingOrder {
		if s == swing {
			return i
		}
	}
	return len(SwingOrder)
}

type Grouping int

const (
	GroupingAggregate Grouping = iota
	GroupingByUser
	GroupingByCharacter
	GroupingByUserAndCharacter
)

func (g Grouping) String() string {
	switch g {
	case GroupingAggregate:
		return "aggregate"
	case GroupingByUser:
		return "by_user"
	case GroupingByCharacter:
		return "by_character"
	case GroupingByUserAndCharacter:
		return "by_user_and_character"
	default:
		return fmt.Sprintf("grouping(%d)", int(g))
	}
}

// Levels is the number of grouping keys in a row index.
func (g Grouping) Levels() int {
	switch g {
	case GroupingByUser, GroupingByCharacter:
		return 1
	case GroupingByUserAndCharacter:
		return 2
	default:
		return 0
	}
}

// KeyNames labels the row index levels.
func (g Grouping) KeyNames() []string {
	switch g {
	case GroupingByUser:
		return []string{"user"}
	case GroupingByCharacter:
		return []string{"character"}
	case GroupingByUserAndCharacter:
		return []string{"user", "character"}
	default:
		return nil
	}
}

// Shape is the classification of a payload. Ambiguous marks the
// by-user-and-character fallback; Reason says what did not match.
type Shape struct {
	Grouping       Grouping `json:"grouping"`
	SwingBreakdown bool     `json:"swing_breakdown"`
	Ambiguous      bool     `json:"ambiguous"`
	Reason         string   `json:"reason,omitempty"`
}

// ConcatCompatible reports whether tables of shapes s and o can be stacked by
// Concat: same number of key columns and the same swing breakdown.
func (s Shape) ConcatCompatible(o Shape) bool {
	return s.Grouping.Levels() == o.Grouping.Levels() && s.SwingBreakdown == o.SwingBreakdown
}

// Column is one header of the flattened table. Swing is empty without a breakdown.
type Column struct {
	Category string `json:"category"`
	Swing    string `json:"swing,omitempty"`
	Stat     string `json:"stat"`
}

func (c Column) String() string {
	if c.Swing == "" {
		return c.Category + "/" + c.Stat
	}
	return c.Category + "/" + c.Swing + "/" + c.Stat
}

func (c Column) less(o Column) bool {
	if c.Category != o.Category {
		return c.Category < o.Category
	}
	if c.Swing != o.Swing {
		ri, rj := swingRank(c.Swing), swingRank(o.Swing)
		if ri != rj {
			return ri < rj
		}
		return c.Swing < o.Swing
	}
	return c.Stat < o.Stat
}

// Cell is a table value; Present is false where the source had no value.
type Cell struct {
	Value   float64 `json:"value"`
	Present bool    `json:"present"`
}

type Row struct {
	Key   []string `json:"key"`
	Cells []Cell   `json:"cells"`
}

func (r Row) keyString() string {
	return strings.Join(r.Key, "\x00")
}

type Table struct {
	Shape
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}
