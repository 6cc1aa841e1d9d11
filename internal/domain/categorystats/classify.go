package categorystats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/rio-stats/internal/domain/character"
	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
)

// Classify decides the grouping and swing breakdown of a payload from its keys.
//
// Top-level category keys mean an aggregate. Otherwise the value under the
// lexicographically first key is inspected: category keys there mean one
// grouping level, character keys mean two. Anything else falls back to
// by-user-and-character and is flagged Ambiguous.
func Classify(p Payload) Shape {
	if len(p) == 0 || allKeys(p, isCategory) {
		return Shape{Grouping: GroupingAggregate, SwingBreakdown: hasSwingBreakdown(p)}
	}

	keys := sortedKeys(p)
	first, ok := p[keys[0]].(map[string]any)
	if !ok || len(first) == 0 {
		return Shape{
			Grouping:  GroupingByUserAndCharacter,
			Ambiguous: true,
			Reason:    fmt.Sprintf("value under %q is not a non-empty object", keys[0]),
		}
	}

	switch {
	case allKeys(first, isCategory):
		grouping := GroupingByUser
		if allKeys(p, isCharacterName) {
			grouping = GroupingByCharacter
		}
		return Shape{Grouping: grouping, SwingBreakdown: leavesHaveSwingBreakdown(p, 1)}
	case allKeys(first, isCharacterName):
		return Shape{Grouping: GroupingByUserAndCharacter, SwingBreakdown: leavesHaveSwingBreakdown(p, 2)}
	default:
		return Shape{
			Grouping:  GroupingByUserAndCharacter,
			Ambiguous: true,
			Reason:    fmt.Sprintf("keys under %q match neither categories nor characters", keys[0]),
		}
	}
}

// Audit reports the fallback classification as ErrAmbiguousShape.
func (s Shape) Audit() error {
	if !s.Ambiguous {
		return nil
	}
	return crerr.Wrapf(rioerr.ErrAmbiguousShape, "%s grouping assumed: %s", s.Grouping, s.Reason)
}

// leavesHaveSwingBreakdown walks levels of grouping keys and reports whether
// any category map below them breaks Batting down by swing. A user whose first
// character never batted must not hide the breakdown of the others.
func leavesHaveSwingBreakdown(node map[string]any, levels int) bool {
	if levels == 0 {
		return hasSwingBreakdown(node)
	}
	for _, value := range node {
		child, ok := value.(map[string]any)
		if ok && leavesHaveSwingBreakdown(child, levels-1) {
			return true
		}
	}
	return false
}

// hasSwingBreakdown inspects the Batting category of a category map.
func hasSwingBreakdown(categories map[string]any) bool {
	batting, ok := categories[CategoryBatting].(map[string]any)
	if !ok {
		return false
	}
	for key := range batting {
		if isSwingLabel(key) || hasSummaryPrefix(key) {
			return true
		}
	}
	return false
}

func hasSummaryPrefix(key string) bool {
	return strings.HasPrefix(strings.ToLower(key), summaryPrefix)
}

// isCharacterName matches names only; numeric ids are not accepted as grouping keys.
func isCharacterName(key string) bool {
	if _, err := strconv.Atoi(strings.TrimSpace(key)); err == nil {
		return false
	}
	_, ok := character.FromName(key)
	return ok
}

func allKeys(m map[string]any, match func(string) bool) bool {
	if len(m) == 0 {
		return false
	}
	for k := range m {
		if !match(k) {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
