package categorystats

import (
	"sort"
	"strings"

	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
	"github.com/riskibarqy/rio-stats/internal/platform/payload"
)

// StatsOf returns the "Stats" object of an API response, or the response
// itself when it is already unwrapped.
func StatsOf(response map[string]any) Payload {
	if stats, ok := response["Stats"].(map[string]any); ok {
		return stats
	}
	return response
}

type leaf struct {
	key        []string
	categories map[string]any
}

// Flatten classifies the payload and lays it out as one row per grouping key.
func Flatten(p Payload) (Table, error) {
	shape := Classify(p)

	leaves, err := collectLeaves(p, shape.Grouping)
	if err != nil {
		return Table{}, err
	}

	cellsByRow := make([]map[Column]Cell, len(leaves))
	columns := map[Column]struct{}{}
	for i, lf := range leaves {
		cells := map[Column]Cell{}
		if err := flattenCategories(lf.categories, shape.SwingBreakdown, cells); err != nil {
			return Table{}, err
		}
		for c := range cells {
			columns[c] = struct{}{}
		}
		cellsByRow[i] = cells
	}

	ordered := sortColumns(columns)
	table := Table{Shape: shape, Columns: ordered, Rows: make([]Row, len(leaves))}
	for i, lf := range leaves {
		table.Rows[i] = Row{Key: lf.key, Cells: alignCells(ordered, cellsByRow[i])}
	}
	sort.SliceStable(table.Rows, func(i, j int) bool {
		return lessKey(table.Rows[i].Key, table.Rows[j].Key)
	})
	return table, nil
}

func collectLeaves(p Payload, grouping Grouping) ([]leaf, error) {
	switch grouping.Levels() {
	case 0:
		return []leaf{{key: []string{}, categories: p}}, nil
	case 1:
		out := make([]leaf, 0, len(p))
		for _, k := range sortedKeys(p) {
			cats, ok := p[k].(map[string]any)
			if !ok {
				return nil, rioerr.NewParseError(k, p[k], nil)
			}
			out = append(out, leaf{key: []string{k}, categories: cats})
		}
		return out, nil
	default:
		var out []leaf
		for _, user := range sortedKeys(p) {
			chars, ok := p[user].(map[string]any)
			if !ok {
				return nil, rioerr.NewParseError(user, p[user], nil)
			}
			for _, char := range sortedKeys(chars) {
				cats, ok := chars[char].(map[string]any)
				if !ok {
					return nil, rioerr.NewParseError(user+"/"+char, chars[char], nil)
				}
				out = append(out, leaf{key: []string{user, char}, categories: cats})
			}
		}
		return out, nil
	}
}

func flattenCategories(categories map[string]any, breakdown bool, into map[Column]Cell) error {
	for category, raw := range categories {
		stats, ok := raw.(map[string]any)
		if !ok {
			return rioerr.NewParseError(category, raw, nil)
		}

		if category == CategoryBatting && breakdown {
			if err := flattenBatting(stats, into); err != nil {
				return err
			}
			continue
		}

		swing := ""
		if breakdown {
			swing = SwingSummary
		}
		for stat, value := range stats {
			if err := put(into, Column{Category: category, Swing: swing, Stat: stat}, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// flattenBatting splits swing sub-objects from flat summary stats.
func flattenBatting(stats map[string]any, into map[Column]Cell) error {
	for key, value := range stats {
		if nested, ok := value.(map[string]any); ok {
			swing := strings.ToLower(key)
			for stat, v := range nested {
				if err := put(into, Column{Category: CategoryBatting, Swing: swing, Stat: stat}, v); err != nil {
					return err
				}
			}
			continue
		}
		stat := key
		if hasSummaryPrefix(key) {
			stat = key[len(summaryPrefix):]
		}
		if err := put(into, Column{Category: CategoryBatting, Swing: SwingSummary, Stat: stat}, value); err != nil {
			return err
		}
	}
	return nil
}

// put skips nulls and rejects anything that is not a number.
func put(into map[Column]Cell, col Column, value any) error {
	if value == nil {
		return nil
	}
	field := col.Category + "/" + col.Stat
	if _, nested := value.(map[string]any); nested {
		return rioerr.NewParseError(field, value, nil)
	}
	v, err := payload.AsFloat(field, value)
	if err != nil {
		return err
	}
	into[col] = Cell{Value: v, Present: true}
	return nil
}

func sortColumns(set map[Column]struct{}) []Column {
	out := make([]Column, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

func alignCells(columns []Column, cells map[Column]Cell) []Cell {
	out := make([]Cell, len(columns))
	for i, c := range columns {
		out[i] = cells[c]
	}
	return out
}

func lessKey(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// ColumnIndex finds a column's position.
func (t Table) ColumnIndex(col Column) (int, bool) {
	for i, c := range t.Columns {
		if c == col {
			return i, true
		}
	}
	return 0, false
}

// Value reads one cell by row key and column.
func (t Table) Value(key []string, col Column) (Cell, bool) {
	idx, ok := t.ColumnIndex(col)
	if !ok {
		return Cell{}, false
	}
	want := strings.Join(key, "\x00")
	for _, row := range t.Rows {
		if row.keyString() == want {
			return row.Cells[idx], true
		}
	}
	return Cell{}, false
}

// Header is the grouping key names followed by the column labels.
func (t Table) Header() []string {
	out := append([]string{}, t.Grouping.KeyNames()...)
	for _, c := range t.Columns {
		out = append(out, c.String())
	}
	return out
}

// SumSwings collapses the swing axis. Each (category, stat) becomes the sum
// of its swing cells, or the summary cell when no swing cell is present.
func (t Table) SumSwings() Table {
	if !t.SwingBreakdown {
		return t
	}

	type pair struct{ category, stat string }
	index := map[pair]int{}
	var columns []Column
	for _, c := range t.Columns {
		p := pair{c.Category, c.Stat}
		if _, ok := index[p]; !ok {
			index[p] = len(columns)
			columns = append(columns, Column{Category: c.Category, Stat: c.Stat})
		}
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].less(columns[j]) })
	for i, c := range columns {
		index[pair{c.Category, c.Stat}] = i
	}

	shape := t.Shape
	shape.SwingBreakdown = false
	out := Table{Shape: shape, Columns: columns, Rows: make([]Row, len(t.Rows))}
	for r, row := range t.Rows {
		swings := make([]Cell, len(columns))
		summaries := make([]Cell, len(columns))
		for i, c := range t.Columns {
			cell := row.Cells[i]
			if !cell.Present {
				continue
			}
			dst := index[pair{c.Category, c.Stat}]
			if c.Swing == SwingSummary {
				summaries[dst] = cell
				continue
			}
			swings[dst] = Cell{Value: swings[dst].Value + cell.Value, Present: true}
		}
		cells := make([]Cell, len(columns))
		for i := range columns {
			if swings[i].Present {
				cells[i] = swings[i]
			} else {
				cells[i] = summaries[i]
			}
		}
		out.Rows[r] = Row{Key: append([]string{}, row.Key...), Cells: cells}
	}
	return out
}

// Totals sums every column over all rows after collapsing swings.
func (t Table) Totals() map[Column]float64 {
	collapsed := t.SumSwings()
	out := make(map[Column]float64, len(collapsed.Columns))
	for i, c := range collapsed.Columns {
		total, seen := 0.0, false
		for _, row := range collapsed.Rows {
			if row.Cells[i].Present {
				total += row.Cells[i].Value
				seen = true
			}
		}
		if seen {
			out[c] = total
		}
	}
	return out
}

// Concat appends the rows of several tables that share a grouping depth and
// breakdown mode, widening to the union of their columns.
func Concat(tables ...Table) (Table, error) {
	if len(tables) == 0 {
		return Table{}, nil
	}
	base := tables[0].Shape
	base.Ambiguous, base.Reason = false, ""

	columns := map[Column]struct{}{}
	var reasons []string
	for _, t := range tables {
		if t.Grouping.Levels() != base.Grouping.Levels() {
			return Table{}, rioerr.InvalidArgument("cannot concatenate %s and %s tables", base.Grouping, t.Grouping)
		}
		if t.SwingBreakdown != base.SwingBreakdown {
			return Table{}, rioerr.InvalidArgument("cannot concatenate tables with and without swing breakdown")
		}
		if t.Ambiguous {
			base.Ambiguous = true
			reasons = append(reasons, t.Reason)
		}
		for _, c := range t.Columns {
			columns[c] = struct{}{}
		}
	}
	base.Reason = strings.Join(reasons, "; ")

	ordered := sortColumns(columns)
	out := Table{Shape: base, Columns: ordered}
	for _, t := range tables {
		for _, row := range t.Rows {
			cells := make(map[Column]Cell, len(t.Columns))
			for i, c := range t.Columns {
				cells[c] = row.Cells[i]
			}
			out.Rows = append(out.Rows, Row{Key: append([]string{}, row.Key...), Cells: alignCells(ordered, cells)})
		}
	}
	return out, nil
}
