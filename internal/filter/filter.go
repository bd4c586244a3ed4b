package filter

import (
	"sort"
	"strings"

	"apptdash/domain/appointment"
)

// Normalize repairs a selection without rejecting it: swapped age bounds are
// swapped back, blank and duplicate set entries are dropped. Filter input is
// never an error condition.
func Normalize(sel appointment.Selection) appointment.Selection {
	if sel.AgeMin > sel.AgeMax {
		sel.AgeMin, sel.AgeMax = sel.AgeMax, sel.AgeMin
	}
	sel.Genders = cleanSet(sel.Genders)
	sel.Neighbourhoods = cleanSet(sel.Neighbourhoods)
	return sel
}

// Apply returns the subset of rows matching every supplied constraint. The
// constraints combine with logical AND; an empty gender or neighbourhood set
// matches everything, while the age interval is always applied, both ends
// inclusive. Output preserves the full table's row order, and a selection
// matching nothing yields an empty view, never an error.
func Apply(table *appointment.Table, sel appointment.Selection) appointment.View {
	sel = Normalize(sel)
	genders := toSet(sel.Genders)
	neighbourhoods := toSet(sel.Neighbourhoods)

	rows := make([]appointment.Appointment, 0, len(table.Rows))
	for _, row := range table.Rows {
		if len(genders) > 0 && !genders[row.Gender] {
			continue
		}
		if row.Age < sel.AgeMin || row.Age > sel.AgeMax {
			continue
		}
		if len(neighbourhoods) > 0 && !neighbourhoods[row.Neighbourhood] {
			continue
		}
		rows = append(rows, row)
	}
	return appointment.View{Table: table, Selection: sel, Rows: rows}
}

func cleanSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
