package listings

import (
	"slices"
	"strings"
)

// Scope selects which listings a tab shows.
type Scope int

const (
	ScopeMine Scope = iota
	ScopeAll
	ScopeTeam
)

func (s Scope) String() string {
	switch s {
	case ScopeMine:
		return "mine"
	case ScopeTeam:
		return "team"
	default:
		return "all"
	}
}

// Filter returns the listings visible in scope for user, in input order.
func Filter(all []Listing, scope Scope, user User) []Listing {
	if scope == ScopeAll {
		return slices.Clone(all)
	}
	var out []Listing
	for _, l := range all {
		switch scope {
		case ScopeMine:
			if l.Owner == user.Email {
				out = append(out, l)
			}
		case ScopeTeam:
			if user.Team != "" && strings.EqualFold(l.Team, user.Team) {
				out = append(out, l)
			}
		}
	}
	return out
}

// Count is one labelled tally in a Report.
type Count struct {
	Label string
	Count int
	Value float64
}

// Report summarizes a set of listings.
type Report struct {
	Total    int
	Value    float64
	ByStatus []Count
	ByCity   []Count
}

// BuildReport tallies listings by status (in Statuses order, zero counts
// included) and by city (largest first, then alphabetical).
func BuildReport(all []Listing) Report {
	r := Report{Total: len(all)}
	status := map[Status]*Count{}
	for _, s := range Statuses {
		r.ByStatus = append(r.ByStatus, Count{Label: string(s)})
	}
	for i := range r.ByStatus {
		status[Statuses[i]] = &r.ByStatus[i]
	}

	cities := map[string]*Count{}
	var order []string
	for _, l := range all {
		r.Value += l.Price
		if c, ok := status[l.Status]; ok {
			c.Count++
			c.Value += l.Price
		}
		c, ok := cities[l.City]
		if !ok {
			c = &Count{Label: l.City}
			cities[l.City] = c
			order = append(order, l.City)
		}
		c.Count++
		c.Value += l.Price
	}
	for _, city := range order {
		r.ByCity = append(r.ByCity, *cities[city])
	}
	slices.SortStableFunc(r.ByCity, func(a, b Count) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Label, b.Label)
	})
	return r
}
