package portal

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/benchline/benchline/internal/api"
)

// RankEmployees orders the directory for the team-lead picker. Substring
// matches on name or email come first (in directory order), then near
// matches by edit distance against the name. An empty query returns the
// directory unchanged.
func RankEmployees(directory []api.Employee, query string) []api.Employee {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return directory
	}

	type scored struct {
		emp   api.Employee
		dist  int
		order int
	}
	var exact []api.Employee
	var near []scored
	for i, e := range directory {
		name := strings.ToLower(e.Name)
		if strings.Contains(name, q) || strings.Contains(strings.ToLower(e.Email), q) {
			exact = append(exact, e)
			continue
		}
		dist := levenshtein.ComputeDistance(q, name)
		if dist <= len(q)/2 {
			near = append(near, scored{emp: e, dist: dist, order: i})
		}
	}
	sort.SliceStable(near, func(i, j int) bool {
		if near[i].dist != near[j].dist {
			return near[i].dist < near[j].dist
		}
		return near[i].order < near[j].order
	})
	out := exact
	for _, s := range near {
		out = append(out, s.emp)
	}
	return out
}
