package entities

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns up to limit candidates starting with prefix, ignoring case,
// in candidate order. Names in exclude are skipped. A limit of 0 means no limit.
func Suggest(candidates []string, prefix string, exclude []string, limit int) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}

	p := strings.ToLower(strings.TrimSpace(prefix))
	out := []string{}
	for _, c := range candidates {
		if _, ok := skip[c]; ok {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(c), p) {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Closest returns the candidate nearest to name by edit distance, or "" when
// nothing is close enough to be a plausible typo.
func Closest(name string, candidates []string) string {
	in := strings.ToLower(strings.TrimSpace(name))
	if in == "" {
		return ""
	}

	type scored struct {
		name string
		dist int
	}
	var hits []scored
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if lc == in {
			return c
		}
		dist := levenshtein.ComputeDistance(in, lc)
		if dist > distanceLimit(len(lc)) {
			continue
		}
		hits = append(hits, scored{name: c, dist: dist})
	}
	if len(hits) == 0 {
		return ""
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})
	return hits[0].name
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
