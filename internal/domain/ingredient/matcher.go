package ingredient

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// DefaultMatchThreshold is the similarity at or above which two canonical
// names are considered the same ingredient
const DefaultMatchThreshold = 0.85

// Matcher decides whether two normalized names refer to the same ingredient
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher with the given similarity threshold.
// Non-positive values select DefaultMatchThreshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Matcher{threshold: threshold}
}

// Threshold returns the configured similarity threshold
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Similarity computes normalized Levenshtein similarity in [0, 1]
func (m *Matcher) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// Match reports whether two canonical names meet the threshold
func (m *Matcher) Match(a, b string) bool {
	return m.Similarity(a, b) >= m.threshold
}

// GroupNames partitions canonical names into same-ingredient groups.
// Grouping is the transitive closure over pairs meeting the threshold, not
// pairwise-only, so the result does not depend on input order. Each group
// and the group list itself are sorted for determinism.
func (m *Matcher) GroupNames(names []string) [][]string {
	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	sort.Strings(unique)

	parent := make([]int, len(unique))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri != rj {
			parent[rj] = ri
		}
	}

	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			if m.Match(unique[i], unique[j]) {
				union(i, j)
			}
		}
	}

	byRoot := make(map[int][]string)
	for i, name := range unique {
		root := find(i)
		byRoot[root] = append(byRoot[root], name)
	}

	groups := make([][]string, 0, len(byRoot))
	for _, group := range byRoot {
		sort.Strings(group)
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0] < groups[j][0]
	})
	return groups
}
