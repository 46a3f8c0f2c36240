package nickname

import (
	perr "donormatch/internal/platform/errors"
	pstrings "donormatch/internal/platform/strings"
)

// Index is the read-only lookup surface over a finalized cluster set.
// Cluster ids are stable sequential positions assigned after convergence
type Index struct {
	clusters [][]string
	byName   map[string]int
}

// NewIndex wraps finalized clusters. A name appearing in two clusters is a
// builder or data defect and fails fast
func NewIndex(clusters [][]string) (*Index, error) {
	byName := make(map[string]int)
	for i, cluster := range clusters {
		for _, name := range cluster {
			name = pstrings.UpperFold(name)
			if prev, dup := byName[name]; dup && prev != i {
				return nil, perr.BadDataf("name %q appears in clusters %d and %d", name, prev, i)
			}
			byName[name] = i
		}
	}
	return &Index{clusters: clusters, byName: byName}, nil
}

// Len returns the number of clusters
func (x *Index) Len() int { return len(x.clusters) }

// IndexOf returns the cluster id for a name, case-insensitively.
// An unknown name is not an error, it simply has no cluster
func (x *Index) IndexOf(name string) (int, bool) {
	i, ok := x.byName[pstrings.UpperFold(name)]
	return i, ok
}

// Names returns a copy of the cluster at id, or nil when out of range
func (x *Index) Names(id int) []string {
	if id < 0 || id >= len(x.clusters) {
		return nil
	}
	out := make([]string, len(x.clusters[id]))
	copy(out, x.clusters[id])
	return out
}

// RelatedNames returns the full cluster containing name, including the name
// itself, or nil for an unknown name
func (x *Index) RelatedNames(name string) []string {
	id, ok := x.IndexOf(name)
	if !ok {
		return nil
	}
	return x.Names(id)
}

// RelatedNameSets returns the variant sets for a name. A finalized index is
// a partition, so this is at most one set; sources that allow a name in
// several clusters would return one set per cluster
func (x *Index) RelatedNameSets(name string) [][]string {
	related := x.RelatedNames(name)
	if related == nil {
		return nil
	}
	return [][]string{related}
}
