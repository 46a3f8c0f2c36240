// Package nickname builds and queries equivalence classes of interchangeable
// first-name spellings. Raw co-occurrence lines are merged by transitive
// closure: any two lines sharing a name collapse into one cluster
package nickname

import (
	"bufio"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	perr "donormatch/internal/platform/errors"
	pstrings "donormatch/internal/platform/strings"
)

// Builder accumulates raw name lines and merges them into disjoint clusters
type Builder struct {
	lines [][]string // cleaned token sets in input order
}

// NewBuilder returns an empty builder
func NewBuilder() *Builder { return &Builder{} }

// AddTokens records one co-occurrence line. Tokens are case-folded and
// deduplicated within the line; an empty line is dropped
func (b *Builder) AddTokens(tokens ...string) {
	seen := make(map[string]struct{}, len(tokens))
	var line []string
	for _, t := range tokens {
		t = pstrings.UpperFold(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		line = append(line, t)
	}
	if len(line) > 0 {
		b.lines = append(b.lines, line)
	}
}

// AddMessyLine cleans one free-form source line and records its tokens.
// Commas, slashes, and parens are stripped, the line is split on whitespace,
// and tokens not starting with an uppercase letter are discarded
func (b *Builder) AddMessyLine(line string) {
	r := strings.NewReplacer(",", "", "/", "", "(", "", ")", "")
	line = r.Replace(line)

	var keep []string
	for _, tok := range strings.Fields(line) {
		first, _ := utf8.DecodeRuneInString(tok)
		if !unicode.IsUpper(first) {
			continue
		}
		keep = append(keep, tok)
	}
	b.AddTokens(keep...)
}

// ReadMessy consumes a whole messy source, one co-occurrence line per text line
func (b *Builder) ReadMessy(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		b.AddMessyLine(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeBadData, "read nickname source")
	}
	return nil
}

// Build merges all recorded lines into disjoint clusters and returns a
// finalized read-only index. Merging uses a disjoint-set forest keyed by line
// position; the representative of a group is always its earliest line, so the
// finished clusters come out in first-appearance order with members sorted.
// Re-running Build on an already-merged output yields the same partition
func (b *Builder) Build() (*Index, error) {
	n := len(b.lines)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(i int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]] // path compression
			i = parent[i]
		}
		return i
	}
	union := func(a, z int) {
		ra, rz := find(a), find(z)
		if ra == rz {
			return
		}
		// keep the smaller line index as representative so final ordering
		// matches a naive earliest-line merge
		if ra > rz {
			ra, rz = rz, ra
		}
		parent[rz] = ra
	}

	firstLine := make(map[string]int)
	for i, line := range b.lines {
		for _, name := range line {
			if j, ok := firstLine[name]; ok {
				union(i, j)
			} else {
				firstLine[name] = i
			}
		}
	}

	// gather members per root, ordered by root line index
	members := make(map[int]map[string]struct{})
	var roots []int
	for i, line := range b.lines {
		r := find(i)
		set, ok := members[r]
		if !ok {
			set = make(map[string]struct{})
			members[r] = set
			roots = append(roots, r)
		}
		for _, name := range line {
			set[name] = struct{}{}
		}
	}
	sort.Ints(roots)

	clusters := make([][]string, 0, len(roots))
	for _, r := range roots {
		cluster := make([]string, 0, len(members[r]))
		for name := range members[r] {
			cluster = append(cluster, name)
		}
		sort.Strings(cluster)
		clusters = append(clusters, cluster)
	}
	return NewIndex(clusters)
}
