// Package stats derives filtered views and count-based rankings from a
// workshop's solutions. Everything here is a pure function of the input
// slice and the query parameters: calling twice with unchanged inputs yields
// structurally identical output, which the dashboards rely on.
package stats

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"ideaboard/internal/model"
)

// SortOrder selects how a filtered solution list is ordered.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortChallenge SortOrder = "challenge"
	SortGroup     SortOrder = "group"
)

// LengthBucket classifies solutions by combined What/Why/How text length.
type LengthBucket string

const (
	LengthAll    LengthBucket = "all"
	LengthShort  LengthBucket = "short"  // < 300 characters
	LengthMedium LengthBucket = "medium" // 300..799 characters
	LengthLong   LengthBucket = "long"   // >= 800 characters
)

const (
	mediumMin = 300
	longMin   = 800
)

// Query holds the filter and sort parameters for a derived view. Zero values
// mean "match everything" / "keep stored order".
type Query struct {
	Search    string
	Challenge string
	Group     string
	Length    LengthBucket
	Sort      SortOrder
}

// Engine applies queries using a locale-aware collator for the lexicographic
// sort orders. It carries no other state.
type Engine struct {
	col *collate.Collator
}

// NewEngine creates an engine whose challenge/group sorts compare strings
// according to the given language's collation rules.
func NewEngine(tag language.Tag) *Engine {
	return &Engine{col: collate.New(tag)}
}

// Apply filters and sorts solutions per the query. The input slice is never
// modified.
func (e *Engine) Apply(solutions []model.Solution, q Query) []model.Solution {
	out := Filter(solutions, q)
	e.sortSolutions(out, q.Sort)
	return out
}

// Filter returns the solutions matching the query's search term and filters,
// in their original order.
func Filter(solutions []model.Solution, q Query) []model.Solution {
	out := make([]model.Solution, 0, len(solutions))
	for _, sol := range solutions {
		if !matchesSearch(sol, q.Search) {
			continue
		}
		if q.Challenge != "" && sol.Challenge != q.Challenge {
			continue
		}
		if q.Group != "" && sol.GroupName != q.Group {
			continue
		}
		if q.Length != "" && q.Length != LengthAll && BucketOf(CombinedLength(sol)) != q.Length {
			continue
		}
		out = append(out, sol)
	}
	return out
}

func matchesSearch(sol model.Solution, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range []string{
		sol.Challenge,
		sol.GroupName,
		sol.StudentName,
		sol.What + "\n" + sol.Why + "\n" + sol.How,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// sortSolutions orders the slice in place. Ties keep the original order.
func (e *Engine) sortSolutions(solutions []model.Solution, order SortOrder) {
	switch order {
	case SortNewest:
		sort.SliceStable(solutions, func(i, j int) bool {
			return solutions[i].CreatedAt.After(solutions[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(solutions, func(i, j int) bool {
			return solutions[i].CreatedAt.Before(solutions[j].CreatedAt)
		})
	case SortChallenge:
		sort.SliceStable(solutions, func(i, j int) bool {
			return e.col.CompareString(solutions[i].Challenge, solutions[j].Challenge) < 0
		})
	case SortGroup:
		sort.SliceStable(solutions, func(i, j int) bool {
			return e.col.CompareString(solutions[i].GroupName, solutions[j].GroupName) < 0
		})
	}
}

// SortStrings orders a string slice with the engine's collator.
func (e *Engine) SortStrings(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return e.col.CompareString(names[i], names[j]) < 0
	})
}

// CombinedLength is the total What/Why/How text length in characters.
func CombinedLength(sol model.Solution) int {
	return utf8.RuneCountInString(sol.What) +
		utf8.RuneCountInString(sol.Why) +
		utf8.RuneCountInString(sol.How)
}

// BucketOf maps a combined text length to its bucket.
func BucketOf(n int) LengthBucket {
	switch {
	case n < mediumMin:
		return LengthShort
	case n < longMin:
		return LengthMedium
	default:
		return LengthLong
	}
}

// Count is one entry in a popularity ranking.
type Count struct {
	Name  string
	Count int
}

// ChallengeStats groups solutions by challenge and returns per-challenge
// counts sorted descending. Equal counts keep the order in which the
// challenges were first encountered.
func ChallengeStats(solutions []model.Solution) []Count {
	return countBy(solutions, func(sol model.Solution) string { return sol.Challenge })
}

// GroupStats groups solutions by group name and returns per-group counts
// sorted descending, unbounded.
func GroupStats(solutions []model.Solution) []Count {
	return countBy(solutions, func(sol model.Solution) string { return sol.GroupName })
}

func countBy(solutions []model.Solution, key func(model.Solution) string) []Count {
	counts := make(map[string]int)
	var order []string
	for _, sol := range solutions {
		k := key(sol)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]Count, 0, len(order))
	for _, k := range order {
		out = append(out, Count{Name: k, Count: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Top caps a ranking to its first n entries; n <= 0 returns the full ranking.
func Top(counts []Count, n int) []Count {
	if n <= 0 || n >= len(counts) {
		return counts
	}
	return counts[:n]
}
