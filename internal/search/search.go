// Package search implements the fuzzy scorer used to rank launcher entries
// against the live filter query. Scoring is a pure function of the query and
// the candidate fields so results are reproducible.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/qlsh/quick-launcher/internal/entry"
)

const (
	// neutralScore is awarded to every entry when the query is empty,
	// preserving a stable alias ordering.
	neutralScore = 1.0

	// substringBase is the floor for any substring hit; it always outranks
	// a subsequence hit.
	substringBase = 100.0
	prefixBonus   = 25.0
	lengthWeight  = 50.0

	subsequenceBase = 50.0
	gapPenalty      = 1.0
	minScore        = 0.5
)

// Match pairs an entry with its score for the current query.
type Match struct {
	Entry *entry.Entry
	Score float64
}

// Score compares a query against the ordered candidate fields and returns
// the best field score. The second return is false when no field matches.
//
// A case-insensitive substring hit scores high, boosted when the field
// starts with the query and scaled up for shorter fields. A field that only
// matches as an in-order subsequence scores lower, penalized by the number
// of characters skipped between matched runes.
func Score(query string, fields []string) (float64, bool) {
	if strings.TrimSpace(query) == "" {
		return neutralScore, true
	}
	best := 0.0
	matched := false
	for _, field := range fields {
		if field == "" {
			continue
		}
		score, ok := scoreField(query, field)
		if !ok {
			continue
		}
		matched = true
		if score > best {
			best = score
		}
	}
	return best, matched
}

func scoreField(query, field string) (float64, bool) {
	q := strings.ToLower(query)
	f := strings.ToLower(field)
	if idx := strings.Index(f, q); idx >= 0 {
		score := substringBase + lengthWeight*float64(len(q))/float64(len(f))
		if idx == 0 {
			score += prefixBonus
		}
		return score, true
	}
	if !fuzzy.MatchNormalizedFold(query, field) {
		return 0, false
	}
	score := subsequenceBase - gapPenalty*float64(subsequenceGaps(q, f))
	if score < minScore {
		score = minScore
	}
	return score, true
}

// subsequenceGaps counts the characters skipped between the first and last
// matched rune of a greedy leftmost subsequence match. Both inputs are
// already lower-cased.
func subsequenceGaps(query, field string) int {
	qr := []rune(query)
	if len(qr) == 0 {
		return 0
	}
	gaps := 0
	qi := 0
	started := false
	pending := 0
	for _, r := range field {
		if qi >= len(qr) {
			break
		}
		if r == qr[qi] {
			if started {
				gaps += pending
			}
			started = true
			pending = 0
			qi++
			continue
		}
		if started {
			pending++
		}
	}
	return gaps
}

// Rank scores every entry of the requested mode class and returns the
// matches sorted by descending score, ties broken by alias.
func Rank(entries []*entry.Entry, query string, templates bool) []Match {
	matches := make([]Match, 0, len(entries))
	for _, e := range entries {
		if e == nil || !e.MatchesMode(templates) {
			continue
		}
		matches = appendMatch(matches, e, query)
	}
	sortMatches(matches)
	return matches
}

// RankAll ranks across both mode classes. Used for alias suggestions.
func RankAll(entries []*entry.Entry, query string) []Match {
	matches := make([]Match, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		matches = appendMatch(matches, e, query)
	}
	sortMatches(matches)
	return matches
}

func appendMatch(matches []Match, e *entry.Entry, query string) []Match {
	score, ok := Score(query, e.SearchFields())
	if !ok {
		return matches
	}
	return append(matches, Match{Entry: e, Score: score})
}

func sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Entry.Alias < matches[j].Entry.Alias
	})
}
