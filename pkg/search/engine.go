package search

import (
	"math"
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

const (
	// DefaultMinScore is exclusive: candidates scoring at or below it are
	// discarded.
	DefaultMinScore = 40

	DefaultMaxResults = 8

	// MinQueryLength guards against ranking on single characters.
	MinQueryLength = 2
)

// Item is one candidate record with its concatenated searchable text.
type Item struct {
	Text string
	Ref  interface{}
}

type Match struct {
	Item  Item
	Score int
}

// Engine ranks short, typo-prone queries against a small in-memory candidate
// set. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	minScore   int
	maxResults int
}

func NewEngine() *Engine {
	return &Engine{
		minScore:   DefaultMinScore,
		maxResults: DefaultMaxResults,
	}
}

// Score combines four similarity measures on a 0-100 scale:
//
//	0.2*ratio + 0.4*partial + 0.2*tokenSort + 0.2*tokenSet
//
// Partial similarity carries the largest weight because queries are usually a
// fragment of the target string (a surname instead of the full name).
func (e *Engine) Score(query, target string) int {
	q := Normalize(query)
	t := Normalize(target)
	if q == "" || t == "" {
		return 0
	}

	whole := fuzzy.Ratio(q, t)
	partial := fuzzy.PartialRatio(q, t)
	tokenSort := fuzzy.TokenSortRatio(q, t)
	tokenSet := fuzzy.TokenSetRatio(q, t)

	composite := 0.2*float64(whole) +
		0.4*float64(partial) +
		0.2*float64(tokenSort) +
		0.2*float64(tokenSet)

	return int(math.Round(composite))
}

// Rank scores every item, drops those at or below the threshold, sorts by
// score descending and truncates. The sort is stable so ties keep the
// dataset's original iteration order.
func (e *Engine) Rank(query string, items []Item) []Match {
	if len([]rune(query)) < MinQueryLength {
		return nil
	}

	var matches []Match
	for _, item := range items {
		score := e.Score(query, item.Text)
		if score <= e.minScore {
			continue
		}
		matches = append(matches, Match{Item: item, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > e.maxResults {
		matches = matches[:e.maxResults]
	}

	return matches
}
