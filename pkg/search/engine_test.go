package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directoryItems() []Item {
	texts := []string{
		"Jan Kowalski Kierownik Referatu Finansowego",
		"Anna Nowak Specjalista ds. Środowiska",
		"Marek Wiśniewski Kierownik Referatu Infrastruktury",
		"Katarzyna Zielińska Inspektor ds. Gospodarki Odpadami",
		"Piotr Lewandowski Architekt Gminny",
		"Referat Gospodarki Komunalnej",
		"Referat Finansowy",
		"Referat Architektury",
		"Referat Infrastruktury",
		"Referat Rozwoju Gospodarczego",
		"Referat Ochrony Środowiska",
	}

	items := make([]Item, 0, len(texts))
	for _, text := range texts {
		items = append(items, Item{Text: text, Ref: text})
	}
	return items
}

func TestScoreIdenticalStrings(t *testing.T) {
	e := NewEngine()
	assert.Equal(t, 100, e.Score("Jan Kowalski", "Jan Kowalski"))
}

func TestScoreDiacriticInsensitive(t *testing.T) {
	e := NewEngine()
	assert.Equal(t, 100, e.Score("smieci", "Śmieci"))
}

func TestScoreEmptyInput(t *testing.T) {
	e := NewEngine()
	assert.Equal(t, 0, e.Score("", "Jan Kowalski"))
	assert.Equal(t, 0, e.Score("Jan", ""))
}

func TestScoreSurnameAgainstFullName(t *testing.T) {
	e := NewEngine()
	assert.GreaterOrEqual(t, e.Score("Kowalski", "Jan Kowalski"), 80)
}

func TestRankSurnameFragment(t *testing.T) {
	e := NewEngine()

	matches := e.Rank("Kowalski", directoryItems())

	require.NotEmpty(t, matches)
	assert.Equal(t, "Jan Kowalski Kierownik Referatu Finansowego", matches[0].Item.Text)
	assert.GreaterOrEqual(t, matches[0].Score, 70)
}

func TestRankTypoTolerant(t *testing.T) {
	e := NewEngine()

	matches := e.Rank("kowalsky", directoryItems())

	require.NotEmpty(t, matches)
	assert.Equal(t, "Jan Kowalski Kierownik Referatu Finansowego", matches[0].Item.Text)
}

func TestRankDiscardsLowScores(t *testing.T) {
	e := NewEngine()

	matches := e.Rank("Kowalski", directoryItems())

	for _, m := range matches {
		assert.Greater(t, m.Score, DefaultMinScore)
	}
}

func TestRankDescendingOrder(t *testing.T) {
	e := NewEngine()

	matches := e.Rank("referat", directoryItems())

	require.NotEmpty(t, matches)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestRankCapsResults(t *testing.T) {
	e := NewEngine()

	items := make([]Item, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, Item{Text: "Referat Gospodarki Komunalnej", Ref: i})
	}

	matches := e.Rank("referat gospodarki", items)
	assert.Len(t, matches, DefaultMaxResults)
}

func TestRankStableOnTies(t *testing.T) {
	e := NewEngine()

	items := []Item{
		{Text: "Referat Finansowy", Ref: 0},
		{Text: "Referat Finansowy", Ref: 1},
		{Text: "Referat Finansowy", Ref: 2},
	}

	matches := e.Rank("finansowy", items)

	require.Len(t, matches, 3)
	for i, m := range matches {
		assert.Equal(t, i, m.Item.Ref)
	}
}

func TestRankShortQuery(t *testing.T) {
	e := NewEngine()

	assert.Nil(t, e.Rank("a", directoryItems()))
	assert.Nil(t, e.Rank("", directoryItems()))
}

func TestRankNoMatches(t *testing.T) {
	e := NewEngine()

	matches := e.Rank("xyzqw", directoryItems())
	assert.Empty(t, matches)
}
