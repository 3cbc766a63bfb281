package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_EmptyCorpus(t *testing.T) {
	v := NewVectorizer(1, 2)
	assert.Error(t, v.Fit(nil))
	assert.Error(t, v.Fit([]string{"a ! ?"}), "single characters are not terms")
}

func TestFit_UnigramsAndBigrams(t *testing.T) {
	v := NewVectorizer(1, 2)
	require.NoError(t, v.Fit([]string{"The notice period", "notice of termination"}))

	for _, term := range []string{"notice", "notice period", "of termination", "the notice"} {
		_, ok := v.vocabulary[term]
		assert.True(t, ok, "missing term %q", term)
	}
	// "notice" appears in both documents, so it carries the minimum idf of 1
	assert.InDelta(t, 1.0, v.idf[v.vocabulary["notice"]], 1e-9)
	assert.InDelta(t, math.Log(3.0/2.0)+1, v.idf[v.vocabulary["period"]], 1e-9)
}

func TestTransform_Normalised(t *testing.T) {
	v := NewVectorizer(1, 2)
	rows, err := v.FitTransform([]string{
		"The tenant shall give notice of termination.",
		"Rent is payable monthly in advance.",
	})
	require.NoError(t, err)

	for i, row := range rows {
		assert.InDelta(t, 1.0, row.Dot(row), 1e-9, "row %d", i)
		assert.IsIncreasing(t, row.Indices)
	}
	assert.Equal(t, 0.0, rows[0].Dot(rows[1]), "rows share no terms")
}

func TestTransform_QueryRanking(t *testing.T) {
	corpus := []string{
		"The tenant shall give notice of termination.",
		"Rent is payable monthly in advance.",
		"The landlord may inspect the premises.",
	}
	v := NewVectorizer(1, 2)
	rows, err := v.FitTransform(corpus)
	require.NoError(t, err)

	q := v.Transform("when is rent payable")
	best, bestScore := -1, -1.0
	for i, row := range rows {
		if s := q.Dot(row); s > bestScore {
			best, bestScore = i, s
		}
	}
	assert.Equal(t, 1, best)
	assert.Greater(t, bestScore, 0.0)
}

func TestTransform_UnknownTerms(t *testing.T) {
	v := NewVectorizer(1, 1)
	require.NoError(t, v.Fit([]string{"contract clause"}))
	q := v.Transform("zebra")
	assert.Empty(t, q.Indices)
	assert.Equal(t, 0.0, q.Dot(v.Transform("contract")))
}

func TestFit_NonASCIITokens(t *testing.T) {
	v := NewVectorizer(1, 1)
	require.NoError(t, v.Fit([]string{
		"Арендатор обязан платить аренду ежемесячно.",
		"Die Verzögerung ist für den Mieter kostenpflichtig.",
	}))

	for _, term := range []string{"арендатор", "ежемесячно", "verzögerung", "für"} {
		_, ok := v.vocabulary[term]
		assert.True(t, ok, "missing term %q", term)
	}
	// accented letters do not split a word
	for _, fragment := range []string{"verz", "gerung"} {
		_, ok := v.vocabulary[fragment]
		assert.False(t, ok, "unexpected fragment %q", fragment)
	}
}

func TestTransform_NonASCIIQueryRanking(t *testing.T) {
	corpus := []string{
		"Арендатор обязан платить аренду ежемесячно.",
		"Арендодатель может расторгнуть договор.",
	}
	v := NewVectorizer(1, 2)
	rows, err := v.FitTransform(corpus)
	require.NoError(t, err)

	q := v.Transform("когда платить аренду")
	assert.Greater(t, q.Dot(rows[0]), 0.0)
	assert.Equal(t, 0.0, q.Dot(rows[1]))
}
