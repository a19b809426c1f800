package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, LevenshteinDistance("kitten", "kitten"))
	assert.Equal(t, 3, LevenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 5, LevenshteinDistance("", "hello"))
	assert.Equal(t, 5, LevenshteinDistance("hello", ""))
	// normalization makes case irrelevant
	assert.Equal(t, 0, LevenshteinDistance("Hello", "hello"))
}

func TestFuzzyMatch(t *testing.T) {
	assert.True(t, FuzzyMatch("grocer", "buy groceries today", 2))
	assert.True(t, FuzzyMatch("groceries", "buy grocries", 2)) // typo
	assert.False(t, FuzzyMatch("dentist", "buy groceries today", 2))
}

func TestFuzzyMatchTask(t *testing.T) {
	assert.True(t, FuzzyMatchTask("groceries", "Buy groceries", ""))
	assert.True(t, FuzzyMatchTask("groceries", "Weekend errands", "pick up groceries and gas"))
	assert.True(t, FuzzyMatchTask("grocteries", "Buy groceries", "")) // typo tolerated
	assert.False(t, FuzzyMatchTask("dentist", "Buy groceries", "and some fruit"))
}

func TestCalculateRelevanceScore_TitleBeatsDescription(t *testing.T) {
	titleHit := CalculateRelevanceScore("groceries", "Buy groceries", "")
	descHit := CalculateRelevanceScore("groceries", "Errands", "buy groceries")

	assert.Greater(t, titleHit, descHit)
	assert.Greater(t, descHit, 0.0)
}

func TestCalculateRelevanceScore_NoMatchIsZero(t *testing.T) {
	assert.Equal(t, 0.0, CalculateRelevanceScore("xyzzy", "Buy groceries", "weekly shop"))
}
