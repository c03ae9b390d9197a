package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityScorerExactReferenceMatch(t *testing.T) {
	scorer := NewQualityScorer(nil)

	result := scorer.Verify("Sign In", "Iniciar Sesión", "Spanish")
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.HasReference)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, StatusExcellent, result.Status())

	assert.Equal(t, 100, scorer.Verify("Sign In", "  iniciar sesión ", "Spanish").Score)
	assert.Equal(t, 100, scorer.Verify("Sign In", "Acceder", "Spanish").Score)
}

func TestQualityScorerCloseReferenceMatch(t *testing.T) {
	scorer := NewQualityScorer(nil)

	result := scorer.Verify("Sign In", "Iniciar sesion", "Spanish")
	assert.Equal(t, 93, result.Score)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, StatusExcellent, result.Status())
}

func TestQualityScorerSuggestsClosestReference(t *testing.T) {
	scorer := NewQualityScorer(nil)

	result := scorer.Verify("Sign In", "Entrada", "Spanish")
	assert.Equal(t, 77, result.Score)
	assert.Equal(t, StatusGood, result.Status())
	assert.Equal(t, []string{
		`Consider using: "Entrar"`,
		"Alternative translations: Iniciar Sesión, Acceder, Entrar",
	}, result.Suggestions)
}

func TestQualityScorerHeuristicPath(t *testing.T) {
	scorer := NewQualityScorer(nil)

	unknown := scorer.Verify("Hello", "Hallo", "Klingon")
	assert.False(t, unknown.HasReference)
	assert.Equal(t, 85, unknown.Score)

	german := scorer.Verify("Ok", "Größe", "German")
	assert.Equal(t, 78, german.Score)
	assert.Equal(t, StatusGood, german.Status())
	assert.Contains(t, german.Suggestions, "Translation length differs significantly from the original")

	capped := scorer.Verify("Information", "Información", "Spanish")
	assert.Equal(t, 85, capped.Score)
}

func TestQualityScorerOverrides(t *testing.T) {
	scorer := NewQualityScorer(nil)

	empty := scorer.Verify("X", "", "Spanish")
	assert.Equal(t, 0, empty.Score)
	assert.Equal(t, []string{"Translation is empty"}, empty.Suggestions)

	blank := scorer.Verify("Sign In", "   ", "Spanish")
	assert.Equal(t, 0, blank.Score)

	same := scorer.Verify("X", "X", "Spanish")
	assert.Equal(t, 10, same.Score)
	assert.Equal(t, StatusNeedsImprovement, same.Status())

	dict := DefaultDictionary()
	dict.Translations["Italian"]["X"] = "X"
	withReference := NewQualityScorer(dict).Verify("X", "X", "Italian")
	assert.True(t, withReference.HasReference)
	assert.Equal(t, 10, withReference.Score)
}

func TestQualityScorerIsDeterministic(t *testing.T) {
	scorer := NewQualityScorer(nil)
	first := scorer.Verify("Settings", "Configuracion", "Spanish")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, scorer.Verify("Settings", "Configuracion", "Spanish"))
	}
}

func TestScoreStatusBoundaries(t *testing.T) {
	assert.Equal(t, StatusExcellent, ScoreStatus(90))
	assert.Equal(t, StatusGood, ScoreStatus(89))
	assert.Equal(t, StatusGood, ScoreStatus(70))
	assert.Equal(t, StatusNeedsImprovement, ScoreStatus(69))
}

func TestSimilarityRatio(t *testing.T) {
	assert.Equal(t, 1.0, symmetricSimilarity("abcd", "abcd"))
	assert.Equal(t, 0.0, symmetricSimilarity("abc", "xyz"))
	assert.InDelta(t, 0.75, symmetricSimilarity("hola", "holá"), 1e-9)
	assert.Equal(t, 1.0, symmetricSimilarity("", ""))
}
