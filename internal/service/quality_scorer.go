package service

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Verification status labels derived from a score.
const (
	StatusExcellent        = "excellent"
	StatusGood             = "good"
	StatusNeedsImprovement = "needs_improvement"
)

const (
	referenceSuggestionThreshold = 90
	heuristicBase                = 50
	heuristicChangedBonus        = 20
	heuristicLengthBonus         = 15
	heuristicDiacriticBonus      = 8
	heuristicSuffixBonus         = 7
	heuristicCeiling             = 85
	sameAsOriginalScore          = 10
)

// languageSignals are cues that text is written in a given language.
type languageSignals struct {
	diacritics string
	suffixes   []string
}

var defaultSignals = map[string]languageSignals{
	"Spanish":    {diacritics: "áéíóúñü¿¡", suffixes: []string{"ción", "dad", "mente", "ar", "er", "ir", "os", "as"}},
	"French":     {diacritics: "àâçéèêëîïôûùüÿœ", suffixes: []string{"tion", "ment", "eur", "euse", "er", "ez", "é"}},
	"German":     {diacritics: "äöüß", suffixes: []string{"ung", "heit", "keit", "lich", "en", "er"}},
	"Portuguese": {diacritics: "ãõáâàéêíóôúç", suffixes: []string{"ção", "ões", "mente", "dade", "ar", "ir"}},
	"Italian":    {diacritics: "àèéìòù", suffixes: []string{"zione", "mente", "tà", "are", "ere", "ire"}},
	"Indonesian": {suffixes: []string{"kan", "an", "nya", "lah", "kah"}},
}

// Verification is the result of scoring one candidate translation.
type Verification struct {
	Score        int
	Suggestions  []string
	HasReference bool
}

// Status is the label derived from Score.
func (v Verification) Status() string {
	return ScoreStatus(v.Score)
}

// ScoreStatus classifies a 0..100 score.
func ScoreStatus(score int) string {
	switch {
	case score >= 90:
		return StatusExcellent
	case score >= 70:
		return StatusGood
	default:
		return StatusNeedsImprovement
	}
}

// QualityScorer rates candidate translations against reference variants, or against
// language heuristics when no reference is known. It has no side effects.
type QualityScorer struct {
	dict    *Dictionary
	signals map[string]languageSignals
}

// NewQualityScorer builds a scorer over dict, falling back to the built-in tables.
func NewQualityScorer(dict *Dictionary) *QualityScorer {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &QualityScorer{dict: dict, signals: defaultSignals}
}

// Verify scores candidate as a translation of original into targetLanguageName.
func (s *QualityScorer) Verify(original, candidate, targetLanguageName string) Verification {
	var result Verification
	if variants := s.dict.ReferenceVariants(strings.TrimSpace(original), targetLanguageName); len(variants) > 0 {
		result = scoreAgainstReferences(candidate, variants)
	} else {
		result = s.scoreHeuristically(original, candidate, targetLanguageName)
	}

	switch {
	case strings.TrimSpace(candidate) == "":
		result.Score = 0
		result.Suggestions = []string{"Translation is empty"}
	case strings.TrimSpace(candidate) == strings.TrimSpace(original):
		result.Score = sameAsOriginalScore
		result.Suggestions = []string{"Translation is the same as the original text"}
	}
	return result
}

func scoreAgainstReferences(candidate string, variants []string) Verification {
	result := Verification{HasReference: true, Suggestions: []string{}}
	normalized := normalizeForCompare(candidate)

	best, closest := 0.0, variants[0]
	for _, variant := range variants {
		ref := normalizeForCompare(variant)
		if ref == normalized {
			result.Score = 100
			return result
		}
		if ratio := symmetricSimilarity(normalized, ref); ratio > best {
			best, closest = ratio, variant
		}
	}

	result.Score = int(math.Round(best * 100))
	if result.Score < referenceSuggestionThreshold {
		result.Suggestions = append(result.Suggestions, fmt.Sprintf("Consider using: %q", closest))
		if len(variants) > 1 {
			result.Suggestions = append(result.Suggestions, "Alternative translations: "+strings.Join(variants, ", "))
		}
	}
	return result
}

func (s *QualityScorer) scoreHeuristically(original, candidate, language string) Verification {
	result := Verification{Suggestions: []string{}}
	score := heuristicBase
	if candidate != original {
		score += heuristicChangedBonus
	}

	denominator := utf8Len(original)
	if denominator < 1 {
		denominator = 1
	}
	ratio := float64(utf8Len(candidate)) / float64(denominator)
	if ratio >= 0.5 && ratio <= 2.0 {
		score += heuristicLengthBonus
	} else {
		result.Suggestions = append(result.Suggestions, "Translation length differs significantly from the original")
	}

	if signals, ok := s.signals[language]; ok {
		lower := strings.ToLower(norm.NFC.String(candidate))
		if signals.diacritics != "" && strings.ContainsAny(lower, signals.diacritics) {
			score += heuristicDiacriticBonus
		}
		if hasSuffix(lower, signals.suffixes) {
			score += heuristicSuffixBonus
		}
	}

	if score > heuristicCeiling {
		score = heuristicCeiling
	}
	result.Score = score
	if language == "" {
		language = "the target language"
	}
	result.Suggestions = append(result.Suggestions, fmt.Sprintf("No reference translation available for %s; review manually", language))
	return result
}

func hasSuffix(text string, suffixes []string) bool {
	for _, word := range wordPattern.FindAllString(text, -1) {
		for _, suffix := range suffixes {
			if len(word) > len(suffix) && strings.HasSuffix(word, suffix) {
				return true
			}
		}
	}
	return false
}

func normalizeForCompare(text string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(text)))
}

func utf8Len(text string) int {
	return len([]rune(text))
}
