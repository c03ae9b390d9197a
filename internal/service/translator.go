package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MachineTranslationMarker prefixes text the translator could not map.
const MachineTranslationMarker = "[MT] "

// baselineLanguageName is never prefixed with the marker.
const baselineLanguageName = "English"

var wordPattern = regexp.MustCompile(`\p{L}+`)

// Translator derives target-language text from baseline text. Implementations must be
// pure and total.
type Translator interface {
	Translate(text, targetLanguageName string) string
}

// DictionaryTranslator is a lookup-table Translator.
type DictionaryTranslator struct {
	dict *Dictionary
}

// NewDictionaryTranslator builds a translator over dict, falling back to the built-in tables.
func NewDictionaryTranslator(dict *Dictionary) *DictionaryTranslator {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &DictionaryTranslator{dict: dict}
}

// Translate tries a whole-phrase match, then word substitution, then marks the text as
// machine output for non-English targets.
func (t *DictionaryTranslator) Translate(text, targetLanguageName string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	phrases := t.dict.Translations[targetLanguageName]
	if translated, ok := phrases[text]; ok {
		return translated
	}
	if translated, ok := phrases[strings.TrimSpace(text)]; ok {
		return translated
	}

	result := text
	if words := t.dict.Words[targetLanguageName]; len(words) > 0 {
		result = wordPattern.ReplaceAllStringFunc(text, func(word string) string {
			replacement, ok := words[strings.ToLower(word)]
			if !ok {
				return word
			}
			return matchLeadingCase(word, replacement)
		})
	}

	if result == text && targetLanguageName != baselineLanguageName {
		return MachineTranslationMarker + text
	}
	return result
}

func matchLeadingCase(source, replacement string) string {
	first, _ := utf8.DecodeRuneInString(source)
	if !unicode.IsUpper(first) {
		return replacement
	}
	r, size := utf8.DecodeRuneInString(replacement)
	return string(unicode.ToUpper(r)) + replacement[size:]
}
