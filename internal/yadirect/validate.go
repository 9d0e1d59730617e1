package yadirect

import (
	"fmt"
	"strings"
	"unicode"

	"copyhub/internal/llmtext"
)

// Hard limits enforced by Yandex.Direct for text ads.
const (
	MaxTitleLength = 56
	MaxBodyLength  = 81
	MaxWordLength  = 23
)

// ValidationStats carries the measurements the UI shows next to each ad.
type ValidationStats struct {
	TitleLength int  `json:"titleLength"`
	BodyLength  int  `json:"textLength"`
	LongestWord int  `json:"longestWord"`
	HasKeywords bool `json:"hasKeywords"`
	HasCTA      bool `json:"hasCTA"`
	HasUSP      bool `json:"hasUSP"`
}

// ValidationResult reports hard errors and advisory warnings for one ad.
// IsValid only depends on Errors.
type ValidationResult struct {
	IsValid  bool            `json:"isValid"`
	Errors   []string        `json:"errors"`
	Warnings []string        `json:"warnings"`
	Stats    ValidationStats `json:"stats"`
}

// Issues returns errors followed by warnings.
func (r ValidationResult) Issues() []string {
	out := make([]string, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	return append(out, r.Warnings...)
}

// Validator checks ads against a fixed lexicon. It is safe for concurrent use.
type Validator struct {
	profanity []phrase
	claims    []phrase
	cta       []phrase
}

// NewValidator folds the lexicon once so every Validate call reuses it.
func NewValidator(lex Lexicon) *Validator {
	return &Validator{
		profanity: foldPhrases(lex.Profanity),
		claims:    foldPhrases(lex.Claims),
		cta:       foldPhrases(lex.CTA),
	}
}

var defaultValidator = NewValidator(defaultLexicon)

// Validate checks an ad with the built-in lexicon.
func Validate(title, body, keywords, usp string) ValidationResult {
	return defaultValidator.Validate(title, body, keywords, usp)
}

// Validate applies the length, vocabulary, keyword, CTA and USP rules in that order.
func (v *Validator) Validate(title, body, keywords, usp string) ValidationResult {
	res := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}
	res.Stats.TitleLength = llmtext.Len(title)
	res.Stats.BodyLength = llmtext.Len(body)

	if res.Stats.TitleLength > MaxTitleLength {
		res.Errors = append(res.Errors, fmt.Sprintf("Заголовок слишком длинный: %d символов (максимум %d)", res.Stats.TitleLength, MaxTitleLength))
	}
	if res.Stats.BodyLength > MaxBodyLength {
		res.Errors = append(res.Errors, fmt.Sprintf("Текст слишком длинный: %d символов (максимум %d)", res.Stats.BodyLength, MaxBodyLength))
	}

	res.Stats.LongestWord = longestWord(title + " " + body)
	if res.Stats.LongestWord > MaxWordLength {
		res.Errors = append(res.Errors, fmt.Sprintf("Слово длиннее %d символов (%d симв.)", MaxWordLength, res.Stats.LongestWord))
	}

	text := llmtext.Fold(title + " " + body)

	if _, ok := firstMatch(text, v.profanity); ok {
		res.Errors = append(res.Errors, "Обнаружена ненормативная лексика")
	}
	if p, ok := firstMatch(text, v.claims); ok {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Потенциально запрещённое утверждение: %q", p.raw))
	}

	candidates := keywordCandidates(keywords)
	res.Stats.HasKeywords = coversKeywords(text, candidates)
	if len(candidates) > 0 && !res.Stats.HasKeywords {
		res.Warnings = append(res.Warnings, "Ключевые слова не найдены в тексте")
	}

	_, res.Stats.HasCTA = firstMatch(text, v.cta)
	if !res.Stats.HasCTA {
		res.Warnings = append(res.Warnings, "Отсутствует призыв к действию (CTA)")
	}

	res.Stats.HasUSP = true
	if strings.TrimSpace(usp) != "" {
		res.Stats.HasUSP = reflectsUSP(text, usp)
		if !res.Stats.HasUSP {
			res.Warnings = append(res.Warnings, "УТП не отражено в тексте объявления")
		}
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

func longestWord(text string) int {
	longest := 0
	for _, w := range strings.Fields(text) {
		w = strings.TrimRight(w, ".,!?;:")
		if n := llmtext.Len(w); n > longest {
			longest = n
		}
	}
	return longest
}

// keywordStopwords are dropped when a multi-word phrase is split into words.
var keywordStopwords = map[string]bool{
	"для": true, "при": true, "без": true, "над": true, "под": true,
	"или": true, "как": true, "что": true, "это": true, "все": true,
}

// SplitKeywords splits the keyword field into trimmed phrases on commas and semicolons.
func SplitKeywords(keywords string) []string {
	parts := strings.FieldsFunc(keywords, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = llmtext.CollapseSpaces(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// keywordCandidates returns every folded phrase followed by the significant
// words of multi-word phrases.
func keywordCandidates(keywords string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	phrases := SplitKeywords(llmtext.Fold(keywords))
	for _, p := range phrases {
		add(p)
	}
	for _, p := range phrases {
		words := strings.Fields(p)
		if len(words) < 2 {
			continue
		}
		for _, w := range words {
			if llmtext.Len(w) >= minStemLength && !keywordStopwords[w] {
				add(w)
			}
		}
	}
	return out
}

func tokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func coversKeywords(text string, candidates []string) bool {
	var stems []string
	for _, tok := range tokens(text) {
		stems = append(stems, Stem(tok))
	}
	for _, kw := range candidates {
		if strings.Contains(text, kw) {
			return true
		}
		if strings.ContainsRune(kw, ' ') {
			continue
		}
		ks := Stem(kw)
		if llmtext.Len(ks) >= minStemLength && strings.Contains(text, ks) {
			return true
		}
		for _, ts := range stems {
			if sharesStem(ts, ks) {
				return true
			}
		}
	}
	return false
}

func sharesStem(a, b string) bool {
	short, long := a, b
	if llmtext.Len(short) > llmtext.Len(long) {
		short, long = long, short
	}
	return llmtext.Len(short) >= minStemLength && strings.HasPrefix(long, short)
}

func reflectsUSP(text, usp string) bool {
	for _, w := range strings.Fields(llmtext.Fold(usp)) {
		w = strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		if llmtext.Len(w) > 3 && strings.Contains(text, w) {
			return true
		}
	}
	return false
}
