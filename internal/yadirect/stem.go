package yadirect

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const minStemLength = 3

type suffixRule struct {
	suffix  string
	minStem int
}

// suffixRules is ordered longest suffix first.
var suffixRules = func() []suffixRule {
	verbs := []string{
		"ировать", "ировал", "овать", "евать", "ываться", "иваться",
		"ться", "тся", "ить", "ать", "ять", "еть", "уть",
		"ешь", "ете", "ишь", "ите", "ает", "яет", "ует", "ют", "ут", "ит", "ет", "ат", "ят",
		"ала", "ило", "али", "или", "ал", "ил", "ел",
	}
	nouns := []string{
		"иями", "ями", "ами", "ией", "ием", "иях", "ях", "ах", "ов", "ев", "ей",
		"ого", "его", "ому", "ему", "ыми", "ими", "ых", "их",
		"ой", "ий", "ый", "ая", "яя", "ое", "ее", "ие", "ые", "ую", "юю",
		"ом", "ем", "ам", "ям", "ью",
		"а", "я", "ы", "и", "е", "у", "ю", "о", "ь", "й",
	}
	diminutives := []string{
		"очек", "ечек", "ичек", "онок", "енок", "ушка", "юшка", "ышка", "очка", "ечка", "ишка",
		"очк", "ечк", "ок", "ек", "ик",
	}
	seen := map[string]bool{}
	var rules []suffixRule
	for _, group := range [][]string{verbs, nouns, diminutives} {
		for _, s := range group {
			if seen[s] {
				continue
			}
			seen[s] = true
			rules = append(rules, suffixRule{suffix: s, minStem: minStemLength})
		}
	}
	// Single-letter endings need a longer stem to avoid chopping short roots.
	for i, r := range rules {
		if utf8.RuneCountInString(r.suffix) == 1 {
			rules[i].minStem = minStemLength + 1
		}
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return utf8.RuneCountInString(rules[i].suffix) > utf8.RuneCountInString(rules[j].suffix)
	})
	return rules
}()

// Stem strips the longest matching inflectional suffix from an already folded word.
// The word comes back unchanged when no suffix leaves a long enough stem.
func Stem(word string) string {
	n := utf8.RuneCountInString(word)
	for _, r := range suffixRules {
		if !strings.HasSuffix(word, r.suffix) {
			continue
		}
		if n-utf8.RuneCountInString(r.suffix) >= r.minStem {
			return strings.TrimSuffix(word, r.suffix)
		}
	}
	return word
}
