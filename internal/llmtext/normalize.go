// Package llmtext holds helpers for cleaning up free-form generator replies.
package llmtext

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var spaceRun = regexp.MustCompile(`[ \t\x{00A0}]+`)

// Len counts characters the way ad platforms do: one per code point.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// NormalizeModelText unifies line endings and strips a code fence wrapping the whole reply.
func NormalizeModelText(text string) string {
	t := strings.ReplaceAll(text, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")
	t = norm.NFC.String(strings.TrimSpace(t))
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		info := strings.TrimSpace(t[:i])
		if !strings.ContainsAny(info, " :") {
			t = t[i+1:]
		}
	}
	if i := strings.LastIndex(t, "```"); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// Fold lower-cases text with Russian rules, normalises to NFC and maps ё to е.
// A fresh Caser is built per call because cases.Caser is not safe for concurrent use.
func Fold(s string) string {
	s = norm.NFC.String(s)
	s = cases.Lower(language.Russian).String(s)
	return strings.ReplaceAll(s, "ё", "е")
}

// CollapseSpaces squeezes runs of horizontal whitespace into one space and trims the ends.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

var wrapPairs = [][2]string{
	{`"`, `"`},
	{"«", "»"},
	{"“", "”"},
	{"„", "“"},
	{"'", "'"},
	{"[", "]"},
	{"(", ")"},
	{"**", "**"},
	{"*", "*"},
	{"__", "__"},
	{"`", "`"},
}

// TrimWrapping removes quotes, brackets and markdown emphasis enclosing the whole value.
func TrimWrapping(s string) string {
	s = strings.TrimSpace(s)
	for {
		changed := false
		for _, p := range wrapPairs {
			if len(s) >= len(p[0])+len(p[1]) && strings.HasPrefix(s, p[0]) && strings.HasSuffix(s, p[1]) {
				inner := s[len(p[0]) : len(s)-len(p[1])]
				if strings.Contains(inner, p[0]) || strings.Contains(inner, p[1]) {
					continue
				}
				s = strings.TrimSpace(inner)
				changed = true
			}
		}
		if !changed {
			return s
		}
	}
}
