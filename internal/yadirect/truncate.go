package yadirect

import (
	"regexp"
	"strings"
	"unicode"

	"copyhub/internal/llmtext"
)

// minTruncatedLength is the shortest sentence or word cut worth keeping.
const minTruncatedLength = 10

const ellipsis = "..."

var sentenceEnd = regexp.MustCompile(`[.!?…]+\s+`)

// TruncateToLimit shortens text to at most limit characters. Whole sentences are
// preferred, then whole words, then a hard cut ending in "...". Text that
// already fits is returned unchanged.
func TruncateToLimit(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if llmtext.Len(text) <= limit {
		return text
	}
	if cut := fitParts(sentences(text), limit); llmtext.Len(cut) >= minTruncatedLength {
		return cut
	}
	if cut := fitParts(strings.Fields(text), limit); llmtext.Len(cut) >= minTruncatedLength {
		return cut
	}
	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)
	if len(runes) <= limit {
		return trimmed
	}
	if limit <= len(ellipsis) {
		return string(runes[:limit])
	}
	head := strings.TrimRightFunc(string(runes[:limit-len(ellipsis)]), unicode.IsSpace)
	return head + ellipsis
}

func sentences(text string) []string {
	text = strings.TrimSpace(text)
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start:loc[1]]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// fitParts joins leading parts with single spaces while the result fits limit.
func fitParts(parts []string, limit int) string {
	var b strings.Builder
	n := 0
	for _, p := range parts {
		pl := llmtext.Len(p)
		need := pl
		if n > 0 {
			need++
		}
		if n+need > limit {
			break
		}
		if n > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
		n += need
	}
	return b.String()
}
