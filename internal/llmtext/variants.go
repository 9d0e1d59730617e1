package llmtext

import (
	"regexp"
	"strings"
)

// variantMarker matches "ВАРИАНТ 2:" style headers, optionally wrapped in markdown.
var variantMarker = regexp.MustCompile(`(?im)^[ \t#*_]*(?:ВАРИАНТ|VARIANT)\s*№?\s*\d+\s*[:.)]?[ \t*_]*`)

// SplitVariants cuts a reply into per-variant segments. Text before the first
// marker is discarded. A reply without markers comes back as one segment.
func SplitVariants(text string) []string {
	text = NormalizeModelText(text)
	if text == "" {
		return nil
	}
	locs := variantMarker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}
	segments := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		seg := strings.TrimSpace(text[loc[1]:end])
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// Preamble returns the text before the first variant marker, or the whole
// reply when it has no markers.
func Preamble(text string) string {
	text = NormalizeModelText(text)
	if loc := variantMarker.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[:loc[0]])
	}
	return text
}
