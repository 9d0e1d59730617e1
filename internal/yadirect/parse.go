package yadirect

import (
	"regexp"
	"strings"

	"copyhub/internal/llmtext"
)

// Ad is one Yandex.Direct text ad.
type Ad struct {
	Title string `json:"title"`
	Body  string `json:"text"`
}

var (
	// Labels start a line or follow a non-letter, so "Контекст:" is not a body label.
	// Submatch 1 is the label itself.
	titleLabel = regexp.MustCompile(`(?im)(?:^|[^\p{L}\p{N}*_])([*_]*(?:Заголовок|Title)[*_]*[ \t]*[:：][*_]*)`)
	bodyLabel  = regexp.MustCompile(`(?im)(?:^|[^\p{L}\p{N}*_])([*_]*(?:Текст(?:[ \t]+объявления)?|Body|Text)[*_]*[ \t]*[:：][*_]*)`)
	// lengthNote matches a trailing "(45 символов)" style annotation.
	lengthNote = regexp.MustCompile(`(?i)\s*[(\[]\s*\d+\s*(?:символ\p{L}*|знак\p{L}*|chars?|characters)\s*[)\]]\s*$`)
)

// ParseGenerationResponse extracts every well-formed ad from a generator reply.
// A refusal before the first variant or after the last ad yields nothing;
// refused variants are skipped.
func ParseGenerationResponse(raw string) []Ad {
	if llmtext.IsRefusal(llmtext.Preamble(raw)) {
		return nil
	}
	segments := llmtext.SplitVariants(raw)
	var ads []Ad
	for i, seg := range segments {
		ad, end, ok := extractAd(seg, false)
		if !ok {
			continue
		}
		if i == len(segments)-1 && llmtext.IsRefusal(seg[end:]) {
			return nil
		}
		if llmtext.IsRefusal(ad.Title + " " + ad.Body) {
			continue
		}
		ads = append(ads, ad)
	}
	return ads
}

// ParseRefinementResponse extracts the single corrected ad from a refinement
// reply. The body is limited to its first line.
func ParseRefinementResponse(raw string) (Ad, bool) {
	if llmtext.IsRefusal(raw) {
		return Ad{}, false
	}
	segments := llmtext.SplitVariants(raw)
	if len(segments) == 0 {
		return Ad{}, false
	}
	ad, _, ok := extractAd(segments[0], true)
	return ad, ok
}

// labelIndex returns the bounds of the first label match in s at or after from.
func labelIndex(re *regexp.Regexp, s string, from int) []int {
	m := re.FindStringSubmatchIndex(s[from:])
	if m == nil {
		return nil
	}
	return []int{m[2] + from, m[3] + from}
}

// extractAd also reports the offset in seg where the consumed ad text ends.
func extractAd(seg string, firstLineBody bool) (Ad, int, bool) {
	tl := labelIndex(titleLabel, seg, 0)
	if tl == nil {
		return Ad{}, 0, false
	}
	bl := labelIndex(bodyLabel, seg, tl[1])
	if bl == nil {
		bl = labelIndex(bodyLabel, seg, 0)
	}
	if bl == nil {
		return Ad{}, 0, false
	}

	titleEnd := len(seg)
	if bl[0] >= tl[1] {
		titleEnd = bl[0]
	}
	title := firstLine(seg[tl[1]:titleEnd])

	rest := seg[bl[1]:]
	end := len(seg)
	if bl[0] < tl[0] {
		rest = seg[bl[1]:tl[0]]
	}
	var body string
	if firstLineBody {
		body = firstLine(rest)
	} else {
		var n int
		body, n = untilBlankLine(rest)
		if bl[0] >= tl[0] {
			end = bl[1] + n
		}
	}

	ad := Ad{Title: cleanValue(title), Body: cleanValue(body)}
	if ad.Title == "" || ad.Body == "" {
		return Ad{}, 0, false
	}
	return ad, end, true
}

// firstLine returns the first non-blank line of s.
func firstLine(s string) string {
	for _, ln := range strings.Split(s, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			return ln
		}
	}
	return ""
}

// untilBlankLine joins the lines of s up to the first blank line after some
// content. It also returns how many bytes of s were consumed.
func untilBlankLine(s string) (string, int) {
	var lines []string
	pos := 0
	for _, ln := range strings.Split(s, "\n") {
		next := pos + len(ln) + 1
		ln = strings.TrimSpace(ln)
		if ln == "" {
			if len(lines) > 0 {
				break
			}
			pos = next
			continue
		}
		lines = append(lines, ln)
		pos = next
	}
	if pos > len(s) {
		pos = len(s)
	}
	return strings.Join(lines, " "), pos
}

func cleanValue(s string) string {
	s = llmtext.CollapseSpaces(s)
	s = lengthNote.ReplaceAllString(s, "")
	return llmtext.TrimWrapping(s)
}
