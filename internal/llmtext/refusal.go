package llmtext

import "strings"

// refusalPhrases are stored already folded.
var refusalPhrases = []string{
	"я не могу обсуждать эту тему",
	"в интернете есть много сайтов с информацией на эту тему",
	"не могу помочь с этим",
	"не могу выполнить этот запрос",
	"не могу выполнить эту просьбу",
	"я не могу создать",
	"я не могу сгенерировать",
	"я не могу написать",
	"к сожалению, я не могу",
	"извините, я не могу",
	"давайте поговорим о чем-нибудь еще",
	"i can't help with",
	"i cannot help with",
	"i can't assist",
	"i cannot assist",
	"i'm unable to",
	"i am unable to",
	"i won't be able to",
}

// IsRefusal reports whether the text contains a known model refusal phrase.
func IsRefusal(text string) bool {
	folded := Fold(strings.ReplaceAll(text, "’", "'"))
	if strings.TrimSpace(folded) == "" {
		return false
	}
	for _, p := range refusalPhrases {
		if strings.Contains(folded, p) {
			return true
		}
	}
	return false
}
