// Package yadirect builds, validates and refines Yandex.Direct text ads.
package yadirect

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"copyhub/internal/llmtext"
)

// Lexicon holds the phrase lists the validator scans for. Entries are matched
// as case-insensitive substrings of the ad text.
type Lexicon struct {
	Profanity []string `yaml:"profanity"`
	Claims    []string `yaml:"claims"`
	CTA       []string `yaml:"cta"`
}

var defaultLexicon = Lexicon{
	Profanity: []string{
		"блядь", "сука", "хуй", "пизд", "ебат", "мудак", "дерьмо", "жопа",
		"говно", "залупа", "член", "пидор", "шлюха", "тварь",
	},
	Claims: []string{
		"лучший", "самый", "номер один", "№1", "#1", "единственный",
		"абсолютный", "безусловный", "гарантированный результат",
		"100% гарантия", "мгновенный результат",
	},
	CTA: []string{
		"купи", "закажи", "позвони", "оставь заявку", "узнай", "получи",
		"скачай", "попробуй", "запишись", "оформи", "выбери", "забронируй",
		"подпишись", "зарегистрируйся", "успей", "торопись", "не упусти",
		"переходи", "жми", "кликай", "звони", "пиши",
	},
}

// DefaultLexicon returns a copy of the built-in phrase lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Profanity: append([]string(nil), defaultLexicon.Profanity...),
		Claims:    append([]string(nil), defaultLexicon.Claims...),
		CTA:       append([]string(nil), defaultLexicon.CTA...),
	}
}

// LoadLexicon reads a YAML override file. Lists present in the file replace the
// built-in ones; omitted lists keep their defaults. An empty path yields the defaults.
func LoadLexicon(path string) (Lexicon, error) {
	lex := DefaultLexicon()
	if strings.TrimSpace(path) == "" {
		return lex, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon: %w", err)
	}
	var override Lexicon
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	if len(override.Profanity) > 0 {
		lex.Profanity = override.Profanity
	}
	if len(override.Claims) > 0 {
		lex.Claims = override.Claims
	}
	if len(override.CTA) > 0 {
		lex.CTA = override.CTA
	}
	return lex, nil
}

// phrase keeps the original spelling for messages next to its folded form.
type phrase struct {
	raw    string
	folded string
}

func foldPhrases(list []string) []phrase {
	out := make([]phrase, 0, len(list))
	for _, p := range list {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, phrase{raw: p, folded: llmtext.Fold(p)})
	}
	return out
}

func firstMatch(text string, list []phrase) (phrase, bool) {
	for _, p := range list {
		if strings.Contains(text, p.folded) {
			return p, true
		}
	}
	return phrase{}, false
}
