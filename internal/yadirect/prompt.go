package yadirect

import (
	"fmt"
	"strings"

	"copyhub/internal/domain"
	"copyhub/internal/llmtext"
)

var toneWording = map[domain.Tone]string{
	domain.ToneNeutral:   "нейтральной",
	domain.ToneFriendly:  "дружеской",
	domain.ToneExpert:    "экспертной",
	domain.ToneEmotional: "эмоциональной",
}

// Length examples shown to the model. Counts are computed when the prompt is built.
const (
	exampleTitleOK   = "Курсы английского онлайн со скидкой 20%"
	exampleTitleLong = "Лучшие в городе курсы разговорного английского языка для взрослых и детей"
	exampleBodyOK    = "Занятия с носителем языка. Первый урок бесплатно. Запишитесь сегодня!"
	exampleBodyLong  = "Мы предлагаем уникальные занятия с опытными преподавателями-носителями языка по авторской методике в удобное для вас время"
)

// refinementCTAs are the call-to-action verbs suggested in correction prompts.
var refinementCTAs = []string{"закажи", "узнай", "получи", "запишись"}

// BuildGenerationPrompt renders the instruction for the first generation call.
func BuildGenerationPrompt(in domain.CampaignInput) string {
	tone, ok := toneWording[in.Tone]
	if !ok {
		tone = toneWording[domain.ToneNeutral]
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "Ты русскоязычный копирайтер по контекстной рекламе. На основе следующих данных создай %d реалистичных объявлений для Яндекс.Директ.\n\n", in.Count)
	fmt.Fprintf(b, "Продукт/услуга: %s\n", in.Product)
	fmt.Fprintf(b, "Целевая аудитория: %s\n", in.Audience)
	fmt.Fprintf(b, "Ключевые слова: %s\n", in.Keywords)
	if in.USP != "" {
		fmt.Fprintf(b, "УТП: %s\n", in.USP)
	}
	fmt.Fprintf(b, "Тональность: %s\n\n", tone)

	b.WriteString("Требования:\n")
	fmt.Fprintf(b, "- Заголовок до %d символов, считая пробелы и знаки препинания\n", MaxTitleLength)
	fmt.Fprintf(b, "- Текст объявления до %d символа, считая пробелы и знаки препинания\n", MaxBodyLength)
	fmt.Fprintf(b, "- Ни одного слова длиннее %d символов\n", MaxWordLength)
	b.WriteString("- Используй ключевые слова естественно\n")
	fmt.Fprintf(b, "- Добавь призыв к действию, например: %s\n", strings.Join(refinementCTAs, ", "))
	b.WriteString("- Без превосходных степеней и обещаний гарантий\n")
	b.WriteString("- Учитывай особенности аудитории\n\n")

	b.WriteString("Примеры длины:\n")
	fmt.Fprintf(b, "Подходящий заголовок (%d символов): %s\n", llmtext.Len(exampleTitleOK), exampleTitleOK)
	fmt.Fprintf(b, "Слишком длинный заголовок (%d символов): %s\n", llmtext.Len(exampleTitleLong), exampleTitleLong)
	fmt.Fprintf(b, "Подходящий текст (%d символов): %s\n", llmtext.Len(exampleBodyOK), exampleBodyOK)
	fmt.Fprintf(b, "Слишком длинный текст (%d символов): %s\n\n", llmtext.Len(exampleBodyLong), exampleBodyLong)

	b.WriteString("Формат ответа для каждого варианта:\n")
	b.WriteString("ВАРИАНТ N:\n")
	b.WriteString("Заголовок: [заголовок]\n")
	b.WriteString("Текст: [текст объявления]\n\n")
	fmt.Fprintf(b, "Создай ровно %d вариантов. Не добавляй пояснений и подсчёта символов.", in.Count)
	return b.String()
}

// BuildRefinementPrompt asks the model to fix one ad. Issues are listed in the
// given order and the current lengths are echoed next to the limits.
func BuildRefinementPrompt(title, body string, issues []string, in domain.CampaignInput) string {
	b := &strings.Builder{}
	b.WriteString("ЗАДАЧА: Исправь объявление Яндекс.Директ, устранив ВСЕ указанные проблемы.\n\n")
	b.WriteString("ТЕКУЩЕЕ ОБЪЯВЛЕНИЕ:\n")
	fmt.Fprintf(b, "Заголовок: %s\n", title)
	fmt.Fprintf(b, "Текст: %s\n\n", body)

	if len(issues) > 0 {
		b.WriteString("ПРОБЛЕМЫ (ОБЯЗАТЕЛЬНО ИСПРАВИТЬ):\n")
		for i, issue := range issues {
			fmt.Fprintf(b, "%d. %s\n", i+1, issue)
		}
		b.WriteString("\n")
	}

	b.WriteString("ЖЁСТКИЕ ТРЕБОВАНИЯ:\n")
	n := 0
	item := func(format string, args ...any) {
		n++
		fmt.Fprintf(b, "%d. "+format+"\n", append([]any{n}, args...)...)
	}
	item("Заголовок СТРОГО до %d символов (сейчас %d, считай символы!)", MaxTitleLength, llmtext.Len(title))
	item("Текст СТРОГО до %d символа (сейчас %d, считай символы!)", MaxBodyLength, llmtext.Len(body))
	if kws := SplitKeywords(in.Keywords); len(kws) > 0 {
		item("ОБЯЗАТЕЛЬНО включи ключевое слово: %s", kws[0])
	}
	item("ОБЯЗАТЕЛЬНО добавь один призыв к действию: %s", strings.Join(refinementCTAs, ", "))
	if in.USP != "" {
		item("ОБЯЗАТЕЛЬНО упомяни УТП: %s", in.USP)
	}

	b.WriteString("\nФОРМАТ ОТВЕТА (ТОЛЬКО ЭТО, БЕЗ ПОЯСНЕНИЙ):\n")
	b.WriteString("Заголовок: [исправленный заголовок]\n")
	b.WriteString("Текст: [исправленный текст]")
	return b.String()
}
