package yadirect

import (
	"strings"
	"testing"

	"copyhub/internal/domain"
	"copyhub/internal/llmtext"
)

func sampleInput() domain.CampaignInput {
	return domain.CampaignInput{
		Product:  "Онлайн-школа английского",
		Audience: "Взрослые 25-40 лет",
		Keywords: "курсы английского, english online",
		USP:      "первый урок бесплатно",
		Tone:     domain.ToneFriendly,
		Count:    3,
	}
}

func TestBuildGenerationPrompt(t *testing.T) {
	t.Parallel()
	prompt := BuildGenerationPrompt(sampleInput())
	for _, want := range []string{
		"создай 3 реалистичных объявлений",
		"Продукт/услуга: Онлайн-школа английского",
		"Целевая аудитория: Взрослые 25-40 лет",
		"Ключевые слова: курсы английского, english online",
		"УТП: первый урок бесплатно",
		"Тональность: дружеской",
		"Заголовок до 56 символов",
		"Текст объявления до 81 символа",
		"ВАРИАНТ N:\nЗаголовок: [заголовок]\nТекст: [текст объявления]",
		"Создай ровно 3 вариантов",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("generation prompt missing %q", want)
		}
	}

	in := sampleInput()
	in.USP = ""
	in.Tone = "unknown"
	prompt = BuildGenerationPrompt(in)
	if strings.Contains(prompt, "УТП:") {
		t.Errorf("prompt mentions USP when none given")
	}
	if !strings.Contains(prompt, "Тональность: нейтральной") {
		t.Errorf("unknown tone should fall back to neutral wording")
	}
}

func TestPromptLengthExamples(t *testing.T) {
	t.Parallel()
	if n := llmtext.Len(exampleTitleOK); n > MaxTitleLength {
		t.Fatalf("acceptable title example has %d characters", n)
	}
	if n := llmtext.Len(exampleTitleLong); n <= MaxTitleLength {
		t.Fatalf("overlong title example has only %d characters", n)
	}
	if n := llmtext.Len(exampleBodyOK); n > MaxBodyLength {
		t.Fatalf("acceptable body example has %d characters", n)
	}
	if n := llmtext.Len(exampleBodyLong); n <= MaxBodyLength {
		t.Fatalf("overlong body example has only %d characters", n)
	}
}

func TestBuildRefinementPrompt(t *testing.T) {
	t.Parallel()
	title := strings.Repeat("курс ", 12)
	issues := []string{"Заголовок слишком длинный: 60 символов (максимум 56)", "Отсутствует призыв к действию (CTA)"}
	prompt := BuildRefinementPrompt(title, "Учим английскому", issues, sampleInput())
	for _, want := range []string{
		"Заголовок: " + title,
		"Текст: Учим английскому",
		"1. Заголовок слишком длинный: 60 символов (максимум 56)\n2. Отсутствует призыв к действию (CTA)",
		"1. Заголовок СТРОГО до 56 символов (сейчас 60",
		"2. Текст СТРОГО до 81 символа (сейчас 16",
		"3. ОБЯЗАТЕЛЬНО включи ключевое слово: курсы английского",
		"4. ОБЯЗАТЕЛЬНО добавь один призыв к действию: закажи, узнай, получи, запишись",
		"5. ОБЯЗАТЕЛЬНО упомяни УТП: первый урок бесплатно",
		"ФОРМАТ ОТВЕТА",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("refinement prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "ВАРИАНТ") {
		t.Errorf("refinement prompt must not ask for variant markers")
	}
}

func TestBuildRefinementPromptWithoutKeywordsOrUSP(t *testing.T) {
	t.Parallel()
	in := sampleInput()
	in.Keywords = ""
	in.USP = ""
	prompt := BuildRefinementPrompt("А", "Б", nil, in)
	if strings.Contains(prompt, "ключевое слово") || strings.Contains(prompt, "УТП") {
		t.Fatalf("unexpected keyword or USP requirement:\n%s", prompt)
	}
	if !strings.Contains(prompt, "3. ОБЯЗАТЕЛЬНО добавь один призыв к действию") {
		t.Fatalf("CTA requirement should be renumbered:\n%s", prompt)
	}
	if strings.Contains(prompt, "ПРОБЛЕМЫ") {
		t.Fatalf("issues section rendered without issues")
	}
}
