package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"copyhub/internal/domain"
	"copyhub/internal/providers/textgen"
	"copyhub/internal/yadirect"
)

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, _, err := runRoot(t, "validate",
		"--title", "Курсы английского онлайн",
		"--text", "Первый урок бесплатно. Запишись сегодня!",
		"--keywords", "курс")
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	var res yadirect.ValidationResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if !res.IsValid || !res.Stats.HasCTA {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestValidateCommandInvalid(t *testing.T) {
	_, _, err := runRoot(t, "validate",
		"--title", strings.Repeat("курс ", 12),
		"--text", "Запишись сегодня!",
		"--keywords", "курс")
	if err == nil || !strings.Contains(err.Error(), "Заголовок слишком длинный") {
		t.Fatalf("expected title length error, got %v", err)
	}
}

func TestGenerateCommand(t *testing.T) {
	var prompts []string
	orig := newGenerator
	newGenerator = func(textgen.YandexOptions) textgen.Generator {
		return textgen.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
			prompts = append(prompts, prompt)
			return "ВАРИАНТ 1:\nЗаголовок: Курсы английского онлайн\nТекст: Первый урок бесплатно. Запишись сегодня!", nil
		})
	}
	t.Cleanup(func() { newGenerator = orig })

	brief := filepath.Join(t.TempDir(), "brief.json")
	raw, _ := json.Marshal(domain.CampaignInput{Product: "Курсы", Audience: "Взрослые", Keywords: "курс", Count: 1})
	if err := os.WriteFile(brief, raw, 0o600); err != nil {
		t.Fatalf("write brief: %v", err)
	}

	out, _, err := runRoot(t, "generate", "--brief", brief, "--tone", "friendly")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if len(prompts) != 1 {
		t.Fatalf("generator calls = %d", len(prompts))
	}
	var payload struct {
		Results []yadirect.RefinedAd `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(payload.Results) != 1 || payload.Results[0].Title != "Курсы английского онлайн" {
		t.Fatalf("unexpected results %+v", payload.Results)
	}
}

func TestGenerateCommandRefusal(t *testing.T) {
	orig := newGenerator
	newGenerator = func(textgen.YandexOptions) textgen.Generator {
		return textgen.GeneratorFunc(func(context.Context, string) (string, error) {
			return "Я не могу обсуждать эту тему.", nil
		})
	}
	t.Cleanup(func() { newGenerator = orig })

	_, _, err := runRoot(t, "generate", "--product", "Курсы", "--audience", "Взрослые", "--keywords", "курс")
	if err == nil || !strings.Contains(err.Error(), "отказалась") {
		t.Fatalf("expected refusal error, got %v", err)
	}
}

func TestSetKeyRequiresCredentials(t *testing.T) {
	t.Setenv("YANDEX_CLOUD_API_KEY", "")
	t.Setenv("YANDEX_CLOUD_FOLDER", "")
	if _, _, err := runRoot(t, "set-key", "--key", "abc"); err == nil {
		t.Fatal("expected error without folder")
	}
}

func TestMigrateRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, _, err := runRoot(t, "migrate"); err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected DATABASE_URL error, got %v", err)
	}
}
