package textgen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"copyhub/internal/domain"
)

func chatCompletionJSON(content string) string {
	payload := map[string]any{
		"id":      "cmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "yandexgpt-lite",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func TestYandexGPTGenerate(t *testing.T) {
	var got map[string]any
	var auth, folder, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		folder = r.Header.Get("x-folder-id")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionJSON("  ВАРИАНТ 1:\nЗаголовок: А\nТекст: Б  ")))
	}))
	defer srv.Close()

	gen := NewYandexGPT(YandexOptions{APIKey: "secret", FolderID: "b1gfolder", BaseURL: srv.URL})
	text, err := gen.Generate(context.Background(), "привет")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if text != "ВАРИАНТ 1:\nЗаголовок: А\nТекст: Б" {
		t.Fatalf("Generate text = %q", text)
	}
	if path != "/chat/completions" {
		t.Fatalf("path = %q, want /chat/completions", path)
	}
	if auth != "Bearer secret" {
		t.Fatalf("Authorization = %q, want %q", auth, "Bearer secret")
	}
	if folder != "b1gfolder" {
		t.Fatalf("x-folder-id = %q, want %q", folder, "b1gfolder")
	}
	if got["model"] != "gpt://b1gfolder/yandexgpt-lite" {
		t.Fatalf("model = %#v", got["model"])
	}
	if got["temperature"] != 0.7 {
		t.Fatalf("temperature = %#v, want 0.7", got["temperature"])
	}
	if got["max_tokens"] != float64(2000) {
		t.Fatalf("max_tokens = %#v, want 2000", got["max_tokens"])
	}
	msgs, ok := got["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("messages = %#v", got["messages"])
	}
	msg, _ := msgs[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "привет" {
		t.Fatalf("message = %#v", msg)
	}
}

func TestYandexGPTUnconfigured(t *testing.T) {
	t.Parallel()
	tests := []YandexOptions{
		{APIKey: "", FolderID: "folder"},
		{APIKey: "key", FolderID: " "},
	}
	for _, opts := range tests {
		gen := NewYandexGPT(opts)
		if gen.Configured() {
			t.Fatalf("Configured() = true for %+v", opts)
		}
		_, err := gen.Generate(context.Background(), "x")
		if !errors.Is(err, domain.ErrGenerationUnavailable) {
			t.Fatalf("Generate error = %v, want ErrGenerationUnavailable", err)
		}
	}
}

func TestYandexGPTStatusErrorIsNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	gen := NewYandexGPT(YandexOptions{APIKey: "k", FolderID: "f", BaseURL: srv.URL})
	_, err := gen.Generate(context.Background(), "x")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("Generate error = %v, want ErrGenerationFailed", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("server hits = %d, want 1", n)
	}
}

func TestYandexGPTEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	gen := NewYandexGPT(YandexOptions{APIKey: "k", FolderID: "f", BaseURL: srv.URL})
	_, err := gen.Generate(context.Background(), "x")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("Generate error = %v, want ErrGenerationFailed", err)
	}
}

func TestModelURI(t *testing.T) {
	t.Parallel()
	if got := ModelURI("f1", "yandexgpt"); got != "gpt://f1/yandexgpt" {
		t.Fatalf("ModelURI = %q", got)
	}
	if got := ModelURI("f1", "gpt://other/yandexgpt/latest"); got != "gpt://other/yandexgpt/latest" {
		t.Fatalf("ModelURI passthrough = %q", got)
	}
}

func TestGeneratorFunc(t *testing.T) {
	t.Parallel()
	var g Generator = GeneratorFunc(func(_ context.Context, p string) (string, error) {
		return "echo:" + p, nil
	})
	out, err := g.Generate(context.Background(), "hi")
	if err != nil || out != "echo:hi" {
		t.Fatalf("Generate = %q, %v", out, err)
	}
}
