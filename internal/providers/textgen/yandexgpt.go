package textgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"copyhub/internal/domain"
)

const (
	DefaultYandexBaseURL = "https://llm.api.cloud.yandex.net/foundationModels/v1"
	DefaultYandexModel   = "yandexgpt-lite"

	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
	defaultTimeout     = 60 * time.Second
)

type YandexOptions struct {
	APIKey      string
	FolderID    string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// YandexGPT calls the OpenAI-compatible YandexGPT endpoint. SDK retries are
// disabled; callers decide whether to ask again.
type YandexGPT struct {
	client      openai.Client
	modelURI    string
	temperature float64
	maxTokens   int64
	timeout     time.Duration
	configured  bool
}

func NewYandexGPT(opts YandexOptions) *YandexGPT {
	apiKey := strings.TrimSpace(opts.APIKey)
	folder := strings.TrimSpace(opts.FolderID)
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultYandexModel
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultYandexBaseURL
	}
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL + "/"),
		option.WithMaxRetries(0),
	}
	if folder != "" {
		reqOpts = append(reqOpts, option.WithHeader("x-folder-id", folder))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	return &YandexGPT{
		client:      openai.NewClient(reqOpts...),
		modelURI:    ModelURI(folder, model),
		temperature: temperature,
		maxTokens:   int64(maxTokens),
		timeout:     timeout,
		configured:  apiKey != "" && folder != "",
	}
}

// ModelURI builds the gpt://<folder>/<model> identifier. Fully qualified
// model URIs are returned as is.
func ModelURI(folder, model string) string {
	if strings.HasPrefix(model, "gpt://") {
		return model
	}
	return fmt.Sprintf("gpt://%s/%s", folder, model)
}

// Configured reports whether both the API key and the folder are set.
func (y *YandexGPT) Configured() bool {
	return y != nil && y.configured
}

func (y *YandexGPT) Generate(ctx context.Context, prompt string) (string, error) {
	if !y.Configured() {
		return "", fmt.Errorf("%w: set YANDEX_CLOUD_API_KEY and YANDEX_CLOUD_FOLDER", domain.ErrGenerationUnavailable)
	}
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	resp, err := y.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(y.modelURI),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(y.temperature),
		MaxTokens:   openai.Int(y.maxTokens),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: yandexgpt status %d: %w", domain.ErrGenerationFailed, apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("%w: yandexgpt request: %w", domain.ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: yandexgpt returned no choices", domain.ErrGenerationFailed)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: yandexgpt returned empty text", domain.ErrGenerationFailed)
	}
	return text, nil
}

var _ Generator = (*YandexGPT)(nil)
