package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"copyhub/internal/campaign"
	"copyhub/internal/domain"
	"copyhub/internal/yadirect"
)

const maxRequestBody = 64 << 10

// App carries the dependencies shared by all HTTP handlers.
type App struct {
	Generations domain.GenerationRepository
	Usage       domain.UsageRepository
	Ads         *yadirect.Pipeline
	Campaign    *campaign.Service
	Logger      zerolog.Logger
}

func NewApp(generations domain.GenerationRepository, usage domain.UsageRepository, ads *yadirect.Pipeline, svc *campaign.Service, logger zerolog.Logger) *App {
	return &App{Generations: generations, Usage: usage, Ads: ads, Campaign: svc, Logger: logger}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errCode, Message: message})
}

// decode reads a JSON body of bounded size into dst.
func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", domain.ErrInvalidInput)
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// log returns the request-scoped logger when the logging middleware installed one.
func (a *App) log(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}
