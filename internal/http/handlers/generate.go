package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"copyhub/internal/campaign"
	"copyhub/internal/domain"
	"copyhub/internal/middleware"
	"copyhub/internal/yadirect"
)

const (
	refusedMessage = "Не удалось сгенерировать объявление"
	refusedDetails = "Попробуйте изменить описание продукта или ключевые слова и повторить генерацию."
)

type generateResponse[T any] struct {
	ID           string `json:"id,omitempty"`
	Results      []T    `json:"results"`
	Unstructured bool   `json:"unstructured,omitempty"`
	Raw          string `json:"raw,omitempty"`
}

// GenerateYaDirect runs the Yandex.Direct pipeline for one brief.
func (a *App) GenerateYaDirect(w http.ResponseWriter, r *http.Request) {
	var in domain.CampaignInput
	if err := a.decode(w, r, &in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	in = in.Normalize()

	start := time.Now()
	res, err := a.Ads.Run(r.Context(), in)
	if err != nil {
		a.generationFailed(w, r, domain.ModuleYaDirect, start, err)
		return
	}
	if res.Refused {
		a.refused(w, r, domain.ModuleYaDirect, start)
		return
	}

	blocks := make([]string, 0, len(res.Ads))
	attempts := 0
	for _, ad := range res.Ads {
		attempts += ad.Attempts
		blocks = append(blocks, strings.TrimSpace(ad.Title+"\n"+ad.Body))
	}
	outcome := outcomeOf(res.Unstructured)
	a.recordUsage(r, domain.ModuleYaDirect, outcome, start, map[string]any{"ads": len(res.Ads), "attempts": attempts})

	resp := generateResponse[yadirect.RefinedAd]{Results: res.Ads, Unstructured: res.Unstructured}
	if res.Unstructured {
		resp.Raw = res.Raw
	}
	resp.ID = a.saveHistory(r, domain.ModuleYaDirect, in, strings.Join(blocks, "\n\n"))
	a.json(w, http.StatusOK, resp)
}

// GenerateEmailSocial produces email or social posts.
func (a *App) GenerateEmailSocial(w http.ResponseWriter, r *http.Request) {
	var req campaign.EmailSocialRequest
	if err := a.decode(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	req = req.Normalize()

	start := time.Now()
	out, err := a.Campaign.EmailSocial(r.Context(), req)
	if err != nil {
		a.generationFailed(w, r, domain.ModuleEmailSocial, start, err)
		return
	}
	if out.Refused {
		a.refused(w, r, domain.ModuleEmailSocial, start)
		return
	}

	blocks := make([]string, 0, len(out.Items))
	for _, post := range out.Items {
		block := post.Text
		if post.ImageIdea != "" {
			block += "\n\nИдея для картинки: " + post.ImageIdea
		}
		blocks = append(blocks, block)
	}
	a.recordUsage(r, domain.ModuleEmailSocial, outcomeOf(out.Unstructured), start, map[string]any{"items": len(out.Items), "channel": string(req.Channel)})
	respondCampaign(a, w, r, domain.ModuleEmailSocial, req, strings.Join(blocks, "\n\n---\n\n"), out)
}

// GenerateLoyalty produces personal loyalty messages.
func (a *App) GenerateLoyalty(w http.ResponseWriter, r *http.Request) {
	var req campaign.LoyaltyRequest
	if err := a.decode(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	req = req.Normalize()

	start := time.Now()
	out, err := a.Campaign.Loyalty(r.Context(), req)
	if err != nil {
		a.generationFailed(w, r, domain.ModuleLoyalty, start, err)
		return
	}
	if out.Refused {
		a.refused(w, r, domain.ModuleLoyalty, start)
		return
	}

	texts := make([]string, 0, len(out.Items))
	for _, msg := range out.Items {
		texts = append(texts, msg.Text)
	}
	a.recordUsage(r, domain.ModuleLoyalty, outcomeOf(out.Unstructured), start, map[string]any{"items": len(out.Items), "scenario": string(req.Scenario)})
	respondCampaign(a, w, r, domain.ModuleLoyalty, req, strings.Join(texts, "\n\n---\n\n"), out)
}

func respondCampaign[T any](a *App, w http.ResponseWriter, r *http.Request, module domain.Module, input any, output string, out campaign.Outcome[T]) {
	resp := generateResponse[T]{Results: out.Items, Unstructured: out.Unstructured}
	if out.Unstructured {
		resp.Raw = out.Raw
	}
	resp.ID = a.saveHistory(r, module, input, output)
	a.json(w, http.StatusOK, resp)
}

func (a *App) refused(w http.ResponseWriter, r *http.Request, module domain.Module, start time.Time) {
	a.recordUsage(r, module, domain.OutcomeRefused, start, nil)
	a.json(w, http.StatusBadRequest, errorBody{Error: "refused", Message: refusedMessage, Details: refusedDetails})
}

func (a *App) generationFailed(w http.ResponseWriter, r *http.Request, module domain.Module, start time.Time, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	case errors.Is(err, context.Canceled):
		a.log(r).Info().Str("module", string(module)).Msg("generation_cancelled")
		return
	}

	a.recordUsage(r, module, domain.OutcomeFailed, start, map[string]any{"error": err.Error()})
	a.log(r).Error().Err(err).Str("module", string(module)).Msg("generation_failed")
	switch {
	case errors.Is(err, domain.ErrGenerationUnavailable):
		a.error(w, http.StatusServiceUnavailable, "generator_unavailable", "Генератор текста не настроен")
	case errors.Is(err, context.DeadlineExceeded):
		a.error(w, http.StatusGatewayTimeout, "generator_timeout", "Генератор текста не ответил вовремя")
	default:
		a.error(w, http.StatusBadGateway, "generator_failed", "Ошибка генерации текста")
	}
}

// saveHistory stores the generation and returns its id. Failures are logged only.
func (a *App) saveHistory(r *http.Request, module domain.Module, input any, output string) string {
	raw, err := json.Marshal(input)
	if err != nil {
		a.log(r).Error().Err(err).Msg("history_marshal_failed")
		return ""
	}
	gen := &domain.Generation{
		Module:     module,
		InputJSON:  raw,
		OutputText: output,
		Country:    middleware.CountryFromContext(r.Context()),
	}
	if err := a.Generations.Create(context.WithoutCancel(r.Context()), gen); err != nil {
		a.log(r).Error().Err(err).Str("module", string(module)).Msg("history_save_failed")
		return ""
	}
	return gen.ID
}

func (a *App) recordUsage(r *http.Request, module domain.Module, outcome domain.Outcome, start time.Time, props map[string]any) {
	event := domain.UsageEvent{
		RequestID:  middleware.RequestIDFromContext(r.Context()),
		Module:     module,
		Outcome:    outcome,
		LatencyMS:  time.Since(start).Milliseconds(),
		Properties: props,
	}
	if err := a.Usage.Record(context.WithoutCancel(r.Context()), event); err != nil {
		a.log(r).Error().Err(err).Str("module", string(module)).Msg("usage_record_failed")
	}
}

func outcomeOf(unstructured bool) domain.Outcome {
	if unstructured {
		return domain.OutcomeUnstructured
	}
	return domain.OutcomeOK
}
