package yadirect

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"copyhub/internal/domain"
	"copyhub/internal/llmtext"
	"copyhub/internal/providers/textgen"
)

// MaxRefinementAttempts bounds the generator calls spent fixing one ad.
const MaxRefinementAttempts = 5

// RefinedAd is a final ad with the attempts spent on it and the validation of
// its final text. Validation is nil for unstructured replies.
type RefinedAd struct {
	Ad
	Attempts   int               `json:"attempts"`
	Validation *ValidationResult `json:"validation,omitempty"`
}

// Result is the outcome of one pipeline run.
type Result struct {
	Ads []RefinedAd
	// Refused is set when the model declined the brief; Ads is empty.
	Refused bool
	// Unstructured is set when the reply had no labelled ads and is returned as one body.
	Unstructured bool
	Raw          string
}

type PipelineOptions struct {
	Validator   *Validator
	Logger      zerolog.Logger
	MaxAttempts int
}

// Pipeline generates ads for a brief and refines each until it validates.
type Pipeline struct {
	gen         textgen.Generator
	validator   *Validator
	logger      zerolog.Logger
	maxAttempts int
}

func NewPipeline(gen textgen.Generator, opts PipelineOptions) *Pipeline {
	v := opts.Validator
	if v == nil {
		v = defaultValidator
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 || attempts > MaxRefinementAttempts {
		attempts = MaxRefinementAttempts
	}
	return &Pipeline{gen: gen, validator: v, logger: opts.Logger, maxAttempts: attempts}
}

// Run executes one generation and refines every parsed ad in order. Only the
// initial generator call can fail the run; refinement failures keep the last ad.
func (p *Pipeline) Run(ctx context.Context, in domain.CampaignInput) (Result, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	log := p.loggerFor(ctx)
	log.Debug().Int("count", in.Count).Str("tone", string(in.Tone)).Msg("generation_start")

	raw, err := p.gen.Generate(ctx, BuildGenerationPrompt(in))
	if err != nil {
		return Result{}, fmt.Errorf("yadirect: generate: %w", err)
	}

	ads := ParseGenerationResponse(raw)
	if len(ads) == 0 {
		return p.fallback(log, raw)
	}

	res := Result{Raw: raw, Ads: make([]RefinedAd, 0, len(ads))}
	for i, ad := range ads {
		res.Ads = append(res.Ads, p.refine(ctx, log.With().Int("variant", i+1).Logger(), ad, in))
	}
	log.Info().Int("ads", len(res.Ads)).Msg("generation_done")
	return res, nil
}

func (p *Pipeline) fallback(log zerolog.Logger, raw string) (Result, error) {
	if llmtext.IsRefusal(raw) {
		log.Warn().Msg("generation_refused")
		return Result{Refused: true, Raw: raw}, nil
	}
	body := strings.TrimSpace(raw)
	if body == "" {
		return Result{}, fmt.Errorf("yadirect: %w: empty reply", domain.ErrGenerationFailed)
	}
	log.Warn().Int("raw_length", len(raw)).Msg("generation_unstructured")
	return Result{
		Ads:          []RefinedAd{{Ad: Ad{Body: body}}},
		Unstructured: true,
		Raw:          raw,
	}, nil
}

func (p *Pipeline) refine(ctx context.Context, log zerolog.Logger, ad Ad, in domain.CampaignInput) RefinedAd {
	v := p.validator.Validate(ad.Title, ad.Body, in.Keywords, in.USP)
	attempts := 0
	for !v.IsValid && attempts < p.maxAttempts {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Int("attempts", attempts).Msg("refine_stopped")
			break
		}
		log.Debug().Int("attempt", attempts+1).Strs("errors", v.Errors).Msg("refine_attempt")
		raw, err := p.gen.Generate(ctx, BuildRefinementPrompt(ad.Title, ad.Body, v.Issues(), in))
		if err != nil {
			log.Warn().Err(err).Int("attempts", attempts).Msg("refine_stopped")
			break
		}
		next, ok := ParseRefinementResponse(raw)
		if !ok {
			log.Warn().Int("attempts", attempts).Msg("refine_unparsed")
			break
		}
		ad = next
		v = p.validator.Validate(ad.Title, ad.Body, in.Keywords, in.USP)
		attempts++
	}

	ad.Title = TruncateToLimit(ad.Title, MaxTitleLength)
	ad.Body = TruncateToLimit(ad.Body, MaxBodyLength)
	final := p.validator.Validate(ad.Title, ad.Body, in.Keywords, in.USP)
	return RefinedAd{Ad: ad, Attempts: attempts, Validation: &final}
}

// loggerFor prefers a request-scoped logger stored in ctx.
func (p *Pipeline) loggerFor(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return p.logger
}
