// Package campaign generates email, social and loyalty copy.
package campaign

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"copyhub/internal/domain"
	"copyhub/internal/llmtext"
	"copyhub/internal/providers/textgen"
)

// Outcome mirrors the Yandex.Direct pipeline result for the simpler modules.
type Outcome[T any] struct {
	Items        []T
	Refused      bool
	Unstructured bool
	Raw          string
}

type Service struct {
	gen    textgen.Generator
	logger zerolog.Logger
}

func NewService(gen textgen.Generator, logger zerolog.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// EmailSocial generates two or three posts for the requested channel.
func (s *Service) EmailSocial(ctx context.Context, req EmailSocialRequest) (Outcome[SocialPost], error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return Outcome[SocialPost]{}, err
	}
	return generate(ctx, s, BuildEmailSocialPrompt(req), ParseEmailSocialResponse, func(raw string) SocialPost {
		return SocialPost{Text: raw}
	})
}

// Loyalty generates one or two personal messages with the {{Имя}} placeholder.
func (s *Service) Loyalty(ctx context.Context, req LoyaltyRequest) (Outcome[LoyaltyMessage], error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return Outcome[LoyaltyMessage]{}, err
	}
	parse := func(raw string) []LoyaltyMessage { return ParseLoyaltyResponse(raw, req.CustomerName) }
	return generate(ctx, s, BuildLoyaltyPrompt(req), parse, func(raw string) LoyaltyMessage {
		return newLoyaltyMessage(raw, req.CustomerName)
	})
}

func generate[T any](ctx context.Context, s *Service, prompt string, parse func(string) []T, whole func(string) T) (Outcome[T], error) {
	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return Outcome[T]{}, fmt.Errorf("campaign: generate: %w", err)
	}
	if llmtext.IsRefusal(llmtext.Preamble(raw)) {
		s.loggerFor(ctx).Warn().Msg("generation_refused")
		return Outcome[T]{Refused: true, Raw: raw}, nil
	}
	if items := parse(raw); len(items) > 0 {
		return Outcome[T]{Items: items, Raw: raw}, nil
	}
	body := llmtext.NormalizeModelText(raw)
	if strings.TrimSpace(body) == "" {
		return Outcome[T]{}, fmt.Errorf("campaign: %w: empty reply", domain.ErrGenerationFailed)
	}
	s.loggerFor(ctx).Warn().Int("raw_length", len(raw)).Msg("generation_unstructured")
	return Outcome[T]{Items: []T{whole(body)}, Unstructured: true, Raw: raw}, nil
}

func (s *Service) loggerFor(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}
