package domain

import (
	"fmt"
	"strings"
)

// Tone enumerates the voice requested for generated copy.
type Tone string

const (
	ToneNeutral   Tone = "neutral"
	ToneFriendly  Tone = "friendly"
	ToneExpert    Tone = "expert"
	ToneEmotional Tone = "emotional"
)

const (
	MinVariants = 1
	MaxVariants = 10
)

// Valid reports whether t is one of the supported tones.
func (t Tone) Valid() bool {
	switch t {
	case ToneNeutral, ToneFriendly, ToneExpert, ToneEmotional:
		return true
	}
	return false
}

// CampaignInput is the structured brief for a Yandex.Direct generation run.
type CampaignInput struct {
	Product  string `json:"product"`
	Audience string `json:"audience"`
	Keywords string `json:"keywords"`
	USP      string `json:"usp,omitempty"`
	Tone     Tone   `json:"tone"`
	Count    int    `json:"count"`
}

// Normalize trims free-text fields and fills defaults for tone and count.
func (in CampaignInput) Normalize() CampaignInput {
	in.Product = strings.TrimSpace(in.Product)
	in.Audience = strings.TrimSpace(in.Audience)
	in.Keywords = strings.TrimSpace(in.Keywords)
	in.USP = strings.TrimSpace(in.USP)
	if in.Tone == "" {
		in.Tone = ToneNeutral
	}
	if in.Count == 0 {
		in.Count = 3
	}
	return in
}

// Validate checks required fields and enumerations. The returned error wraps ErrInvalidInput.
func (in CampaignInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Product) == "":
		return fmt.Errorf("%w: product is required", ErrInvalidInput)
	case strings.TrimSpace(in.Audience) == "":
		return fmt.Errorf("%w: audience is required", ErrInvalidInput)
	case strings.TrimSpace(in.Keywords) == "":
		return fmt.Errorf("%w: keywords are required", ErrInvalidInput)
	case !in.Tone.Valid():
		return fmt.Errorf("%w: unsupported tone %q", ErrInvalidInput, in.Tone)
	case in.Count < MinVariants || in.Count > MaxVariants:
		return fmt.Errorf("%w: count must be between %d and %d", ErrInvalidInput, MinVariants, MaxVariants)
	}
	return nil
}
