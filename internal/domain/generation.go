package domain

import (
	"encoding/json"
	"time"
)

// Module identifies which generator produced a history entry.
type Module string

const (
	ModuleYaDirect    Module = "yadirect"
	ModuleEmailSocial Module = "email_social"
	ModuleLoyalty     Module = "loyalty"
)

// Valid reports whether m names a known module.
func (m Module) Valid() bool {
	switch m {
	case ModuleYaDirect, ModuleEmailSocial, ModuleLoyalty:
		return true
	}
	return false
}

// Generation is one stored generation result.
type Generation struct {
	ID         string
	Module     Module
	InputJSON  json.RawMessage
	OutputText string
	IsFavorite bool
	Country    string
	CreatedAt  time.Time
}

// GenerationFilter narrows history listings. Zero values mean no filtering.
type GenerationFilter struct {
	Module        Module
	Search        string
	FavoritesOnly bool
	Limit         int
}

// Outcome classifies how a generation request ended.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeRefused      Outcome = "refused"
	OutcomeUnstructured Outcome = "unstructured"
	OutcomeFailed       Outcome = "failed"
)

// UsageEvent is appended once per generation request.
type UsageEvent struct {
	RequestID  string
	Module     Module
	Outcome    Outcome
	LatencyMS  int64
	Properties map[string]any
}

// UsageSummary aggregates usage events per module.
type UsageSummary struct {
	Module       Module
	Total        int64
	OK           int64
	Refused      int64
	Unstructured int64
	Failed       int64
	Last24h      int64
}
