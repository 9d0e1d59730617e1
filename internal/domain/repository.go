package domain

import "context"

// GenerationRepository persists generation history.
type GenerationRepository interface {
	Create(ctx context.Context, gen *Generation) error
	List(ctx context.Context, filter GenerationFilter) ([]Generation, error)
	ToggleFavorite(ctx context.Context, id string) (*Generation, error)
	Delete(ctx context.Context, id string) error
}

// UsageRepository records generation outcomes for the stats summary.
type UsageRepository interface {
	Record(ctx context.Context, event UsageEvent) error
	Summary(ctx context.Context) ([]UsageSummary, error)
}
