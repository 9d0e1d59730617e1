package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"copyhub/internal/domain"
	"copyhub/internal/infra"
	"copyhub/internal/sqlinline"
)

// UsageRepositoryPG implements domain.UsageRepository using PostgreSQL.
type UsageRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUsageRepository constructs the repository.
func NewUsageRepository(sql infra.SQLExecutor) *UsageRepositoryPG {
	return &UsageRepositoryPG{sql: sql}
}

// Record appends one usage event.
func (r *UsageRepositoryPG) Record(ctx context.Context, event domain.UsageEvent) error {
	props := event.Properties
	if props == nil {
		props = map[string]any{}
	}
	raw, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("marshal usage properties: %w", err)
	}
	_, err = r.sql.Exec(ctx, sqlinline.QInsertUsageEvent,
		event.RequestID,
		string(event.Module),
		string(event.Outcome),
		event.LatencyMS,
		raw,
	)
	if err != nil {
		return fmt.Errorf("insert usage event: %w", err)
	}
	return nil
}

// Summary returns per-module outcome counts ordered by module.
func (r *UsageRepositoryPG) Summary(ctx context.Context) ([]domain.UsageSummary, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QUsageSummary)
	if err != nil {
		return nil, fmt.Errorf("usage summary: %w", err)
	}
	defer rows.Close()

	out := make([]domain.UsageSummary, 0)
	for rows.Next() {
		var (
			s      domain.UsageSummary
			module string
		)
		if err := rows.Scan(&module, &s.Total, &s.OK, &s.Refused, &s.Unstructured, &s.Failed, &s.Last24h); err != nil {
			return nil, fmt.Errorf("scan usage summary: %w", err)
		}
		s.Module = domain.Module(module)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("usage summary: %w", err)
	}
	return out, nil
}

var _ domain.UsageRepository = (*UsageRepositoryPG)(nil)
