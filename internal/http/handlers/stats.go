package handlers

import (
	"net/http"

	"copyhub/internal/domain"
)

type moduleStats struct {
	Module       domain.Module `json:"module"`
	Total        int64         `json:"total"`
	OK           int64         `json:"ok"`
	Refused      int64         `json:"refused"`
	Unstructured int64         `json:"unstructured"`
	Failed       int64         `json:"failed"`
	Last24h      int64         `json:"last24h"`
}

// StatsSummary reports usage outcome counts per module.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Usage.Summary(r.Context())
	if err != nil {
		a.log(r).Error().Err(err).Msg("stats_load_failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	modules := make([]moduleStats, 0, len(summary))
	var total, last24h int64
	for _, s := range summary {
		modules = append(modules, moduleStats(s))
		total += s.Total
		last24h += s.Last24h
	}
	a.json(w, http.StatusOK, map[string]any{
		"modules": modules,
		"total":   total,
		"last24h": last24h,
	})
}
