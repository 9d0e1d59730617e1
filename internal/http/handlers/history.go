package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"copyhub/internal/domain"
)

type historyItem struct {
	ID         string          `json:"id"`
	Module     domain.Module   `json:"module"`
	Input      json.RawMessage `json:"input"`
	Output     string          `json:"output"`
	IsFavorite bool            `json:"isFavorite"`
	Country    string          `json:"country,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func toHistoryItem(g domain.Generation) historyItem {
	input := g.InputJSON
	if len(input) == 0 {
		input = json.RawMessage(`{}`)
	}
	return historyItem{
		ID:         g.ID,
		Module:     g.Module,
		Input:      input,
		Output:     g.OutputText,
		IsFavorite: g.IsFavorite,
		Country:    g.Country,
		CreatedAt:  g.CreatedAt,
	}
}

// HistoryList returns stored generations, newest first.
func (a *App) HistoryList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.GenerationFilter{Search: strings.TrimSpace(q.Get("search"))}

	if module := parseModule(q.Get("module")); module != "" {
		if !module.Valid() {
			a.error(w, http.StatusBadRequest, "bad_request", "unknown module")
			return
		}
		filter.Module = module
	}
	if v := q.Get("favoritesOnly"); v != "" {
		fav, err := strconv.ParseBool(v)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "favoritesOnly must be a boolean")
			return
		}
		filter.FavoritesOnly = fav
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			a.error(w, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	gens, err := a.Generations.List(r.Context(), filter)
	if err != nil {
		a.log(r).Error().Err(err).Msg("history_list_failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load history")
		return
	}
	items := make([]historyItem, 0, len(gens))
	for _, g := range gens {
		items = append(items, toHistoryItem(g))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// HistoryToggleFavorite flips the favourite flag of one entry.
func (a *App) HistoryToggleFavorite(w http.ResponseWriter, r *http.Request) {
	gen, err := a.Generations.ToggleFavorite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.historyError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toHistoryItem(*gen))
}

// HistoryDelete removes one entry.
func (a *App) HistoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Generations.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.historyError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) historyError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "generation not found")
		return
	}
	a.log(r).Error().Err(err).Msg("history_update_failed")
	a.error(w, http.StatusInternalServerError, "internal", "failed to update history")
}

// parseModule maps query values to modules. "all" and "" mean no filter; dashes are accepted.
func parseModule(v string) domain.Module {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || v == "all" {
		return ""
	}
	return domain.Module(strings.ReplaceAll(v, "-", "_"))
}
