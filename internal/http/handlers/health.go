package handlers

import (
	"net/http"
	"time"
)

// Health reports liveness. It does not touch the database or the generator,
// so a missing Yandex key still answers ok.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "copyhub",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
