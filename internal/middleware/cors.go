package middleware

import (
	"net/http"
	"strconv"
)

const corsMaxAge = 10 * 60

// CORS echoes allowed origins and answers preflight requests. An entry "*"
// allows any origin. The API is cookie-free, so credentials are never allowed.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allow := make(map[string]struct{}, len(allowedOrigins))
	anyOrigin := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			anyOrigin = true
			continue
		}
		allow[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")
			if origin := r.Header.Get("Origin"); origin != "" {
				_, ok := allow[origin]
				if ok || anyOrigin {
					h.Set("Access-Control-Allow-Origin", origin)
					h.Set("Access-Control-Expose-Headers", "X-Request-ID, Retry-After")
					if r.Method == http.MethodOptions {
						h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
						h.Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
						h.Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
					}
				}
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
