package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type assertError string

func (e assertError) Error() string { return string(e) }

func TestResolveCountry(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		resolver CountryLookup
		want     string
	}{
		{
			name: "header precedence",
			setup: func(r *http.Request) {
				r.Header.Set("X-Country-Code", "ru")
				r.Header.Set("CF-IPCountry", "kz")
			},
			want: "RU",
		},
		{
			name: "unknown cloudflare marker skipped",
			setup: func(r *http.Request) {
				r.Header.Set("CF-IPCountry", "XX")
				r.Header.Set("Accept-Language", "ru-RU,ru;q=0.9")
			},
			want: "RU",
		},
		{
			name: "resolver before accept-language",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-GB,en;q=0.9")
			},
			resolver: func(ip string) (string, error) {
				if ip != "203.0.113.4" {
					t.Fatalf("unexpected ip: %s", ip)
				}
				return "by", nil
			},
			want: "BY",
		},
		{
			name: "accept-language region",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-GB,en;q=0.9")
			},
			want: "GB",
		},
		{
			name: "resolver error falls through",
			resolver: func(ip string) (string, error) {
				return "", assertError("boom")
			},
			want: "",
		},
		{
			name: "language without region",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "ru;q=0.8")
			},
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.4:80"
			if tc.setup != nil {
				tc.setup(req)
			}
			got := ResolveCountry(req, tc.resolver)
			if got != tc.want {
				t.Fatalf("ResolveCountry() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCountryMiddleware(t *testing.T) {
	var got string
	handler := Country(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CountryFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Country-Code", "kz")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if got != "KZ" {
		t.Fatalf("CountryFromContext() = %q, want KZ", got)
	}
	if CountryFromContext(context.Background()) != "" {
		t.Fatal("expected empty country for bare context")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.10:1234"
	if got := ClientIP(req); got != "198.51.100.10" {
		t.Fatalf("ClientIP() = %q", got)
	}
	req.Header.Set("X-Forwarded-For", " 203.0.113.1 , 198.51.100.2")
	if got := ClientIP(req); got != "203.0.113.1" {
		t.Fatalf("ClientIP() with forwarded = %q", got)
	}
}
