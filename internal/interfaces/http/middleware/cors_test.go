package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func corsRequest(method, origin string) *http.Request {
	r := httptest.NewRequest(method, "/api/v1/lawyers", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	return r
}

func TestCORS_Preflight(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"https://app.lexconnect.in"}
	h := CORS(cfg)(okHandler())

	r := corsRequest(http.MethodOptions, "https://app.lexconnect.in")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.lexconnect.in", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	assert.Empty(t, w.Body.String())
}

func TestCORS_Origins(t *testing.T) {
	tests := []struct {
		name      string
		origins   []string
		origin    string
		wantAllow string
	}{
		{"exact", []string{"https://app.lexconnect.in"}, "https://app.lexconnect.in", "https://app.lexconnect.in"},
		{"case insensitive", []string{"https://App.LexConnect.in"}, "https://app.lexconnect.in", "https://app.lexconnect.in"},
		{"subdomain pattern", []string{"*.lexconnect.in"}, "https://admin.lexconnect.in", "https://admin.lexconnect.in"},
		{"any", []string{"*"}, "https://elsewhere.dev", "*"},
		{"disallowed", []string{"https://app.lexconnect.in"}, "https://evil.dev", ""},
		{"no origin header", []string{"*"}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCORSConfig()
			cfg.AllowedOrigins = tt.origins
			w := httptest.NewRecorder()
			CORS(cfg)(okHandler()).ServeHTTP(w, corsRequest(http.MethodGet, tt.origin))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_CredentialsEchoOrigin(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"*"}
	cfg.AllowCredentials = true
	w := httptest.NewRecorder()
	CORS(cfg)(okHandler()).ServeHTTP(w, corsRequest(http.MethodGet, "https://app.lexconnect.in"))

	assert.Equal(t, "https://app.lexconnect.in", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Request-ID")
}

//Personal.AI order the ending
