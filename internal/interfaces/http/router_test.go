package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/turtacn/LexConnect/internal/application/account"
	"github.com/turtacn/LexConnect/internal/application/booking"
	"github.com/turtacn/LexConnect/internal/application/consultation"
	"github.com/turtacn/LexConnect/internal/application/directory"
	"github.com/turtacn/LexConnect/internal/domain/legal"
	"github.com/turtacn/LexConnect/internal/intelligence/classifier"
	"github.com/turtacn/LexConnect/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/LexConnect/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LexConnect/internal/infrastructure/storage/jsonfile"
	"github.com/turtacn/LexConnect/internal/interfaces/http/handlers"
	"github.com/turtacn/LexConnect/internal/interfaces/http/middleware"
)

type testApp struct {
	handler   http.Handler
	collector metrics.MetricsCollector
	events    *kafka.RecordingPublisher
}

func newTestApp(t *testing.T, rl *middleware.RateLimitConfig) *testApp {
	t.Helper()
	log := logging.NewNopLogger()
	kb := legal.MustDefault()

	store, err := jsonfile.Open(filepath.Join(t.TempDir(), "db.json"), jsonfile.Options{})
	require.NoError(t, err)

	collector, err := metrics.NewMetricsCollector(metrics.CollectorConfig{Namespace: "lexconnect"}, log)
	require.NoError(t, err)
	m := metrics.NewAppMetrics(collector)
	events := &kafka.RecordingPublisher{}

	consult, err := consultation.NewService(consultation.Deps{
		Engine: classifier.New(kb), Lawyers: store.Lawyers(), Events: events, Metrics: m, Logger: log,
	})
	require.NoError(t, err)
	bookings, err := booking.NewService(booking.Deps{
		Bookings: store.Bookings(), Users: store.Users(), Lawyers: store.Lawyers(),
		Events: events, Metrics: m, Logger: log,
	})
	require.NoError(t, err)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = []string{"https://app.lexconnect.in"}
	logCfg := middleware.DefaultLoggingConfig()

	h := NewRouter(RouterConfig{
		CaseHandler:      handlers.NewCaseHandler(consult, log),
		LawyerHandler:    handlers.NewLawyerHandler(directory.NewService(store.Lawyers(), kb, log), log),
		AuthHandler:      handlers.NewAuthHandler(account.NewService(store.Users(), log, account.WithBcryptCost(bcrypt.MinCost)), log),
		BookingHandler:   handlers.NewBookingHandler(bookings, log),
		HealthHandler:    handlers.NewHealthHandler("test", m, handlers.CheckFunc{Component: "store", Fn: store.Ping}),
		CORS:             &cors,
		Logging:          &logCfg,
		RateLimit:        rl,
		Logger:           log,
		Metrics:          m,
		MetricsCollector: collector,
	})
	return &testApp{handler: h, collector: collector, events: events}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "203.0.113.9:4000"
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestRouter_Probes(t *testing.T) {
	app := newTestApp(t, nil)

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/readyz", nil).Code)

	rec := app.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lexconnect_health_check_status{component="store"} 1`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	app := newTestApp(t, nil)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/api/v1/nothing", nil).Code)
}

func TestRouter_ConsultationToPaidBooking(t *testing.T) {
	app := newTestApp(t, nil)

	// register a client
	rec := app.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Asha", "email": "Asha@Example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var u struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	decodeInto(t, rec, &u)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.NotContains(t, rec.Body.String(), "password_hash")

	rec = app.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "asha@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "asha@example.com", "password": "nope12"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// roster
	rec = app.do(t, http.MethodPost, "/api/v1/lawyers", map[string]interface{}{
		"name": "Meera Iyer", "specialization": "family", "experience": 11, "location": "Pune", "fee": 2000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var l struct {
		ID             string `json:"id"`
		Specialization string `json:"specialization"`
	}
	decodeInto(t, rec, &l)
	assert.Equal(t, "Family", l.Specialization)

	rec = app.do(t, http.MethodGet, "/api/v1/lawyers?city=pune&specialization=Family%20Law", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/v1/lawyers/"+l.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/api/v1/lawyers/missing", nil).Code)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/v1/specializations", nil).Code)

	// consultation
	rec = app.do(t, http.MethodPost, "/api/v1/cases/analyze", map[string]string{
		"description": "I want a divorce from my husband", "city": "Pune",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var analysis consultation.Analysis
	decodeInto(t, rec, &analysis)
	assert.Equal(t, "Family Law", analysis.Classification.Specialization)
	assert.Equal(t, "Family", analysis.Specialization)
	require.NotEmpty(t, analysis.Lawyers.All)
	assert.Equal(t, l.ID, analysis.Lawyers.All[0].ID)
	assert.Contains(t, app.events.Topics(), kafka.TopicCaseClassified)

	// booking and payment
	rec = app.do(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"user_id": u.ID, "lawyer_id": l.ID, "case_description": "divorce",
		"scheduled_at": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var b struct {
		ID     string  `json:"id"`
		Fee    float64 `json:"fee"`
		Status string  `json:"status"`
	}
	decodeInto(t, rec, &b)
	assert.Equal(t, 2000.0, b.Fee)
	assert.Equal(t, "pending_payment", b.Status)

	rec = app.do(t, http.MethodPost, "/api/v1/bookings/"+b.ID+"/payment", map[string]interface{}{
		"amount": 2000, "method": "card", "card_number": "4111 1111 1111 0000",
	})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/v1/bookings/"+b.ID+"/payment", map[string]interface{}{
		"amount": 2000, "method": "upi",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeInto(t, rec, &b)
	assert.Equal(t, "confirmed", b.Status)

	rec = app.do(t, http.MethodPost, "/api/v1/bookings/"+b.ID+"/payment", map[string]interface{}{
		"amount": 2000, "method": "upi",
	})
	assert.Equal(t, http.StatusConflict, rec.Code, "already paid")

	rec = app.do(t, http.MethodGet, "/api/v1/bookings/"+b.ID+"/receipt", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "receipt storage is not wired")

	rec = app.do(t, http.MethodGet, "/api/v1/users/"+u.ID+"/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodPost, "/api/v1/bookings/"+b.ID+"/cancel", nil).Code)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/v1/bookings/"+b.ID, nil).Code)

	assert.Equal(t,
		[]string{kafka.TopicCaseClassified, kafka.TopicBookingCreated, kafka.TopicPaymentCompleted, kafka.TopicBookingCancelled},
		app.events.Topics())
}

func TestRouter_RateLimitAppliesToAPIOnly(t *testing.T) {
	rl := middleware.DefaultRateLimitConfig()
	rl.RequestsPerSecond = 0.001
	rl.BurstSize = 1
	app := newTestApp(t, &rl)

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/v1/specializations", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, app.do(t, http.MethodGet, "/api/v1/specializations", nil).Code)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/healthz", nil).Code)

	rec := app.do(t, http.MethodGet, "/metrics", nil)
	assert.Contains(t, rec.Body.String(), `lexconnect_http_rate_limited_total{route="/api/v1`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	app := newTestApp(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cases/classify", nil)
	req.Header.Set("Origin", "https://app.lexconnect.in")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.lexconnect.in", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_NilHandlersNoPanic(t *testing.T) {
	h := NewRouter(RouterConfig{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/lawyers", nil).WithContext(context.Background()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

//Personal.AI order the ending
