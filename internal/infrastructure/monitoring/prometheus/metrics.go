package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every LexConnect metric.
type AppMetrics struct {
	// HTTP Layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec
	HTTPRateLimited     CounterVec

	// Classification
	ClassificationsTotal   CounterVec
	ClassificationDuration HistogramVec
	LawyerMatchesTotal     CounterVec

	// AI
	AIRequestsTotal   CounterVec
	AIRequestDuration HistogramVec

	// Bookings
	BookingsTotal CounterVec
	PaymentsTotal CounterVec

	// Infrastructure
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec
	EventsPublished  CounterVec

	// System Health
	HealthCheckStatus GaugeVec
}

// Default Buckets
var (
	DefaultHTTPDurationBuckets           = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultClassificationDurationBuckets = []float64{.0005, .001, .0025, .005, .01, .05, .1, .5, 1, 5, 10}
	DefaultAIDurationBuckets             = []float64{.25, .5, 1, 2, 5, 10, 30}
)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// HTTP
	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "route")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests")
	m.HTTPRateLimited = collector.RegisterCounter("http_rate_limited_total", "Requests rejected by the rate limiter", "route")

	// Classification
	m.ClassificationsTotal = collector.RegisterCounter("classifications_total", "Case classifications", "source", "match_type", "confidence_level")
	m.ClassificationDuration = collector.RegisterHistogram("classification_duration_seconds", "Case classification duration", DefaultClassificationDurationBuckets, "source")
	m.LawyerMatchesTotal = collector.RegisterCounter("lawyer_matches_total", "Lawyers returned by tier", "tier")

	// AI
	m.AIRequestsTotal = collector.RegisterCounter("ai_requests_total", "AI classifier calls", "provider", "status")
	m.AIRequestDuration = collector.RegisterHistogram("ai_request_duration_seconds", "AI classifier call duration", DefaultAIDurationBuckets, "provider")

	// Bookings
	m.BookingsTotal = collector.RegisterCounter("bookings_total", "Booking state transitions", "status")
	m.PaymentsTotal = collector.RegisterCounter("payments_total", "Simulated payments", "method", "status")

	// Infrastructure
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.EventsPublished = collector.RegisterCounter("events_published_total", "Domain events published", "topic", "status")

	// System Health
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")

	return m
}

// NewNopMetrics returns metrics that record nothing.
func NewNopMetrics() *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:      noopCounterVec{},
		HTTPRequestDuration:    noopHistogramVec{},
		HTTPActiveRequests:     noopGaugeVec{},
		HTTPRateLimited:        noopCounterVec{},
		ClassificationsTotal:   noopCounterVec{},
		ClassificationDuration: noopHistogramVec{},
		LawyerMatchesTotal:     noopCounterVec{},
		AIRequestsTotal:        noopCounterVec{},
		AIRequestDuration:      noopHistogramVec{},
		BookingsTotal:          noopCounterVec{},
		PaymentsTotal:          noopCounterVec{},
		CacheHitsTotal:         noopCounterVec{},
		CacheMissesTotal:       noopCounterVec{},
		EventsPublished:        noopCounterVec{},
		HealthCheckStatus:      noopGaugeVec{},
	}
}

// Helpers

func (m *AppMetrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *AppMetrics) RecordClassification(source, matchType, confidenceLevel string, duration time.Duration) {
	m.ClassificationsTotal.WithLabelValues(source, matchType, confidenceLevel).Inc()
	m.ClassificationDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordLawyerMatches adds the tier sizes of one match run.
func (m *AppMetrics) RecordLawyerMatches(exact, related, general int) {
	m.LawyerMatchesTotal.WithLabelValues("exact").Add(float64(exact))
	m.LawyerMatchesTotal.WithLabelValues("related").Add(float64(related))
	m.LawyerMatchesTotal.WithLabelValues("general").Add(float64(general))
}

func (m *AppMetrics) RecordAICall(provider string, err error, duration time.Duration) {
	m.AIRequestsTotal.WithLabelValues(provider, statusLabel(err)).Inc()
	m.AIRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *AppMetrics) RecordCacheAccess(cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func (m *AppMetrics) RecordBooking(status string) {
	m.BookingsTotal.WithLabelValues(status).Inc()
}

func (m *AppMetrics) RecordPayment(method, status string) {
	m.PaymentsTotal.WithLabelValues(method, status).Inc()
}

func (m *AppMetrics) RecordEvent(topic string, err error) {
	m.EventsPublished.WithLabelValues(topic, statusLabel(err)).Inc()
}

func (m *AppMetrics) SetHealth(component string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	m.HealthCheckStatus.WithLabelValues(component).Set(v)
}

func statusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

//Personal.AI order the ending
