package api

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"folio/internal/events"
)

const namespace = "folio"

// Metrics owns a private Prometheus registry so tests and multiple servers
// in one process never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	contact     *prometheus.CounterVec
	themes      *prometheus.CounterVec
	commands    prometheus.Counter
	sshSessions prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route template, method and status.",
		}, []string{"route", "method", "status"}),
		contact: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_outcomes_total",
			Help:      "Contact form outcomes by response code.",
		}, []string{"code"}),
		themes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "theme_changes_total",
			Help:      "Theme changes by resulting theme.",
		}, []string{"theme"}),
		commands: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terminal_commands_total",
			Help:      "Terminal lines submitted over SSH.",
		}),
		sshSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ssh_sessions_active",
			Help:      "SSH sessions currently attached.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.contact, m.themes, m.commands, m.sshSessions,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observeRequest(route, method string, status int) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// ContactOutcome counts one /api/contact response code.
func (m *Metrics) ContactOutcome(code string) {
	m.contact.WithLabelValues(code).Inc()
}

// OnEvent is an events.Handler counting theme changes.
func (m *Metrics) OnEvent(ev events.Event) {
	if tc, ok := ev.(events.ThemeChanged); ok {
		m.themes.WithLabelValues(tc.Theme).Inc()
	}
}

// CommandSubmitted counts one terminal line.
func (m *Metrics) CommandSubmitted() { m.commands.Inc() }

// SessionOpened and SessionClosed track attached SSH sessions.
func (m *Metrics) SessionOpened() { m.sshSessions.Inc() }

func (m *Metrics) SessionClosed() { m.sshSessions.Dec() }
