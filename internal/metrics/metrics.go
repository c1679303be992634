// Package metrics считает события конвейера отметок для Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shenikar/geoface_attendance/internal/checkin"
)

const namespace = "geoface"

// Metrics реализует checkin.Observer и notification.Recorder
type Metrics struct {
	checkinsCompleted   *prometheus.CounterVec
	stepFailures        *prometheus.CounterVec
	verifierFallbacks   prometheus.Counter
	notificationsSent   prometheus.Counter
	notificationsFailed prometheus.Counter
	activeSessions      prometheus.GaugeFunc
}

// New регистрирует счетчики в reg. sessions может быть nil.
func New(reg prometheus.Registerer, sessions func() int) *Metrics {
	m := &Metrics{
		checkinsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkins_completed_total",
			Help:      "Completed check-ins by lateness.",
		}, []string{"late"}),
		stepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkin_step_failures_total",
			Help:      "Check-in step failures by kind.",
		}, []string{"kind"}),
		verifierFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifier_fallbacks_total",
			Help:      "Selfie verdicts issued without the verifier.",
		}),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Notifications delivered.",
		}),
		notificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Notifications that could not be delivered.",
		}),
	}

	reg.MustRegister(
		m.checkinsCompleted,
		m.stepFailures,
		m.verifierFallbacks,
		m.notificationsSent,
		m.notificationsFailed,
	)

	if sessions != nil {
		m.activeSessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "checkin_sessions_active",
			Help:      "Check-in sessions held in memory.",
		}, func() float64 { return float64(sessions()) })
		reg.MustRegister(m.activeSessions)
	}
	return m
}

func (m *Metrics) StepFailed(kind checkin.ErrorKind) {
	m.stepFailures.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) VerifierFallback() {
	m.verifierFallbacks.Inc()
}

func (m *Metrics) Completed(late bool) {
	m.checkinsCompleted.WithLabelValues(strconv.FormatBool(late)).Inc()
}

func (m *Metrics) NotificationSent() {
	m.notificationsSent.Inc()
}

func (m *Metrics) NotificationFailed() {
	m.notificationsFailed.Inc()
}
