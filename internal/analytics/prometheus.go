package analytics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusSink counts events and observes how long each screen was shown.
type PrometheusSink struct {
	eventsTotal    *prometheus.CounterVec
	screenDuration *prometheus.HistogramVec
}

// NewPrometheusSink registers the game's collectors with reg.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	s := &PrometheusSink{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "word_sketch_events_total",
				Help: "Total number of analytics events by name",
			},
			[]string{"event"},
		),
		screenDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "word_sketch_screen_duration_seconds",
				Help:    "Time spent on a screen before leaving it",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"screen"},
		),
	}
	for _, c := range []prometheus.Collector{s.eventsTotal, s.screenDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *PrometheusSink) Emit(name string, props map[string]any) {
	s.eventsTotal.WithLabelValues(name).Inc()

	if name != EventScreenDuration {
		return
	}
	screen, _ := props["previous_screen"].(string)
	if screen == "" {
		return
	}
	switch ms := props["duration_ms"].(type) {
	case int64:
		s.screenDuration.WithLabelValues(screen).Observe((time.Duration(ms) * time.Millisecond).Seconds())
	case float64:
		s.screenDuration.WithLabelValues(screen).Observe(ms / 1000)
	}
}
