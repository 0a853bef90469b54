// Package metrics exports tracking events as Prometheus metrics.
//
// A [Collector] is an agent like any other: attaching it registers one agent
// listening to every event kind, so tracking stays enabled for as long as it
// is attached.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/LifeMC/skagent"
)

// Owner is the addon the collector's agent is registered under.
var Owner = &skagent.Addon{Name: "skagent-metrics"}

// Collector counts delivered events per kind and observes the elapsed time
// carried by end events.
type Collector struct {
	EventsTotal   *prometheus.CounterVec
	EventDuration *prometheus.HistogramVec

	mu    sync.Mutex
	dir   *skagent.Directory
	agent *skagent.Agent
}

// NewCollector creates a Collector with its metrics registered in reg. A nil
// reg leaves the metrics unregistered.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "skagent_events_total",
			Help: "Total number of interpreter events delivered to agents",
		}, []string{"kind"}),
		EventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skagent_event_duration_seconds",
			Help:    "Elapsed time reported by interpreter end events",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5, 30},
		}, []string{"kind"}),
	}
}

// Attach registers the collector's agent in dir. Panics if already attached.
func (c *Collector) Attach(dir *skagent.Directory) *skagent.Agent {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.agent != nil {
		panic("metrics: collector is already attached")
	}
	c.dir = dir
	c.agent = dir.RegisterAgent(Owner, c.observe, skagent.AllEventKinds()...)
	return c.agent
}

// Detach removes the collector's agent. Reports false if it was not attached.
func (c *Collector) Detach() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.agent == nil {
		return false
	}
	c.dir.UnregisterAgent(c.agent)
	c.agent, c.dir = nil, nil
	return true
}

// Attached reports whether the collector currently owns an agent.
func (c *Collector) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agent != nil
}

type elapsed interface {
	Elapsed() time.Duration
}

func (c *Collector) observe(event skagent.Event) {
	kind := event.Kind().String()
	c.EventsTotal.WithLabelValues(kind).Inc()
	if e, ok := event.(elapsed); ok {
		c.EventDuration.WithLabelValues(kind).Observe(e.Elapsed().Seconds())
	}
}
