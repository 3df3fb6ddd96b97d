package metrics

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	userCreatedName = "user_created"
	userCreatedHelp = "Number of users created"
)

// Registry owns every metric the service exports. It is created once at
// startup and shared by all request handlers.
type Registry struct {
	reg         *prometheus.Registry
	userCreated prometheus.Counter
	requests    *prometheus.CounterVec
}

// NewRegistry builds a registry isolated from the prometheus default one so
// that the exposition only carries the service's own families.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		userCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: userCreatedName,
			Help: userCreatedHelp,
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests handled, by method, route and status.",
		}, []string{"method", "route", "status"}),
	}
	r.reg.MustRegister(r.userCreated, r.requests)
	return r
}

// IncUserCreated adds one to user_created.
func (r *Registry) IncUserCreated() {
	r.userCreated.Inc()
}

// ObserveRequest counts one handled HTTP request.
func (r *Registry) ObserveRequest(method, route string, status int) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Render writes a snapshot of all families, sorted by name.
func (r *Registry) Render(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// String renders the registry, returning an empty string on failure.
func (r *Registry) String() string {
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}
