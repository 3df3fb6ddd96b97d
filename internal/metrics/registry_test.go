package metrics

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_RenderStartsAtZero(t *testing.T) {
	r := NewRegistry()

	out := r.String()
	assert.Contains(t, out, "# HELP user_created Number of users created\n")
	assert.Contains(t, out, "# TYPE user_created counter\n")
	assert.Contains(t, out, "user_created 0\n")
}

func TestRegistry_IncUserCreated(t *testing.T) {
	r := NewRegistry()

	r.IncUserCreated()
	r.IncUserCreated()

	assert.Equal(t, float64(2), testutil.ToFloat64(r.userCreated))
	assert.Contains(t, r.String(), "user_created 2\n")
}

func TestRegistry_ConcurrentIncrementsAreNotLost(t *testing.T) {
	r := NewRegistry()

	const (
		goroutines = 50
		perRoutine = 20
	)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perRoutine; j++ {
				r.IncUserCreated()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, float64(goroutines*perRoutine), testutil.ToFloat64(r.userCreated))
	assert.Contains(t, r.String(), "user_created 1000\n")
}

func TestRegistry_ObserveRequest(t *testing.T) {
	r := NewRegistry()

	r.ObserveRequest(http.MethodGet, "/users", http.StatusOK)
	r.ObserveRequest(http.MethodGet, "/users", http.StatusOK)
	r.ObserveRequest(http.MethodPost, "/users", http.StatusBadRequest)

	out := r.String()
	assert.Contains(t, out, `http_requests_total{method="GET",route="/users",status="200"} 2`)
	assert.Contains(t, out, `http_requests_total{method="POST",route="/users",status="400"} 1`)
}

func TestRegistry_RenderIsDeterministic(t *testing.T) {
	r := NewRegistry()
	r.IncUserCreated()
	r.ObserveRequest(http.MethodPost, "/users", http.StatusOK)
	r.ObserveRequest(http.MethodGet, "/metrics", http.StatusOK)

	first := r.String()
	assert.Equal(t, first, r.String())

	// families are sorted by name
	assert.Less(t, strings.Index(first, "http_requests_total"), strings.Index(first, "user_created"))
}

func TestNoopRecorder(t *testing.T) {
	rec := NewNoop()
	assert.NotPanics(t, rec.IncUserCreated)
}
