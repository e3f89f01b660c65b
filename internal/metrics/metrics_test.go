package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrievalsCounter(t *testing.T) {
	before := testutil.ToFloat64(Retrievals.WithLabelValues("ok"))
	Retrievals.WithLabelValues("ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Retrievals.WithLabelValues("ok")))
}

func TestHandler(t *testing.T) {
	Completions.WithLabelValues("groq", "degraded").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `protox_completions_total{outcome="degraded",provider="groq"}`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
