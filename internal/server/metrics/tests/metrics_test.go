package tests

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/credkeeper/internal/server/metrics"
)

func TestObserveAuth_Counts(t *testing.T) {
	m := metrics.New()

	m.ObserveAuth(metrics.OpLogin, metrics.OutcomeOK)
	m.ObserveAuth(metrics.OpLogin, metrics.OutcomeInvalidCredentials)
	m.ObserveAuth(metrics.OpLogin, metrics.OutcomeInvalidCredentials)

	n, err := testutil.GatherAndCount(m.Registry(), "credkeeper_auth_operations_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

// nil-метрики не паникуют: хендлеры можно собирать без них
func TestNilMetrics(t *testing.T) {
	var m *metrics.Metrics

	require.NotPanics(t, func() {
		m.ObserveAuth(metrics.OpRegister, metrics.OutcomeOK)
		m.ObserveRequest(http.MethodPost, "/api/auth/register", http.StatusCreated, time.Millisecond)
	})
}

func TestHandler_Exposition(t *testing.T) {
	m := metrics.New()
	m.ObserveAuth(metrics.OpRegister, metrics.OutcomeConflict)
	m.ObserveRequest(http.MethodPost, "/api/auth/register", http.StatusConflict, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `credkeeper_auth_operations_total{operation="register",outcome="conflict"} 1`)
	require.Contains(t, string(body), `credkeeper_http_request_duration_seconds_count{method="POST",route="/api/auth/register",status="409"} 1`)
	require.Contains(t, string(body), "go_goroutines")
}
