package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/homer/internal/metrics"
)

func TestHandler_Root_ServesGeneratedPage(t *testing.T) {
	output := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(output, []byte("<html>hello</html>"), 0o644))

	ts := httptest.NewServer(New(0, output, nil).Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "<html>hello</html>", string(body))
}

func TestHandler_MissingOutput_Returns503(t *testing.T) {
	ts := httptest.NewServer(New(0, filepath.Join(t.TempDir(), "nope.html"), nil).Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandler_UnknownPath_Returns404(t *testing.T) {
	output := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(output, []byte("x"), 0o644))

	ts := httptest.NewServer(New(0, output, nil).Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/secret")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_Healthz_ReturnsOK(t *testing.T) {
	ts := httptest.NewServer(New(0, "unused", nil).Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestHandler_MetricsEndpoint_ExposedWhenConfigured(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	rec.IncRunOutcome(metrics.OutcomeSuccess)

	ts := httptest.NewServer(New(0, "unused", metrics.Handler(reg)).Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "homer_run_outcomes_total")
}

func TestHandler_MetricsEndpoint_AbsentByDefault(t *testing.T) {
	ts := httptest.NewServer(New(0, "unused", nil).Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
