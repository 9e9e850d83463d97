package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/puppy-bowl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(upstreamURL string) config.Config {
	return config.Config{
		HTTPAddr:                    ":0",
		ReadTimeout:                 time.Second,
		WriteTimeout:                time.Second,
		CORSAllowedOrigins:          []string{"*"},
		PageTitle:                   "Puppy Bowl",
		PuppyBowlBaseURL:            upstreamURL,
		PuppyBowlCohort:             "test-cohort",
		PuppyBowlTimeout:            time.Second,
		PuppyBowlCircuitEnabled:     true,
		PuppyBowlCircuitFailures:    3,
		PuppyBowlCircuitOpenTimeout: time.Second,
		PuppyBowlCircuitHalfOpenMax: 1,
		MetricsEnabled:              true,
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.HTTPAddr = ""

	_, err := NewHTTPServer(cfg, nil)
	require.Error(t, err)
}

func TestNewHTTPServer_ServesPage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/test-cohort/players":
			_, _ = io.WriteString(w, `{"success":true,"error":null,"data":{"players":[{"id":1,"name":"Rex","teamId":null}]}}`)
		case "/test-cohort/teams":
			_, _ = io.WriteString(w, `{"success":true,"error":null,"data":{"teams":[]}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	srv, err := NewHTTPServer(testConfig(upstream.URL), nil)
	require.NoError(t, err)
	assert.Equal(t, ":0", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name Rex")

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
