package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/puppy-bowl/external/puppybowl"
	"github.com/riskibarqy/puppy-bowl/internal/config"
	"github.com/riskibarqy/puppy-bowl/internal/interfaces/httpapi"
	"github.com/riskibarqy/puppy-bowl/internal/platform/logging"
	"github.com/riskibarqy/puppy-bowl/internal/platform/metrics"
	"github.com/riskibarqy/puppy-bowl/internal/platform/resilience"
	"github.com/riskibarqy/puppy-bowl/internal/usecase"
	"github.com/riskibarqy/puppy-bowl/internal/view"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.NewRecorder()
	}

	client := puppybowl.NewClient(puppybowl.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.PuppyBowlTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL: cfg.PuppyBowlBaseURL,
		Cohort:  cfg.PuppyBowlCohort,
		Logger:  logger,
		Metrics: recorder,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.PuppyBowlCircuitEnabled,
			FailureThreshold: cfg.PuppyBowlCircuitFailures,
			OpenTimeout:      cfg.PuppyBowlCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PuppyBowlCircuitHalfOpenMax,
		},
	})

	page := view.NewPage(cfg.PageTitle)
	roster := usecase.NewRosterService(client, client, page, logger, recorder, usecase.RosterServiceConfig{
		GuardActions: cfg.ActionGuardEnabled,
	})

	handler := httpapi.NewHandler(roster, page, logger)
	router := httpapi.NewRouter(handler, logger, recorder, cfg.CORSAllowedOrigins)

	logger.Info("roster client configured",
		"api_url", client.APIURL(),
		"action_guard", cfg.ActionGuardEnabled,
		"metrics", cfg.MetricsEnabled,
	)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
