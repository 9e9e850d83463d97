package httpapi

import (
	"net/http"

	"github.com/riskibarqy/puppy-bowl/internal/platform/logging"
	"github.com/riskibarqy/puppy-bowl/internal/platform/metrics"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	recorder *metrics.Recorder,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, recorder)
	registerPageRoutes(mux, handler)
	registerAPIRoutes(mux, handler)

	return RequestTracing(
		RequestID(
			RequestLogging(logger,
				CORS(corsAllowedOrigins,
					RequestMetrics(recorder, mux,
						recoverPanic(logger, mux))))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "request_id", requestIDFromContext(ctx))
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
