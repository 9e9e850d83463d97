package httpapi

import (
	"net/http"

	"github.com/riskibarqy/puppy-bowl/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, recorder *metrics.Recorder) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if recorder == nil {
		return
	}

	mux.Handle("GET /metrics", recorder.Handler())
}

// The page routes all answer with the full page so the browser never needs a
// second request to see the outcome of an action.
func registerPageRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Index)
	mux.HandleFunc("POST /players", handler.SubmitNewPlayer)
	mux.HandleFunc("POST /players/{playerID}/delete", handler.RemovePlayer)
	mux.HandleFunc("POST /players/{playerID}/details", handler.ToggleDetails)
}

func registerAPIRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/players/{playerID}", handler.GetPlayer)
}
