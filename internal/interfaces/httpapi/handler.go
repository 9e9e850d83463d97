package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/puppy-bowl/internal/platform/logging"
	"github.com/riskibarqy/puppy-bowl/internal/usecase"
	"github.com/riskibarqy/puppy-bowl/internal/view"
)

const maxFormBytes = 64 << 10

// Handler serves the roster page. Roster failures are logged and never shown;
// the page simply keeps its last good state.
type Handler struct {
	roster *usecase.RosterService
	page   *view.Page
	logger *logging.Logger
}

func NewHandler(roster *usecase.RosterService, page *view.Page, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Handler{
		roster: roster,
		page:   page,
		logger: logger.Named("httpapi"),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Index is a page load: fetch, draw, respond.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Index")
	defer span.End()

	if err := h.roster.Init(ctx); err != nil {
		h.logger.ErrorContext(ctx, "uh oh, trouble loading the roster", "request_id", requestIDFromContext(ctx), "error", err)
	}
	h.writePage(ctx, w)
}

func (h *Handler) SubmitNewPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitNewPlayer")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.WarnContext(ctx, "new player form could not be read", "request_id", requestIDFromContext(ctx), "error", err)
		h.writePage(ctx, w)
		return
	}

	in := view.NewPlayerFromForm(r.PostForm)
	if err := h.roster.CreatePlayer(ctx, in); err != nil {
		h.logger.ErrorContext(ctx, "oops, something went wrong with adding that player",
			"request_id", requestIDFromContext(ctx),
			"name", in.Name,
			"error", err,
		)
	}
	h.writePage(ctx, w)
}

func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemovePlayer")
	defer span.End()

	id, err := parsePlayerID(r)
	if err != nil {
		h.logger.WarnContext(ctx, "remove player ignored", "request_id", requestIDFromContext(ctx), "error", err)
		h.writePage(ctx, w)
		return
	}

	if _, err := h.roster.DeletePlayer(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "whoops, trouble removing player from the roster",
			"request_id", requestIDFromContext(ctx),
			"player_id", id,
			"error", err,
		)
	}
	h.writePage(ctx, w)
}

func (h *Handler) ToggleDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleDetails")
	defer span.End()

	id, err := parsePlayerID(r)
	if err == nil {
		err = h.roster.ToggleDetails(ctx, id)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "toggle details ignored", "request_id", requestIDFromContext(ctx), "error", err)
	}
	h.writePage(ctx, w)
}

// GetPlayer relays the service's single-player response. A failed fetch
// yields nothing, which is answered with 204.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	id, err := parsePlayerID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	body, err := h.roster.GetPlayer(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "oh no, trouble fetching player",
			"request_id", requestIDFromContext(ctx),
			"player_id", id,
			"error", err,
		)
	}
	if body == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(ctx, w, http.StatusOK, body)
}

func (h *Handler) writePage(ctx context.Context, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.page.Render(w); err != nil {
		h.logger.ErrorContext(ctx, "write page failed", "request_id", requestIDFromContext(ctx), "error", err)
	}
}

func parsePlayerID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("playerID"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, crerr.Mark(crerr.Newf("invalid player id %q", raw), usecase.ErrInvalidInput)
	}
	return id, nil
}
