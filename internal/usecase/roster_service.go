package usecase

import (
	"context"
	"strconv"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/puppy-bowl/internal/domain/player"
	"github.com/riskibarqy/puppy-bowl/internal/domain/team"
	"github.com/riskibarqy/puppy-bowl/internal/platform/logging"
	"github.com/riskibarqy/puppy-bowl/internal/platform/metrics"
	"github.com/riskibarqy/puppy-bowl/internal/platform/resilience"
)

// PlayerView is the page surface the roster is drawn on.
type PlayerView interface {
	ReplacePlayers(players []player.Player) error
	ToggleDetails(id int64) bool
	SetFormValues(in player.NewPlayer)
}

type RosterServiceConfig struct {
	// GuardActions collapses identical create/delete actions that overlap
	// into a single upstream call and a single refresh.
	GuardActions bool
}

// RosterService fetches the roster, draws it, and refreshes after every
// successful mutation. There is no incremental update: a refresh is always a
// full re-fetch and re-render.
type RosterService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	view       PlayerView
	logger     *logging.Logger
	metrics    *metrics.Recorder

	guard   bool
	actions resilience.SingleFlight
}

func NewRosterService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	view PlayerView,
	logger *logging.Logger,
	recorder *metrics.Recorder,
	cfg RosterServiceConfig,
) *RosterService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RosterService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		view:       view,
		logger:     logger.Named("roster"),
		metrics:    recorder,
		guard:      cfg.GuardActions,
	}
}

// Init fetches players then teams and redraws the player list. Teams are
// fetched and dropped. A failed player fetch leaves the page as it was; a
// failed team fetch does not stop the redraw.
func (s *RosterService) Init(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Init")
	defer span.End()

	players, playersErr := s.playerRepo.ListPlayers(ctx)
	if playersErr != nil {
		s.logger.ErrorContext(ctx, "trouble fetching players", "error", playersErr)
	}

	if _, err := s.teamRepo.ListTeams(ctx); err != nil {
		s.logger.WarnContext(ctx, "trouble fetching teams", "error", err)
	}

	if playersErr != nil {
		return crerr.Wrap(playersErr, "list players")
	}

	err := s.view.ReplacePlayers(players)
	s.metrics.RecordRender(len(players), err)
	if err != nil {
		s.logger.ErrorContext(ctx, "trouble rendering players", "error", err)
		return crerr.Wrap(err, "render players")
	}
	return nil
}

// CreatePlayer submits the form values and refreshes once on success. The
// values stay on the form either way.
func (s *RosterService) CreatePlayer(ctx context.Context, in player.NewPlayer) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CreatePlayer")
	defer span.End()

	s.view.SetFormValues(in)

	_, err := s.runAction("create", func() (any, error) {
		if _, err := s.playerRepo.CreatePlayer(ctx, in); err != nil {
			return nil, crerr.Wrap(err, "create player")
		}
		return nil, s.Init(ctx)
	})
	return err
}

// DeletePlayer removes one player and refreshes once on success.
func (s *RosterService) DeletePlayer(ctx context.Context, id int64) (map[string]any, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeletePlayer")
	defer span.End()

	if id <= 0 {
		return nil, crerr.Mark(crerr.Newf("player id must be positive: %d", id), ErrInvalidInput)
	}

	val, err := s.runAction("delete:"+strconv.FormatInt(id, 10), func() (any, error) {
		body, err := s.playerRepo.DeletePlayer(ctx, id)
		if err != nil {
			return nil, crerr.Wrapf(err, "delete player=%d", id)
		}
		return body, s.Init(ctx)
	})

	body, _ := val.(map[string]any)
	return body, err
}

// GetPlayer returns the service's single-player response as is.
func (s *RosterService) GetPlayer(ctx context.Context, id int64) (map[string]any, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetPlayer")
	defer span.End()

	if id <= 0 {
		return nil, crerr.Mark(crerr.Newf("player id must be positive: %d", id), ErrInvalidInput)
	}

	body, err := s.playerRepo.GetPlayer(ctx, id)
	if err != nil {
		return nil, crerr.Wrapf(err, "get player=%d", id)
	}
	return body, nil
}

// ToggleDetails shows or hides one player's details. No request is made.
func (s *RosterService) ToggleDetails(ctx context.Context, id int64) error {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.ToggleDetails")
	defer span.End()

	if !s.view.ToggleDetails(id) {
		return crerr.Mark(crerr.Newf("player=%d is not on the page", id), ErrInvalidInput)
	}
	return nil
}

func (s *RosterService) runAction(key string, fn func() (any, error)) (any, error) {
	if !s.guard {
		return fn()
	}

	val, err, shared := s.actions.Do(key, fn)
	if shared {
		s.logger.Debug("joined in-flight action", "action", key)
	}
	return val, err
}
