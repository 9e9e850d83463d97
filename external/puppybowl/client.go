package puppybowl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/puppy-bowl/internal/domain/player"
	"github.com/riskibarqy/puppy-bowl/internal/domain/team"
	"github.com/riskibarqy/puppy-bowl/internal/platform/logging"
	"github.com/riskibarqy/puppy-bowl/internal/platform/metrics"
	"github.com/riskibarqy/puppy-bowl/internal/platform/resilience"
	"github.com/riskibarqy/puppy-bowl/internal/usecase"
)

const (
	DefaultBaseURL = "https://fsa-puppy-bowl.herokuapp.com/api"
	DefaultCohort  = "2308-ACC-PT-WEB-PT-A"

	defaultTimeout  = 10 * time.Second
	maxResponseSize = 1 << 20
)

const (
	opListPlayers  = "list_players"
	opGetPlayer    = "get_player"
	opListTeams    = "list_teams"
	opCreatePlayer = "create_player"
	opDeletePlayer = "delete_player"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Cohort         string
	Timeout        time.Duration
	Logger         *logging.Logger
	Metrics        *metrics.Recorder
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to one cohort of the Puppy Bowl API. It satisfies both
// player.Repository and team.Repository.
type Client struct {
	httpClient *http.Client
	apiURL     string
	logger     *logging.Logger
	metrics    *metrics.Recorder
	breaker    *resilience.CircuitBreaker
}

var (
	_ player.Repository = (*Client)(nil)
	_ team.Repository   = (*Client)(nil)
)

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Client{
		httpClient: httpClient,
		apiURL:     buildAPIURL(cfg.BaseURL, cfg.Cohort),
		logger:     logger.Named("puppybowl"),
		metrics:    cfg.Metrics,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// APIURL is the cohort-scoped root every endpoint hangs off.
func (c *Client) APIURL() string {
	return c.apiURL
}

func (c *Client) ListPlayers(ctx context.Context) (_ []player.Player, err error) {
	defer c.observe(opListPlayers, time.Now(), &err)

	var payload envelope[playersData]
	status, err := c.doJSON(ctx, opListPlayers, http.MethodGet, "/players", nil, &payload)
	if err != nil {
		return nil, err
	}
	if err := envelopeFailure(status, payload.Error); err != nil {
		return nil, c.fail(ctx, opListPlayers, err)
	}
	if payload.Data == nil || payload.Data.Players == nil {
		return nil, c.fail(ctx, opListPlayers, crerr.Mark(crerr.New("response has no data.players"), usecase.ErrTransport))
	}

	out := make([]player.Player, 0, len(payload.Data.Players))
	for _, item := range payload.Data.Players {
		out = append(out, mapPlayer(item))
	}
	return out, nil
}

func (c *Client) GetPlayer(ctx context.Context, id int64) (_ map[string]any, err error) {
	defer c.observe(opGetPlayer, time.Now(), &err)

	var body map[string]any
	if _, err := c.doJSON(ctx, opGetPlayer, http.MethodGet, playerPath(id), nil, &body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) ListTeams(ctx context.Context) (_ []team.Team, err error) {
	defer c.observe(opListTeams, time.Now(), &err)

	var payload envelope[teamsData]
	status, err := c.doJSON(ctx, opListTeams, http.MethodGet, "/teams", nil, &payload)
	if err != nil {
		return nil, err
	}
	if err := envelopeFailure(status, payload.Error); err != nil {
		return nil, c.fail(ctx, opListTeams, err)
	}
	if payload.Data == nil || payload.Data.Teams == nil {
		return nil, c.fail(ctx, opListTeams, crerr.Mark(crerr.New("response has no data.teams"), usecase.ErrTransport))
	}

	out := make([]team.Team, 0, len(payload.Data.Teams))
	for _, item := range payload.Data.Teams {
		out = append(out, mapTeam(item))
	}
	return out, nil
}

// CreatePlayer posts the form fields unchanged. The returned Player is empty
// when the service acknowledges without echoing the record.
func (c *Client) CreatePlayer(ctx context.Context, in player.NewPlayer) (_ player.Player, err error) {
	defer c.observe(opCreatePlayer, time.Now(), &err)

	var payload envelope[newPlayerData]
	status, err := c.doJSON(ctx, opCreatePlayer, http.MethodPost, "/players", toCreateRequest(in), &payload)
	if err != nil {
		return player.Player{}, err
	}
	if err := envelopeFailure(status, payload.Error); err != nil {
		return player.Player{}, c.fail(ctx, opCreatePlayer, err)
	}
	if payload.Data == nil || payload.Data.NewPlayer == nil {
		return player.Player{}, nil
	}
	return mapPlayer(*payload.Data.NewPlayer), nil
}

func (c *Client) DeletePlayer(ctx context.Context, id int64) (_ map[string]any, err error) {
	defer c.observe(opDeletePlayer, time.Now(), &err)

	var body map[string]any
	status, err := c.doJSON(ctx, opDeletePlayer, http.MethodDelete, playerPath(id), nil, &body)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, c.fail(ctx, opDeletePlayer, crerr.Mark(
			crerr.Newf("player could not be deleted: status=%d", status),
			usecase.ErrService,
		))
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

// doJSON performs one request and decodes the body into target. Transport and
// decode problems come back marked with usecase.ErrTransport; the HTTP status
// is returned so callers can apply their own success rules.
func (c *Client) doJSON(ctx context.Context, op, method, path string, body, target any) (int, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "puppybowl circuit breaker rejected request", "operation", op, "state", c.breaker.State())
		return 0, crerr.Mark(
			crerr.Wrapf(usecase.ErrDependencyUnavailable, "%s: roster api is temporarily unavailable", op),
			usecase.ErrTransport,
		)
	}

	status, raw, err := c.execute(ctx, method, c.apiURL+path, body)
	c.breaker.Record(err != nil || status >= http.StatusInternalServerError)
	if err != nil {
		c.logger.WarnContext(ctx, "puppybowl request failed", "operation", op, "method", method, "path", path, "error", err)
		return 0, err
	}
	if target == nil {
		return status, nil
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		if method == http.MethodDelete {
			return status, nil
		}
		return status, crerr.Mark(crerr.Newf("%s: empty response body (status=%d)", op, status), usecase.ErrTransport)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		c.logger.WarnContext(ctx, "puppybowl response decode failed",
			"operation", op,
			"status_code", status,
			"body", abbreviateBody(raw),
			"error", err,
		)
		return status, crerr.Mark(crerr.Wrapf(err, "%s: decode response", op), usecase.ErrTransport)
	}

	return status, nil
}

func (c *Client) execute(ctx context.Context, method, fullURL string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return 0, nil, crerr.Mark(crerr.Wrap(err, "encode request body"), usecase.ErrTransport)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return 0, nil, crerr.Mark(crerr.Wrap(err, "build request"), usecase.ErrTransport)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, crerr.Mark(crerr.Wrapf(err, "%s %s", method, fullURL), usecase.ErrTransport)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, crerr.Mark(crerr.Wrap(err, "read response body"), usecase.ErrTransport)
	}
	return resp.StatusCode, raw, nil
}

// fail logs a failure that happened after a successful round trip.
func (c *Client) fail(ctx context.Context, op string, err error) error {
	c.logger.WarnContext(ctx, "puppybowl request rejected", "operation", op, "error", err)
	return err
}

func (c *Client) observe(op string, started time.Time, errp *error) {
	outcome := metrics.OutcomeOK
	if errp != nil && *errp != nil {
		switch err := *errp; {
		case crerr.Is(err, usecase.ErrDependencyUnavailable):
			outcome = metrics.OutcomeUnavailable
		case crerr.Is(err, usecase.ErrService):
			outcome = metrics.OutcomeService
		default:
			outcome = metrics.OutcomeTransport
		}
	}
	c.metrics.RecordUpstream(op, outcome, time.Since(started))
}

func envelopeFailure(status int, apiErr *apiError) error {
	if apiErr.present() {
		return crerr.Mark(crerr.Newf("roster api error: %s", apiErr.String()), usecase.ErrService)
	}
	if status < 200 || status >= 300 {
		return crerr.Mark(crerr.Newf("roster api status=%d", status), usecase.ErrService)
	}
	return nil
}

func playerPath(id int64) string {
	return "/players/" + strconv.FormatInt(id, 10)
}

func buildAPIURL(baseURL, cohort string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cohort = strings.Trim(strings.TrimSpace(cohort), "/")
	if cohort == "" {
		cohort = DefaultCohort
	}
	return fmt.Sprintf("%s/%s", baseURL, url.PathEscape(cohort))
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
