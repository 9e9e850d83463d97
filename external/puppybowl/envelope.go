package puppybowl

import (
	"bytes"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/puppy-bowl/internal/domain/player"
	"github.com/riskibarqy/puppy-bowl/internal/domain/team"
)

// envelope is the {success, error, data} wrapper every roster endpoint returns.
type envelope[T any] struct {
	Success bool      `json:"success"`
	Error   *apiError `json:"error"`
	Data    *T        `json:"data"`
}

type playersData struct {
	Players []playerDTO `json:"players"`
}

type teamsData struct {
	Teams []teamDTO `json:"teams"`
}

type newPlayerData struct {
	NewPlayer *playerDTO `json:"newPlayer"`
}

type playerDTO struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Breed     string     `json:"breed"`
	Status    string     `json:"status"`
	ImageURL  string     `json:"imageUrl"`
	TeamID    nullableID `json:"teamId"`
	CohortID  nullableID `json:"cohortId"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

type teamDTO struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Score    int        `json:"score"`
	CohortID nullableID `json:"cohortId"`
}

type createPlayerRequest struct {
	Name     string `json:"name"`
	Breed    string `json:"breed"`
	Status   string `json:"status"`
	ImageURL string `json:"imageUrl"`
	TeamID   string `json:"teamId"`
}

// apiError accepts both `"error": "message"` and `"error": {"name":..,"message":..}`.
type apiError struct {
	Name    string
	Message string
}

func (e *apiError) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var msg string
		if err := sonic.Unmarshal(trimmed, &msg); err != nil {
			return err
		}
		e.Message = msg
		return nil
	}

	var obj struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := sonic.Unmarshal(trimmed, &obj); err != nil {
		return crerr.Wrap(err, "decode error field")
	}
	e.Name = obj.Name
	e.Message = obj.Message
	return nil
}

func (e *apiError) present() bool {
	return e != nil && (strings.TrimSpace(e.Message) != "" || strings.TrimSpace(e.Name) != "")
}

func (e *apiError) String() string {
	if e == nil {
		return ""
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		return strings.TrimSpace(e.Name)
	}
	return msg
}

// nullableID decodes ids the API sends as numbers, numeric strings or null.
type nullableID struct {
	Value int64
	Valid bool
}

func (n *nullableID) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*n = nullableID{}
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return crerr.Wrapf(err, "parse id %q", raw)
	}
	*n = nullableID{Value: v, Valid: true}
	return nil
}

func (n nullableID) ptr() *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

func mapPlayer(dto playerDTO) player.Player {
	return player.Player{
		ID:        dto.ID,
		Name:      dto.Name,
		Breed:     dto.Breed,
		Status:    player.Status(dto.Status),
		ImageURL:  dto.ImageURL,
		TeamID:    dto.TeamID.ptr(),
		CohortID:  dto.CohortID.Value,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}
}

func mapTeam(dto teamDTO) team.Team {
	return team.Team{
		ID:       dto.ID,
		Name:     dto.Name,
		Score:    dto.Score,
		CohortID: dto.CohortID.Value,
	}
}

func toCreateRequest(in player.NewPlayer) createPlayerRequest {
	return createPlayerRequest{
		Name:     in.Name,
		Breed:    in.Breed,
		Status:   in.Status,
		ImageURL: in.ImageURL,
		TeamID:   in.TeamID,
	}
}
