package view

import (
	"net/url"

	"github.com/riskibarqy/puppy-bowl/internal/domain/player"
)

// NewPlayerFromForm reads the new-player form. The name travels in the
// "title" field; values are passed through untouched.
func NewPlayerFromForm(values url.Values) player.NewPlayer {
	return player.NewPlayer{
		Name:     values.Get(FieldTitle),
		Breed:    values.Get(FieldBreed),
		Status:   values.Get(FieldStatus),
		ImageURL: values.Get(FieldImageURL),
		TeamID:   values.Get(FieldTeamID),
	}
}
