package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerTeamLabel(t *testing.T) {
	teamID := int64(2)

	assert.Equal(t, "2", Player{TeamID: &teamID}.TeamLabel())
	assert.Equal(t, "null", Player{}.TeamLabel())
}
