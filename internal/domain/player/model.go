package player

import "strconv"

// Status is owned by the Puppy Bowl service; the client renders whatever it returns.
type Status string

const (
	StatusField Status = "field"
	StatusBench Status = "bench"
)

// Player is a read-after-fetch copy of a roster record. Every field is
// server-assigned or server-echoed; the client never invents identifiers.
type Player struct {
	ID        int64 `validate:"gt=0"`
	Name      string
	Breed     string
	Status    Status
	ImageURL  string
	TeamID    *int64
	CohortID  int64
	CreatedAt string
	UpdatedAt string
}

// TeamLabel renders the nullable team reference the way the page shows it.
func (p Player) TeamLabel() string {
	if p.TeamID == nil {
		return "null"
	}
	return strconv.FormatInt(*p.TeamID, 10)
}

// NewPlayer carries the create-form fields exactly as the user typed them.
type NewPlayer struct {
	Name     string
	Breed    string
	Status   string
	ImageURL string
	TeamID   string
}
