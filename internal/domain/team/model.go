package team

// Team is fetched alongside players but only its identifier is meaningful to
// this client; the remaining fields are kept for completeness.
type Team struct {
	ID       int64
	Name     string
	Score    int
	CohortID int64
}
