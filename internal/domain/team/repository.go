package team

import "context"

type Repository interface {
	ListTeams(ctx context.Context) ([]Team, error)
}
