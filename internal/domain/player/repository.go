package player

import "context"

// Repository is the remote roster as seen by use cases.
type Repository interface {
	ListPlayers(ctx context.Context) ([]Player, error)
	// GetPlayer returns the decoded response body without unwrapping its envelope.
	GetPlayer(ctx context.Context, id int64) (map[string]any, error)
	CreatePlayer(ctx context.Context, in NewPlayer) (Player, error)
	DeletePlayer(ctx context.Context, id int64) (map[string]any, error)
}
