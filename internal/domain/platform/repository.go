package platform

import "context"

type Repository interface {
	Create(ctx context.Context, p *Platform) error
	// Get returns the singleton platform row.
	Get(ctx context.Context) (*Platform, error)
}
