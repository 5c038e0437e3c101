package contract

import (
	"context"

	"cassie-be/internal/entity"
)

type GeneratedContextRepository interface {
	// FindBySiteId returns nil, nil when the site has no context.
	FindBySiteId(ctx context.Context, siteId string) (*entity.GeneratedContext, error)
	Save(ctx context.Context, generated *entity.GeneratedContext) error
}
