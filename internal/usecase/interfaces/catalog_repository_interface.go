package interfaces

import (
	"context"
	"homologacion_motos/internal/domain/entities"
)

// ICatalogRepository abstracts the read-only catalog tables. Writes happen in
// an external management interface; the only signal this service receives
// about them is a cache invalidation call.

type ICatalogRepository interface {
	GetCategory(ctx context.Context, id string) (entities.Category, error)
	ListElementsByCategoryID(ctx context.Context, categoryID string) ([]entities.Element, error)
	ListTiersByCategoryID(ctx context.Context, categoryID string) ([]entities.TariffTier, error)
	ListInclusionsByTierID(ctx context.Context, tierID string) ([]entities.TierInclusion, error)
}
