package usecase

import (
	"context"
	"errors"
	"homologacion_motos/internal/domain/catalog"
	"homologacion_motos/internal/domain/entities"
	"homologacion_motos/internal/usecase/interfaces"
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ErrInvalidCategoryID = errors.New("invalid category id")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidTierID     = errors.New("invalid tier id")
)

const (
	snapshotCacheSize   = 128
	resolutionCacheSize = 1024
)

// ICatalogQueryUseCase is the read side of the catalog: snapshots, memoized
// tier resolution, tariff selection and keyword classification.
//
// Both caches answer concurrent readers without extra locking; invalidation
// is a coarse purge of everything, triggered by the management interface
// after any catalog write.

type ICatalogQueryUseCase interface {
	Snapshot(ctx context.Context, categoryID string) (entities.CatalogSnapshot, error)
	ResolveTier(ctx context.Context, categoryID, tierID string) (catalog.Coverage, error)
	SelectTariff(ctx context.Context, categoryID string, requested []catalog.RequestedElement) (catalog.Selection, error)
	ClassifyText(ctx context.Context, categoryID, text string) (entities.TariffTier, bool, error)
	InvalidateCache()
}

type CatalogQueryUseCase struct {
	repo        interfaces.ICatalogRepository
	snapshots   *lru.Cache[string, entities.CatalogSnapshot]
	resolutions *lru.Cache[string, catalog.Coverage]
}

var _ ICatalogQueryUseCase = (*CatalogQueryUseCase)(nil)

func NewCatalogQueryUseCase(repo interfaces.ICatalogRepository) *CatalogQueryUseCase {
	snapshots, _ := lru.New[string, entities.CatalogSnapshot](snapshotCacheSize)
	resolutions, _ := lru.New[string, catalog.Coverage](resolutionCacheSize)
	return &CatalogQueryUseCase{repo: repo, snapshots: snapshots, resolutions: resolutions}
}

// Snapshot loads (or serves from cache) the full catalog of one category.
func (u *CatalogQueryUseCase) Snapshot(ctx context.Context, categoryID string) (entities.CatalogSnapshot, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return entities.CatalogSnapshot{}, ErrInvalidCategoryID
	}
	if s, ok := u.snapshots.Get(categoryID); ok {
		return s, nil
	}

	cat, err := u.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return entities.CatalogSnapshot{}, err
	}
	if cat.ID == "" {
		return entities.CatalogSnapshot{}, ErrCategoryNotFound
	}
	elements, err := u.repo.ListElementsByCategoryID(ctx, categoryID)
	if err != nil {
		return entities.CatalogSnapshot{}, err
	}
	tiers, err := u.repo.ListTiersByCategoryID(ctx, categoryID)
	if err != nil {
		return entities.CatalogSnapshot{}, err
	}
	var inclusions []entities.TierInclusion
	for _, tier := range tiers {
		rows, err := u.repo.ListInclusionsByTierID(ctx, tier.ID)
		if err != nil {
			return entities.CatalogSnapshot{}, err
		}
		inclusions = append(inclusions, rows...)
	}

	s := entities.NewCatalogSnapshot(cat, elements, tiers, inclusions)
	u.snapshots.Add(categoryID, s)
	log.Printf("[catalog][usecase] snapshot loaded category_id=%s elements=%d tiers=%d inclusions=%d",
		categoryID, len(elements), len(tiers), len(inclusions))
	return s, nil
}

// ResolveTier returns the memoized flat coverage of one tier.
func (u *CatalogQueryUseCase) ResolveTier(ctx context.Context, categoryID, tierID string) (catalog.Coverage, error) {
	tierID = strings.TrimSpace(tierID)
	if tierID == "" {
		return nil, ErrInvalidTierID
	}
	s, err := u.Snapshot(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return u.resolveCached(s, tierID)
}

// resolveCached computes outside the cache's critical section, so a slow
// resolve never blocks concurrent readers.
func (u *CatalogQueryUseCase) resolveCached(s entities.CatalogSnapshot, tierID string) (catalog.Coverage, error) {
	if cov, ok := u.resolutions.Get(tierID); ok {
		return cov, nil
	}
	cov, err := catalog.Resolve(s, tierID)
	if err != nil {
		if errors.Is(err, catalog.ErrCycleDetected) {
			log.Printf("[catalog][usecase] inclusion cycle tier_id=%s err=%v", tierID, err)
		}
		return nil, err
	}
	u.resolutions.Add(tierID, cov)
	return cov, nil
}

// SelectTariff picks the cheapest tier covering the requested elements.
func (u *CatalogQueryUseCase) SelectTariff(ctx context.Context, categoryID string, requested []catalog.RequestedElement) (catalog.Selection, error) {
	s, err := u.Snapshot(ctx, categoryID)
	if err != nil {
		return catalog.Selection{}, err
	}
	return catalog.SelectTariff(s, requested, func(tierID string) (catalog.Coverage, error) {
		return u.resolveCached(s, tierID)
	})
}

// ClassifyText nominates a tier from free text via classification keywords.
func (u *CatalogQueryUseCase) ClassifyText(ctx context.Context, categoryID, text string) (entities.TariffTier, bool, error) {
	s, err := u.Snapshot(ctx, categoryID)
	if err != nil {
		return entities.TariffTier{}, false, err
	}
	tier, ok := catalog.ClassifyText(s, text)
	return tier, ok, nil
}

// InvalidateCache drops every cached snapshot and resolution. Called by the
// management interface after any catalog write; scoping the purge to the
// touched tiers is not worth the bookkeeping at this catalog size.
func (u *CatalogQueryUseCase) InvalidateCache() {
	u.snapshots.Purge()
	u.resolutions.Purge()
	log.Printf("[catalog][usecase] cache invalidated")
}
