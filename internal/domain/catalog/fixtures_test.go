package catalog

import "homologacion_motos/internal/domain/entities"

// snapshot builds a CatalogSnapshot for the moto category used across the
// engine tests.
func snapshot(elements []entities.Element, tiers []entities.TariffTier, inclusions []entities.TierInclusion) entities.CatalogSnapshot {
	return entities.NewCatalogSnapshot(
		entities.Category{ID: "cat-motos", Name: "Motocicletas", Slug: "motos"},
		elements, tiers, inclusions,
	)
}

func element(id, code, name string, keywords ...string) entities.Element {
	return entities.Element{ID: id, CategoryID: "cat-motos", Code: code, Name: name, Keywords: keywords}
}

func variant(id, code, name, parentID string, keywords ...string) entities.Element {
	e := element(id, code, name, keywords...)
	e.ParentElementID = parentID
	return e
}

func tier(id, code string, price float64) entities.TariffTier {
	return entities.TariffTier{ID: id, CategoryID: "cat-motos", Code: code, Name: code, Price: price}
}

func includeElement(tierID, elementID string, maxQty int) entities.TierInclusion {
	return entities.TierInclusion{ID: "in-" + tierID + "-" + elementID, TierID: tierID, ElementID: elementID, MaxQuantity: maxQty}
}

func includeTier(tierID, nestedTierID string, maxQty int) entities.TierInclusion {
	return entities.TierInclusion{ID: "in-" + tierID + "-" + nestedTierID, TierID: tierID, IncludedTierID: nestedTierID, MaxQuantity: maxQty}
}
