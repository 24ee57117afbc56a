package response

import (
	"testing"

	"homologacion_motos/internal/domain/catalog"
	"homologacion_motos/internal/domain/entities"
)

func TestFromTariffSelection(t *testing.T) {
	sel := catalog.Selection{
		Tier: entities.TariffTier{ID: "tier-1", Code: "TB", Name: "Básica", Price: 150},
	}
	requested := []catalog.RequestedElement{
		{Code: "ESCAPE", Quantity: 1},
		{Code: "MANILLAR", Quantity: 2},
	}

	res := FromTariffSelection("cat-1", requested, sel)
	if res.CategoryID != "cat-1" || res.TierID != "tier-1" || res.TierCode != "TB" {
		t.Fatalf("unexpected tier fields: %+v", res)
	}
	if res.TierName != "Básica" || res.Price != 150 {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if len(res.Requested) != 2 || res.Requested[0].Code != "ESCAPE" || res.Requested[1].Quantity != 2 {
		t.Fatalf("unexpected requested lines: %+v", res.Requested)
	}
}
