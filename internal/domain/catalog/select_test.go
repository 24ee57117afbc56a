package catalog

import (
	"errors"
	"testing"

	"homologacion_motos/internal/domain/entities"
)

// scenarioSnapshot is the BASE/MID arrangement: BASE (50) covers MIRROR max 1,
// MID (90) nests BASE capped at 2 plus LIGHT max 1.
func scenarioSnapshot() entities.CatalogSnapshot {
	return snapshot(
		[]entities.Element{element("el-mirror", "MIRROR", "Retrovisor"), element("el-light", "LIGHT", "Faro")},
		[]entities.TariffTier{tier("t-base", "BASE", 50), tier("t-mid", "MID", 90)},
		[]entities.TierInclusion{
			includeElement("t-base", "el-mirror", 1),
			includeTier("t-mid", "t-base", 2),
			includeElement("t-mid", "el-light", 1),
		},
	)
}

func TestSelectTariff_PicksCheapestCovering(t *testing.T) {
	s := scenarioSnapshot()

	t.Run("single element fits cheapest tier", func(t *testing.T) {
		sel, err := SelectTariff(s, []RequestedElement{{Code: "MIRROR", Quantity: 1}}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.Tier.Code != "BASE" {
			t.Fatalf("expected BASE, got %s", sel.Tier.Code)
		}
	})

	t.Run("both elements require MID", func(t *testing.T) {
		sel, err := SelectTariff(s, []RequestedElement{{Code: "MIRROR", Quantity: 1}, {Code: "LIGHT", Quantity: 1}}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.Tier.Code != "MID" {
			t.Fatalf("expected MID, got %s", sel.Tier.Code)
		}
	})

	t.Run("over-quantity is uncovered", func(t *testing.T) {
		_, err := SelectTariff(s, []RequestedElement{{Code: "MIRROR", Quantity: 2}}, nil)
		if !errors.Is(err, ErrNoTierCovers) {
			t.Fatalf("expected ErrNoTierCovers, got %v", err)
		}
	})

	t.Run("unknown element code", func(t *testing.T) {
		_, err := SelectTariff(s, []RequestedElement{{Code: "ESCAPE", Quantity: 1}}, nil)
		if !errors.Is(err, ErrUnknownElement) {
			t.Fatalf("expected ErrUnknownElement, got %v", err)
		}
	})
}

func TestSelectTariff_ElementCountBounds(t *testing.T) {
	s := snapshot(
		[]entities.Element{element("el-a", "A", "A")},
		[]entities.TariffTier{
			{ID: "t-small", CategoryID: "cat-motos", Code: "SMALL", Name: "SMALL", Price: 20, MinElements: 1, MaxElements: 2},
			{ID: "t-big", CategoryID: "cat-motos", Code: "BIG", Name: "BIG", Price: 80, MinElements: 3, MaxElements: 10},
		},
		[]entities.TierInclusion{
			includeElement("t-small", "el-a", 0),
			includeElement("t-big", "el-a", 0),
		},
	)

	sel, err := SelectTariff(s, []RequestedElement{{Code: "A", Quantity: 2}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Tier.Code != "SMALL" {
		t.Fatalf("expected SMALL for 2 units, got %s", sel.Tier.Code)
	}

	sel, err = SelectTariff(s, []RequestedElement{{Code: "A", Quantity: 4}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Tier.Code != "BIG" {
		t.Fatalf("expected BIG for 4 units, got %s", sel.Tier.Code)
	}
}

func TestSelectTariff_PriceTieBreaksOnCode(t *testing.T) {
	s := snapshot(
		[]entities.Element{element("el-a", "A", "A")},
		[]entities.TariffTier{tier("t-zz", "ZZ", 30), tier("t-aa", "AA", 30)},
		[]entities.TierInclusion{
			includeElement("t-zz", "el-a", 0),
			includeElement("t-aa", "el-a", 0),
		},
	)

	sel, err := SelectTariff(s, []RequestedElement{{Code: "A", Quantity: 1}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Tier.Code != "AA" {
		t.Fatalf("expected deterministic AA, got %s", sel.Tier.Code)
	}
}

func TestSelectTariff_UsesInjectedResolver(t *testing.T) {
	s := scenarioSnapshot()
	calls := 0
	resolve := func(tierID string) (Coverage, error) {
		calls++
		return Resolve(s, tierID)
	}
	if _, err := SelectTariff(s, []RequestedElement{{Code: "MIRROR", Quantity: 1}}, resolve); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls == 0 {
		t.Fatalf("expected injected resolver to be used")
	}
}

func TestClassifyText(t *testing.T) {
	s := snapshot(
		nil,
		[]entities.TariffTier{
			{ID: "t-low", CategoryID: "cat-motos", Code: "LOW", Price: 40, Classification: entities.ClassificationRule{Keywords: []string{"escape"}, Priority: 1}},
			{ID: "t-high", CategoryID: "cat-motos", Code: "HIGH", Price: 120, Classification: entities.ClassificationRule{Keywords: []string{"escape", "proyecto"}, Priority: 5, RequiresProject: true}},
			{ID: "t-mid2", CategoryID: "cat-motos", Code: "MID2", Price: 60, Classification: entities.ClassificationRule{Keywords: []string{"kit"}, Priority: 5}},
		},
		nil,
	)

	t.Run("highest priority wins", func(t *testing.T) {
		got, ok := ClassifyText(s, "quiero homologar el escape con proyecto")
		if !ok {
			t.Fatalf("expected a classification")
		}
		if got.Code != "HIGH" {
			t.Fatalf("expected HIGH, got %s", got.Code)
		}
	})

	t.Run("equal priority breaks on price", func(t *testing.T) {
		got, ok := ClassifyText(s, "kit de escape con proyecto")
		if !ok {
			t.Fatalf("expected a classification")
		}
		// MID2 and HIGH share priority 5; the cheaper MID2 wins.
		if got.Code != "MID2" {
			t.Fatalf("expected MID2, got %s", got.Code)
		}
	})

	t.Run("diacritics are folded", func(t *testing.T) {
		got, ok := ClassifyText(s, "ESCÁPE deportivo")
		if !ok {
			t.Fatalf("expected a classification")
		}
		// Folded text still hits the escape keyword; priority picks HIGH.
		if got.Code != "HIGH" {
			t.Fatalf("expected HIGH, got %s", got.Code)
		}
	})

	t.Run("no keyword match", func(t *testing.T) {
		if _, ok := ClassifyText(s, "algo sin relacion"); ok {
			t.Fatalf("expected no classification")
		}
	})
}
