package entities

// Catalog entities describe what can be homologated and at which price.
//
// The catalog is read-mostly: mutations come from an external management
// interface and only flow into this service as full reloads (plus a cache
// invalidation signal). The resolution/selection engines therefore work on
// an immutable CatalogSnapshot of one category.

// FieldType constrains how a required-field value is validated.

type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
	FieldTypeChoice FieldType = "choice"
)

// FieldCondition gates a required field on another field of the same element.
// The field is applicable only once the referenced field holds Equals.
type FieldCondition struct {
	FieldKey string `json:"field_key"`
	Equals   string `json:"equals"`
}

// RequiredField is one datum the requester must provide for an element.
type RequiredField struct {
	Key       string          `json:"key"`
	Label     string          `json:"label"`
	Type      FieldType       `json:"type"`
	Options   []string        `json:"options,omitempty"` // for FieldTypeChoice
	Condition *FieldCondition `json:"condition,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Element is a single homologable item or modification.
//
// An element with ParentElementID set is a variant of its parent: variants are
// mutually exclusive refinements that require an explicit disambiguation
// answer before the parent concept can be added to a case.
type Element struct {
	ID              string          `json:"id"`
	CategoryID      string          `json:"category_id"`
	Code            string          `json:"code"` // unique per category
	Name            string          `json:"name"`
	Keywords        []string        `json:"keywords"`
	ParentElementID string          `json:"parent_element_id,omitempty"`
	RequiredFields  []RequiredField `json:"required_fields,omitempty"`
}

func (e Element) IsVariant() bool {
	return e.ParentElementID != ""
}

// ClassificationRule drives the keyword classification path of the tariff
// selector: free text matching any keyword nominates the tier, highest
// priority wins.
type ClassificationRule struct {
	Keywords        []string `json:"keywords"`
	Priority        int      `json:"priority"`
	RequiresProject bool     `json:"requires_project"`
}

// TariffTier is a priced catalog entry covering a bundle of elements.
//
// MinElements/MaxElements bound the total requested unit count; zero
// MaxElements means unbounded.
type TariffTier struct {
	ID             string             `json:"id"`
	CategoryID     string             `json:"category_id"`
	Code           string             `json:"code"`
	Name           string             `json:"name"`
	Price          float64            `json:"price"`
	Classification ClassificationRule `json:"classification"`
	MinElements    int                `json:"min_elements"`
	MaxElements    int                `json:"max_elements"`
}

// TierInclusion grants a tier either up to MaxQuantity units of one element,
// or everything granted by a nested tier (clamped to MaxQuantity).
//
// Exactly one of ElementID/IncludedTierID is set. Zero MaxQuantity means
// unlimited.
type TierInclusion struct {
	ID             string `json:"id"`
	TierID         string `json:"tier_id"`
	ElementID      string `json:"element_id,omitempty"`
	IncludedTierID string `json:"included_tier_id,omitempty"`
	MinQuantity    int    `json:"min_quantity,omitempty"`
	MaxQuantity    int    `json:"max_quantity,omitempty"`
}

// CatalogSnapshot is the flat, id-keyed view of one category that the
// resolution, selection and matching engines operate on. Derived indexes are
// built once at construction; the snapshot itself is never mutated.
type CatalogSnapshot struct {
	Category   Category
	Elements   map[string]Element         // by element id
	Tiers      map[string]TariffTier      // by tier id
	Inclusions map[string][]TierInclusion // by owning tier id

	ElementByCode    map[string]Element   // canonical code -> element
	VariantsByParent map[string][]Element // parent element id -> children
}

// NewCatalogSnapshot indexes the raw rows of one category.
func NewCatalogSnapshot(category Category, elements []Element, tiers []TariffTier, inclusions []TierInclusion) CatalogSnapshot {
	s := CatalogSnapshot{
		Category:         category,
		Elements:         make(map[string]Element, len(elements)),
		Tiers:            make(map[string]TariffTier, len(tiers)),
		Inclusions:       make(map[string][]TierInclusion, len(tiers)),
		ElementByCode:    make(map[string]Element, len(elements)),
		VariantsByParent: make(map[string][]Element),
	}
	for _, e := range elements {
		s.Elements[e.ID] = e
		s.ElementByCode[e.Code] = e
	}
	for _, e := range elements {
		if e.ParentElementID != "" {
			s.VariantsByParent[e.ParentElementID] = append(s.VariantsByParent[e.ParentElementID], e)
		}
	}
	for _, t := range tiers {
		s.Tiers[t.ID] = t
	}
	for _, in := range inclusions {
		s.Inclusions[in.TierID] = append(s.Inclusions[in.TierID], in)
	}
	return s
}

// VariantsOf returns the variant children of an element, if any.
func (s CatalogSnapshot) VariantsOf(elementID string) []Element {
	return s.VariantsByParent[elementID]
}
