package entities

import "time"

// CaseStatus represents the lifecycle of a homologation case.
//
// Domain notes:
//   - This service is the source of truth for case state; the chat layer only
//     proposes actions against it.
//   - A case is closed logically, never deleted: finalize moves it to
//     pendiente_revision, cancel to cancelado.

type CaseStatus string

const (
	CaseStatusActivo            CaseStatus = "activo"
	CaseStatusPendienteRevision CaseStatus = "pendiente_revision"
	CaseStatusCancelado         CaseStatus = "cancelado"
)

// CasePhase is the closed enumeration of collection phases.
//
// COLLECTING_ELEMENT carries its element index and photos/data subphase on the
// case record (ElementIndex + the two COLLECTING_ELEMENT_* values below).

type CasePhase string

const (
	PhaseIdle          CasePhase = "IDLE"
	PhaseElementPhotos CasePhase = "COLLECTING_ELEMENT_PHOTOS"
	PhaseElementData   CasePhase = "COLLECTING_ELEMENT_DATA"
	PhaseBaseDocs      CasePhase = "COLLECTING_BASE_DOCS"
	PhasePersonal      CasePhase = "COLLECTING_PERSONAL"
	PhaseVehicle       CasePhase = "COLLECTING_VEHICLE"
	PhaseWorkshop      CasePhase = "COLLECTING_WORKSHOP"
	PhaseReview        CasePhase = "REVIEW"
	PhaseCompleted     CasePhase = "COMPLETED"
)

// CaseElement is one requested element with its per-element collection state.
type CaseElement struct {
	Code            string            `json:"code"`
	Quantity        int               `json:"quantity"`
	PhotosConfirmed bool              `json:"photos_confirmed"`
	FieldsComplete  bool              `json:"fields_complete"`
	FieldValues     map[string]string `json:"field_values,omitempty"`
}

// VariantOption is one candidate answer of a pending variant question.
type VariantOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// PendingVariantQuestion is the explicit "awaiting disambiguation" state: at
// most one per case, keyed by the base element code that raised it.
type PendingVariantQuestion struct {
	BaseCode string          `json:"base_code"`
	Prompt   string          `json:"prompt"`
	Options  []VariantOption `json:"options"`
	Quantity int             `json:"quantity"`
}

// PendingItem is a start-case line queued behind a variant question; it is
// matched once the question resolves.
type PendingItem struct {
	Text     string `json:"text"`
	Quantity int    `json:"quantity"`
}

// CaseFlags are idempotency-relevant one-way switches.
type CaseFlags struct {
	PriceCommunicated bool `json:"price_communicated"`
	DocsImagesSent    bool `json:"docs_images_sent"`
}

// CaseNote is an audit note appended by terminal actions.
type CaseNote struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// Case is the durable per-conversation record the whole workflow hangs off.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (conversation_id-index): conversation_id
//
// At most one case per conversation is activo; finalized/cancelled cases stay
// behind for audit and for idempotent terminal-action replies.
type Case struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id"`
	CategoryID     string     `json:"category_id"`
	Status         CaseStatus `json:"status"`
	Phase          CasePhase  `json:"phase"`
	ElementIndex   int        `json:"element_index"`

	// StartItems keeps the raw start_case request lines; a repeated start with
	// the same lines is answered as already done instead of FSM_NOT_IDLE.
	StartItems []PendingItem `json:"start_items,omitempty"`

	Elements       []CaseElement           `json:"elements"`
	PendingVariant *PendingVariantQuestion `json:"pending_variant,omitempty"`
	PendingItems   []PendingItem           `json:"pending_items,omitempty"`

	PersonalData map[string]string `json:"personal_data,omitempty"`
	VehicleData  map[string]string `json:"vehicle_data,omitempty"`
	WorkshopData map[string]string `json:"workshop_data,omitempty"`

	SelectedTierID string  `json:"selected_tier_id,omitempty"`
	TierPrice      float64 `json:"tier_price,omitempty"`

	Flags CaseFlags `json:"flags"`

	ReviewTicketID string     `json:"review_ticket_id,omitempty"`
	CancellationID string     `json:"cancellation_id,omitempty"`
	Notes          []CaseNote `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CurrentElement returns the element under collection, or false when the
// index is out of range (terminal phases, empty case).
func (c Case) CurrentElement() (CaseElement, bool) {
	if c.ElementIndex < 0 || c.ElementIndex >= len(c.Elements) {
		return CaseElement{}, false
	}
	return c.Elements[c.ElementIndex], true
}

// ElementByCode looks up a requested element by its catalog code.
func (c Case) ElementByCode(code string) (CaseElement, int, bool) {
	for i, e := range c.Elements {
		if e.Code == code {
			return e, i, true
		}
	}
	return CaseElement{}, -1, false
}

func (c Case) IsActive() bool {
	return c.ID != "" && c.Status == CaseStatusActivo
}

// InElementPhase reports whether the case is collecting photos or data of an
// element.
func (c Case) InElementPhase() bool {
	return c.Phase == PhaseElementPhotos || c.Phase == PhaseElementData
}
