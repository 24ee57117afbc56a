package response

import (
	"time"

	"homologacion_motos/internal/domain/entities"
	"homologacion_motos/internal/domain/flow"
)

type CaseElementResponse struct {
	Code            string            `json:"code"`
	Quantity        int               `json:"quantity"`
	PhotosConfirmed bool              `json:"photos_confirmed"`
	FieldsComplete  bool              `json:"fields_complete"`
	FieldValues     map[string]string `json:"field_values,omitempty"`
}

type VariantOptionResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type PendingVariantResponse struct {
	BaseCode string                  `json:"base_code"`
	Prompt   string                  `json:"prompt"`
	Options  []VariantOptionResponse `json:"options"`
	Quantity int                     `json:"quantity"`
}

// CaseStateResponse is the read-only snapshot served to the conversational
// layer: the case as stored plus the advisory action menu for its phase.
type CaseStateResponse struct {
	CaseID         string                  `json:"case_id"`
	ConversationID string                  `json:"conversation_id"`
	CategoryID     string                  `json:"category_id"`
	Status         string                  `json:"status"`
	Phase          string                  `json:"phase"`
	ElementIndex   int                     `json:"element_index"`
	Elements       []CaseElementResponse   `json:"elements"`
	PendingVariant *PendingVariantResponse `json:"pending_variant,omitempty"`
	PersonalData   map[string]string       `json:"personal_data,omitempty"`
	VehicleData    map[string]string       `json:"vehicle_data,omitempty"`
	WorkshopData   map[string]string       `json:"workshop_data,omitempty"`
	SelectedTierID string                  `json:"selected_tier_id,omitempty"`
	TierPrice      float64                 `json:"tier_price,omitempty"`
	ReviewTicketID string                  `json:"review_ticket_id,omitempty"`
	CancellationID string                  `json:"cancellation_id,omitempty"`
	AllowedActions []string                `json:"allowed_actions"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

func FromCaseState(c entities.Case, actions []flow.Action) CaseStateResponse {
	elements := make([]CaseElementResponse, 0, len(c.Elements))
	for _, e := range c.Elements {
		elements = append(elements, CaseElementResponse{
			Code:            e.Code,
			Quantity:        e.Quantity,
			PhotosConfirmed: e.PhotosConfirmed,
			FieldsComplete:  e.FieldsComplete,
			FieldValues:     e.FieldValues,
		})
	}

	var pending *PendingVariantResponse
	if c.PendingVariant != nil {
		options := make([]VariantOptionResponse, 0, len(c.PendingVariant.Options))
		for _, o := range c.PendingVariant.Options {
			options = append(options, VariantOptionResponse{Code: o.Code, Name: o.Name})
		}
		pending = &PendingVariantResponse{
			BaseCode: c.PendingVariant.BaseCode,
			Prompt:   c.PendingVariant.Prompt,
			Options:  options,
			Quantity: c.PendingVariant.Quantity,
		}
	}

	allowed := make([]string, 0, len(actions))
	for _, a := range actions {
		allowed = append(allowed, string(a))
	}

	return CaseStateResponse{
		CaseID:         c.ID,
		ConversationID: c.ConversationID,
		CategoryID:     c.CategoryID,
		Status:         string(c.Status),
		Phase:          string(c.Phase),
		ElementIndex:   c.ElementIndex,
		Elements:       elements,
		PendingVariant: pending,
		PersonalData:   c.PersonalData,
		VehicleData:    c.VehicleData,
		WorkshopData:   c.WorkshopData,
		SelectedTierID: c.SelectedTierID,
		TierPrice:      c.TierPrice,
		ReviewTicketID: c.ReviewTicketID,
		CancellationID: c.CancellationID,
		AllowedActions: allowed,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
