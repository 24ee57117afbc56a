package response

import (
	"testing"
	"time"

	"homologacion_motos/internal/domain/entities"
	"homologacion_motos/internal/domain/flow"
)

func TestFromCaseState(t *testing.T) {
	now := time.Now().UTC()
	c := entities.Case{
		ID:             "case-1",
		ConversationID: "conv-1",
		CategoryID:     "cat-1",
		Status:         entities.CaseStatusActivo,
		Phase:          entities.PhaseElementData,
		ElementIndex:   1,
		Elements: []entities.CaseElement{
			{Code: "ESCAPE", Quantity: 1, PhotosConfirmed: true, FieldsComplete: true, FieldValues: map[string]string{"marca": "Akrapovic"}},
			{Code: "MANILLAR", Quantity: 2, PhotosConfirmed: true},
		},
		PendingVariant: &entities.PendingVariantQuestion{
			BaseCode: "MANILLARES",
			Prompt:   "¿Qué tipo de Manillares quieres homologar?",
			Options:  []entities.VariantOption{{Code: "MANILLAR", Name: "Manillar fijo"}},
			Quantity: 2,
		},
		PersonalData:   map[string]string{"nombre": "Ana"},
		SelectedTierID: "tier-1",
		TierPrice:      150,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	res := FromCaseState(c, []flow.Action{flow.ActionSaveElementFields, flow.ActionCancelCase})
	if res.CaseID != "case-1" || res.ConversationID != "conv-1" || res.CategoryID != "cat-1" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Status != "activo" || res.Phase != string(entities.PhaseElementData) || res.ElementIndex != 1 {
		t.Fatalf("unexpected state fields: %+v", res)
	}
	if len(res.Elements) != 2 || res.Elements[0].FieldValues["marca"] != "Akrapovic" || res.Elements[1].Code != "MANILLAR" {
		t.Fatalf("unexpected elements: %+v", res.Elements)
	}
	if res.PendingVariant == nil || res.PendingVariant.BaseCode != "MANILLARES" || len(res.PendingVariant.Options) != 1 {
		t.Fatalf("unexpected pending variant: %+v", res.PendingVariant)
	}
	if res.PersonalData["nombre"] != "Ana" || res.SelectedTierID != "tier-1" || res.TierPrice != 150 {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if len(res.AllowedActions) != 2 || res.AllowedActions[0] != "save_element_fields" || res.AllowedActions[1] != "cancel_case" {
		t.Fatalf("unexpected allowed actions: %+v", res.AllowedActions)
	}
	if !res.CreatedAt.Equal(now) || !res.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected dates: %+v", res)
	}
}

func TestFromCaseState_NoPendingVariant(t *testing.T) {
	res := FromCaseState(entities.Case{ID: "case-1", Phase: entities.PhaseIdle}, nil)
	if res.PendingVariant != nil {
		t.Fatalf("expected nil pending variant, got %+v", res.PendingVariant)
	}
	if res.Elements == nil || len(res.Elements) != 0 {
		t.Fatalf("expected empty element list, got %+v", res.Elements)
	}
	if res.AllowedActions == nil || len(res.AllowedActions) != 0 {
		t.Fatalf("expected empty action list, got %+v", res.AllowedActions)
	}
}
