package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"homologacion_motos/internal/domain/entities"
	"homologacion_motos/internal/domain/flow"
	mock_interfaces "homologacion_motos/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

// The fixtures below model one category with a simple tariff ladder: a basic
// tier covering one exhaust, and a full tier nesting it plus handlebar
// variants. The handlebar base forces the disambiguation path.

func flowElements() []entities.Element {
	return []entities.Element{
		{ID: "el-escape", CategoryID: "cat-1", Code: "ESCAPE", Name: "Escape", Keywords: []string{"escape", "exhaust", "tubo de escape"}, RequiredFields: []entities.RequiredField{
			{Key: "marca", Label: "Marca del escape", Type: entities.FieldTypeText},
			{Key: "db_nivel", Label: "Nivel de ruido (dB)", Type: entities.FieldTypeNumber},
		}},
		{ID: "el-manillares", CategoryID: "cat-1", Code: "MANILLARES", Name: "Manillares", Keywords: []string{"manillar", "manillares"}},
		{ID: "el-manillar", CategoryID: "cat-1", Code: "MANILLAR", Name: "Manillar fijo", Keywords: []string{"manillar fijo", "fijo"}, ParentElementID: "el-manillares", RequiredFields: []entities.RequiredField{
			{Key: "anchura", Label: "Anchura (mm)", Type: entities.FieldTypeNumber},
		}},
		{ID: "el-semimanillares", CategoryID: "cat-1", Code: "SEMIMANILLARES", Name: "Semimanillares", Keywords: []string{"semimanillar", "semimanillares", "semi"}, ParentElementID: "el-manillares"},
	}
}

func flowTiers() []entities.TariffTier {
	return []entities.TariffTier{
		{ID: "tier-basic", CategoryID: "cat-1", Code: "TB", Name: "Tarifa basica", Price: 150, Classification: entities.ClassificationRule{Keywords: []string{"escape"}, Priority: 1}},
		{ID: "tier-full", CategoryID: "cat-1", Code: "TF", Name: "Tarifa completa", Price: 300, Classification: entities.ClassificationRule{Keywords: []string{"proyecto", "reforma"}, Priority: 5, RequiresProject: true}},
	}
}

func flowInclusions(tierID string) []entities.TierInclusion {
	switch tierID {
	case "tier-basic":
		return []entities.TierInclusion{
			{ID: "inc-1", TierID: "tier-basic", ElementID: "el-escape", MaxQuantity: 1},
		}
	case "tier-full":
		return []entities.TierInclusion{
			{ID: "inc-2", TierID: "tier-full", IncludedTierID: "tier-basic"},
			{ID: "inc-3", TierID: "tier-full", ElementID: "el-manillar", MaxQuantity: 2},
			{ID: "inc-4", TierID: "tier-full", ElementID: "el-semimanillares", MaxQuantity: 2},
		}
	}
	return nil
}

func newCatalogFixture(ctrl *gomock.Controller) *CatalogQueryUseCase {
	repo := mock_interfaces.NewMockICatalogRepository(ctrl)
	repo.EXPECT().GetCategory(gomock.Any(), "cat-1").Return(entities.Category{ID: "cat-1", Name: "Motocicletas", Slug: "motocicletas"}, nil).AnyTimes()
	repo.EXPECT().ListElementsByCategoryID(gomock.Any(), "cat-1").Return(flowElements(), nil).AnyTimes()
	repo.EXPECT().ListTiersByCategoryID(gomock.Any(), "cat-1").Return(flowTiers(), nil).AnyTimes()
	repo.EXPECT().ListInclusionsByTierID(gomock.Any(), "tier-basic").Return(flowInclusions("tier-basic"), nil).AnyTimes()
	repo.EXPECT().ListInclusionsByTierID(gomock.Any(), "tier-full").Return(flowInclusions("tier-full"), nil).AnyTimes()
	return NewCatalogQueryUseCase(repo)
}

// caseStore backs the case repository mock with real state so a test can walk
// the whole workflow through one conversation.
type caseStore struct {
	current entities.Case
	saves   int
}

type ticketStore struct {
	byCase  map[string]entities.ReviewTicket
	creates int
}

func newFlowFixture(ctrl *gomock.Controller) (*CaseFlowUseCase, *caseStore, *ticketStore) {
	store := &caseStore{}
	cases := mock_interfaces.NewMockICaseRepository(ctrl)
	cases.EXPECT().GetCurrentByConversationID(gomock.Any(), "conv-1").DoAndReturn(
		func(_ context.Context, _ string) (entities.Case, error) { return store.current, nil },
	).AnyTimes()
	cases.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c entities.Case) (entities.Case, error) {
			store.current = c
			store.saves++
			return c, nil
		},
	).AnyTimes()
	cases.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c entities.Case) (entities.Case, error) {
			store.current = c
			store.saves++
			return c, nil
		},
	).AnyTimes()

	tstore := &ticketStore{byCase: map[string]entities.ReviewTicket{}}
	tickets := mock_interfaces.NewMockIReviewTicketRepository(ctrl)
	tickets.EXPECT().GetByCaseID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, caseID string) (entities.ReviewTicket, error) { return tstore.byCase[caseID], nil },
	).AnyTimes()
	tickets.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tk entities.ReviewTicket) (entities.ReviewTicket, error) {
			tstore.byCase[tk.CaseID] = tk
			tstore.creates++
			return tk, nil
		},
	).AnyTimes()

	return NewCaseFlowUseCase(cases, tickets, newCatalogFixture(ctrl), "cat-1"), store, tstore
}

func do(t *testing.T, uc *CaseFlowUseCase, action, payload string) ActionResult {
	t.Helper()
	var raw json.RawMessage
	if payload != "" {
		raw = json.RawMessage(payload)
	}
	res, err := uc.HandleAction(context.Background(), "conv-1", action, raw)
	if err != nil {
		t.Fatalf("action %s: unexpected error: %v", action, err)
	}
	return res
}

// redo re-sends the exact same call and requires the calm already-done reply
// with no writes and no phase movement.
func redo(t *testing.T, uc *CaseFlowUseCase, store *caseStore, action, payload string) {
	t.Helper()
	phase := store.current.Phase
	saves := store.saves
	res := do(t, uc, action, payload)
	if !res.AlreadyDone || res.ErrorCode != "" {
		t.Fatalf("expected replayed %s to be already done, got %+v", action, res)
	}
	if store.current.Phase != phase {
		t.Fatalf("replayed %s moved phase %s -> %s", action, phase, store.current.Phase)
	}
	if store.saves != saves {
		t.Fatalf("replayed %s wrote to the repository", action)
	}
}

func TestCaseFlowUseCase_HandleAction_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, _, _ := newFlowFixture(ctrl)

	t.Run("empty conversation id", func(t *testing.T) {
		_, err := uc.HandleAction(context.Background(), "   ", "start_case", nil)
		if !errors.Is(err, ErrInvalidConversationID) {
			t.Fatalf("expected ErrInvalidConversationID, got %v", err)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := uc.HandleAction(context.Background(), "conv-1", "drop_table", nil)
		if !errors.Is(err, ErrUnknownAction) {
			t.Fatalf("expected ErrUnknownAction, got %v", err)
		}
	})
}

func TestCaseFlowUseCase_FullWalkWithReplays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, store, tstore := newFlowFixture(ctrl)

	start := `{"items":[{"text":"escape deportivo"}]}`
	res := do(t, uc, "start_case", start)
	if !res.Success || res.AlreadyDone {
		t.Fatalf("unexpected start result: %+v", res)
	}
	if store.current.Phase != entities.PhaseElementPhotos {
		t.Fatalf("expected photos phase, got %s", store.current.Phase)
	}
	if store.current.SelectedTierID != "tier-basic" || store.current.TierPrice != 150 {
		t.Fatalf("unexpected tariff on case: %+v", store.current)
	}
	if !store.current.Flags.PriceCommunicated {
		t.Fatalf("expected the price-communicated flag to be set")
	}
	if !strings.Contains(res.Message, "150.00") {
		t.Fatalf("expected the price in the start reply, got %q", res.Message)
	}
	firstCaseID := store.current.ID
	redo(t, uc, store, "start_case", start)

	res = do(t, uc, "confirm_photos", "")
	if !res.Success || store.current.Phase != entities.PhaseElementData {
		t.Fatalf("confirm_photos: %+v phase=%s", res, store.current.Phase)
	}
	redo(t, uc, store, "confirm_photos", "")

	fields := `{"values":{"marca":"Akrapovic","db_nivel":"95"}}`
	res = do(t, uc, "save_element_fields", fields)
	if !res.Success {
		t.Fatalf("save_element_fields: %+v", res)
	}
	if store.current.Elements[0].FieldValues["db_nivel"] != "95" {
		t.Fatalf("unexpected stored fields: %+v", store.current.Elements[0].FieldValues)
	}
	redo(t, uc, store, "save_element_fields", fields)

	res = do(t, uc, "complete_element", "")
	if !res.Success || store.current.Phase != entities.PhaseBaseDocs {
		t.Fatalf("complete_element: %+v phase=%s", res, store.current.Phase)
	}
	if !store.current.Flags.DocsImagesSent {
		t.Fatalf("expected the docs-images flag to be set")
	}
	redo(t, uc, store, "complete_element", "")

	res = do(t, uc, "confirm_base_docs", "")
	if !res.Success || store.current.Phase != entities.PhasePersonal {
		t.Fatalf("confirm_base_docs: %+v phase=%s", res, store.current.Phase)
	}
	redo(t, uc, store, "confirm_base_docs", "")

	personal := `{"values":{"nombre":"Ana","apellidos":"García López","dni":"12345678Z","telefono":"600123456","email":"ana@example.com"}}`
	res = do(t, uc, "save_personal_data", personal)
	if !res.Success || store.current.Phase != entities.PhaseVehicle {
		t.Fatalf("save_personal_data: %+v phase=%s", res, store.current.Phase)
	}
	redo(t, uc, store, "save_personal_data", personal)

	vehicle := `{"values":{"marca":"Yamaha","modelo":"MT-07","matricula":"1234ABC","bastidor":"JYARM041000012345","fecha_matriculacion":"1/3/2019"}}`
	res = do(t, uc, "save_vehicle_data", vehicle)
	if !res.Success || store.current.Phase != entities.PhaseWorkshop {
		t.Fatalf("save_vehicle_data: %+v phase=%s", res, store.current.Phase)
	}
	redo(t, uc, store, "save_vehicle_data", vehicle)

	workshop := `{"values":{"nombre_taller":"Talleres Pérez","cif":"B12345678","provincia":"Sevilla"}}`
	res = do(t, uc, "save_workshop_data", workshop)
	if !res.Success || store.current.Phase != entities.PhaseReview {
		t.Fatalf("save_workshop_data: %+v phase=%s", res, store.current.Phase)
	}
	if res.Data["review"] == nil {
		t.Fatalf("expected the review summary on entering review")
	}
	redo(t, uc, store, "save_workshop_data", workshop)

	res = do(t, uc, "finalize_case", "")
	if !res.Success || store.current.Phase != entities.PhaseCompleted {
		t.Fatalf("finalize_case: %+v phase=%s", res, store.current.Phase)
	}
	if store.current.Status != entities.CaseStatusPendienteRevision || store.current.ReviewTicketID == "" {
		t.Fatalf("unexpected finalized case: %+v", store.current)
	}
	if tstore.creates != 1 {
		t.Fatalf("expected exactly one ticket, got %d", tstore.creates)
	}
	ticketID := store.current.ReviewTicketID

	res = do(t, uc, "finalize_case", "")
	if !res.AlreadyDone || res.Data["review_ticket_id"] != ticketID {
		t.Fatalf("expected finalize replay with the same ticket, got %+v", res)
	}
	if tstore.creates != 1 {
		t.Fatalf("finalize replay opened another ticket")
	}

	// The conversation can start over once the case left the active state.
	res = do(t, uc, "start_case", start)
	if !res.Success || res.AlreadyDone {
		t.Fatalf("expected a fresh case after completion, got %+v", res)
	}
	if store.current.ID == firstCaseID {
		t.Fatalf("expected a new case id")
	}
}

func TestCaseFlowUseCase_StartCaseFailures(t *testing.T) {
	t.Run("second start with different items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, store, _ := newFlowFixture(ctrl)

		do(t, uc, "start_case", `{"items":[{"text":"escape deportivo"}]}`)
		res := do(t, uc, "start_case", `{"items":[{"text":"otro escape"}]}`)
		if res.ErrorCode != CodeFSMNotIdle {
			t.Fatalf("expected FSM_NOT_IDLE, got %+v", res)
		}
		if store.current.Phase != entities.PhaseElementPhotos {
			t.Fatalf("rejected start must not touch the case")
		}
	})

	t.Run("no item matches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, store, _ := newFlowFixture(ctrl)

		res := do(t, uc, "start_case", `{"items":[{"text":"escape deportivo"},{"text":"alerón trasero"}]}`)
		if res.ErrorCode != CodeNoMatch {
			t.Fatalf("expected NO_MATCH, got %+v", res)
		}
		if store.saves != 0 || store.current.ID != "" {
			t.Fatalf("NO_MATCH must persist nothing")
		}
	})

	t.Run("no tier covers the quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, store, _ := newFlowFixture(ctrl)

		res := do(t, uc, "start_case", `{"items":[{"text":"escape deportivo","quantity":5}]}`)
		if res.ErrorCode != CodeNoTierCovers {
			t.Fatalf("expected NO_TIER_COVERS, got %+v", res)
		}
		if store.saves != 0 || store.current.ID != "" {
			t.Fatalf("NO_TIER_COVERS must persist nothing")
		}
	})

	t.Run("missing items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _ := newFlowFixture(ctrl)

		res := do(t, uc, "start_case", `{}`)
		if res.ErrorCode != CodeFieldInvalid {
			t.Fatalf("expected FIELD_INVALID, got %+v", res)
		}
	})

	t.Run("collection action before any case", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _ := newFlowFixture(ctrl)

		res := do(t, uc, "confirm_photos", "")
		if res.ErrorCode != CodeFSMWrongPhase {
			t.Fatalf("expected FSM_WRONG_PHASE, got %+v", res)
		}
	})
}

func TestCaseFlowUseCase_VariantFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, store, _ := newFlowFixture(ctrl)

	res := do(t, uc, "start_case", `{"items":[{"text":"escape deportivo"},{"text":"quiero cambiar los manillares"}]}`)
	if !res.Success {
		t.Fatalf("start with ambiguous item: %+v", res)
	}
	if store.current.Phase != entities.PhaseIdle {
		t.Fatalf("case must wait in idle while the question is open, got %s", store.current.Phase)
	}
	if store.current.PendingVariant == nil || store.current.PendingVariant.BaseCode != "MANILLARES" {
		t.Fatalf("expected a pending manillares question: %+v", store.current.PendingVariant)
	}
	if res.Message != "¿Qué tipo de Manillares quieres homologar?" {
		t.Fatalf("unexpected prompt %q", res.Message)
	}

	res = do(t, uc, "select_variant", `{"text":"no sé"}`)
	if res.ErrorCode != CodeNoConfidentVariant {
		t.Fatalf("expected NO_CONFIDENT_VARIANT, got %+v", res)
	}
	if store.current.PendingVariant == nil {
		t.Fatalf("an unconfident answer must keep the question open")
	}

	res = do(t, uc, "select_variant", `{"text":"manillar fijo"}`)
	if !res.Success {
		t.Fatalf("select_variant: %+v", res)
	}
	if store.current.Phase != entities.PhaseElementPhotos || store.current.PendingVariant != nil {
		t.Fatalf("expected collection to open: phase=%s pending=%+v", store.current.Phase, store.current.PendingVariant)
	}
	if len(store.current.Elements) != 2 || store.current.Elements[0].Code != "ESCAPE" || store.current.Elements[1].Code != "MANILLAR" {
		t.Fatalf("unexpected elements: %+v", store.current.Elements)
	}
	if store.current.SelectedTierID != "tier-full" || store.current.TierPrice != 300 {
		t.Fatalf("expected the full tier, got %+v", store.current)
	}
	redo(t, uc, store, "select_variant", `{"text":"manillar fijo"}`)

	// Walk both elements to verify the per-element loop hands over correctly.
	do(t, uc, "confirm_photos", "")
	do(t, uc, "save_element_fields", `{"values":{"marca":"Akrapovic","db_nivel":"95"}}`)
	res = do(t, uc, "complete_element", "")
	if !res.Success || store.current.Phase != entities.PhaseElementPhotos || store.current.ElementIndex != 1 {
		t.Fatalf("expected the second element's photos stage: %+v phase=%s idx=%d", res, store.current.Phase, store.current.ElementIndex)
	}
	redo(t, uc, store, "complete_element", "")

	do(t, uc, "confirm_photos", "")
	do(t, uc, "save_element_fields", `{"values":{"anchura":"720"}}`)
	res = do(t, uc, "complete_element", "")
	if !res.Success || store.current.Phase != entities.PhaseBaseDocs {
		t.Fatalf("expected the docs stage after the last element: %+v phase=%s", res, store.current.Phase)
	}
}

func TestCaseFlowUseCase_WrongPhaseDoesNotAdvance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, store, _ := newFlowFixture(ctrl)

	do(t, uc, "start_case", `{"items":[{"text":"escape deportivo"}]}`)

	res := do(t, uc, "save_personal_data", `{"values":{"nombre":"Ana"}}`)
	if res.ErrorCode != CodeFSMWrongPhase {
		t.Fatalf("expected FSM_WRONG_PHASE, got %+v", res)
	}
	if res.Guidance != string(entities.PhaseElementPhotos) {
		t.Fatalf("expected the current phase as guidance, got %q", res.Guidance)
	}
	if store.current.Phase != entities.PhaseElementPhotos || len(store.current.PersonalData) != 0 {
		t.Fatalf("a rejected action must not mutate the case: %+v", store.current)
	}

	// The workflow resumes normally after the rejection.
	res = do(t, uc, "confirm_photos", "")
	if !res.Success {
		t.Fatalf("confirm_photos after rejection: %+v", res)
	}
}

func TestCaseFlowUseCase_FieldErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, store, _ := newFlowFixture(ctrl)

	do(t, uc, "start_case", `{"items":[{"text":"escape deportivo"}]}`)
	do(t, uc, "confirm_photos", "")

	t.Run("unknown key", func(t *testing.T) {
		res := do(t, uc, "save_element_fields", `{"values":{"color":"rojo"}}`)
		if res.ErrorCode != CodeFieldUnknown {
			t.Fatalf("expected FIELD_UNKNOWN, got %+v", res)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		res := do(t, uc, "save_element_fields", `{"values":{"db_nivel":"fuerte"}}`)
		if res.ErrorCode != CodeFieldInvalid {
			t.Fatalf("expected FIELD_INVALID, got %+v", res)
		}
		if store.current.Elements[0].FieldValues["db_nivel"] != "" {
			t.Fatalf("invalid value must not be stored")
		}
	})

	t.Run("recognized keys persist next to a bad one", func(t *testing.T) {
		res := do(t, uc, "save_element_fields", `{"values":{"marca":"Akrapovic","color":"rojo"}}`)
		if res.ErrorCode != CodeFieldUnknown {
			t.Fatalf("expected FIELD_UNKNOWN, got %+v", res)
		}
		if store.current.Elements[0].FieldValues["marca"] != "Akrapovic" {
			t.Fatalf("the recognized key must be stored: %+v", store.current.Elements[0].FieldValues)
		}
	})

	t.Run("complete with missing fields", func(t *testing.T) {
		res := do(t, uc, "complete_element", "")
		if res.ErrorCode != CodeFieldInvalid || !strings.Contains(res.Guidance, "db_nivel") {
			t.Fatalf("expected the missing key in the guidance, got %+v", res)
		}
		if store.current.Phase != entities.PhaseElementData {
			t.Fatalf("incomplete element must stay in the data phase")
		}
	})
}

func TestCaseFlowUseCase_CancelLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, store, _ := newFlowFixture(ctrl)

	res := do(t, uc, "cancel_case", "")
	if !res.AlreadyDone {
		t.Fatalf("cancel without a case must be already done, got %+v", res)
	}

	do(t, uc, "start_case", `{"items":[{"text":"escape deportivo"}]}`)
	res = do(t, uc, "cancel_case", "")
	if !res.Success || res.AlreadyDone {
		t.Fatalf("cancel: %+v", res)
	}
	if store.current.Status != entities.CaseStatusCancelado || store.current.Phase != entities.PhaseIdle {
		t.Fatalf("unexpected cancelled case: %+v", store.current)
	}
	cancellationID := store.current.CancellationID
	if cancellationID == "" {
		t.Fatalf("expected a cancellation id")
	}

	res = do(t, uc, "cancel_case", "")
	if !res.AlreadyDone || res.Data["cancellation_id"] != cancellationID {
		t.Fatalf("expected the same cancellation id on replay, got %+v", res)
	}

	res = do(t, uc, "start_case", `{"items":[{"text":"escape deportivo"}]}`)
	if !res.Success || res.AlreadyDone {
		t.Fatalf("expected a fresh start after cancel, got %+v", res)
	}
}

func TestCaseFlowUseCase_EditSectionFromReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, store, _ := newFlowFixture(ctrl)

	do(t, uc, "start_case", `{"items":[{"text":"escape deportivo"}]}`)
	do(t, uc, "confirm_photos", "")
	do(t, uc, "save_element_fields", `{"values":{"marca":"Akrapovic","db_nivel":"95"}}`)
	do(t, uc, "complete_element", "")
	do(t, uc, "confirm_base_docs", "")
	do(t, uc, "save_personal_data", `{"values":{"nombre":"Ana","apellidos":"García López","dni":"12345678Z","telefono":"600123456","email":"ana@example.com"}}`)
	do(t, uc, "save_vehicle_data", `{"values":{"marca":"Yamaha","modelo":"MT-07","matricula":"1234ABC","bastidor":"JYARM041000012345","fecha_matriculacion":"1/3/2019"}}`)
	do(t, uc, "save_workshop_data", `{"values":{"nombre_taller":"Talleres Pérez","cif":"B12345678","provincia":"Sevilla"}}`)
	if store.current.Phase != entities.PhaseReview {
		t.Fatalf("setup failed, phase %s", store.current.Phase)
	}

	t.Run("unknown section", func(t *testing.T) {
		res := do(t, uc, "edit_section", `{"section":"elements"}`)
		if res.ErrorCode != CodeFieldInvalid {
			t.Fatalf("expected FIELD_INVALID, got %+v", res)
		}
	})

	t.Run("reopen, change, return to review", func(t *testing.T) {
		res := do(t, uc, "edit_section", `{"section":"vehicle"}`)
		if !res.Success || store.current.Phase != entities.PhaseVehicle {
			t.Fatalf("edit_section: %+v phase=%s", res, store.current.Phase)
		}
		redo(t, uc, store, "edit_section", `{"section":"vehicle"}`)

		res = do(t, uc, "save_vehicle_data", `{"values":{"matricula":"9999ZZZ"}}`)
		if !res.Success {
			t.Fatalf("save after edit: %+v", res)
		}
		if store.current.VehicleData["matricula"] != "9999ZZZ" {
			t.Fatalf("edited value not stored: %+v", store.current.VehicleData)
		}
		// Workshop data is still complete, so the walk lands straight on review.
		if store.current.Phase != entities.PhaseReview {
			t.Fatalf("expected review after the edit, got %s", store.current.Phase)
		}
	})

	t.Run("resend identical section closes it again", func(t *testing.T) {
		do(t, uc, "edit_section", `{"section":"personal"}`)
		res := do(t, uc, "save_personal_data", `{"values":{"nombre":"Ana","apellidos":"García López","dni":"12345678Z","telefono":"600123456","email":"ana@example.com"}}`)
		if !res.Success || store.current.Phase != entities.PhaseReview {
			t.Fatalf("identical resend must close the section: %+v phase=%s", res, store.current.Phase)
		}
	})
}

func TestCaseFlowUseCase_GetState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, _, _ := newFlowFixture(ctrl)

	t.Run("invalid conversation id", func(t *testing.T) {
		_, _, err := uc.GetState(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidConversationID) {
			t.Fatalf("expected ErrInvalidConversationID, got %v", err)
		}
	})

	t.Run("no case yet", func(t *testing.T) {
		_, _, err := uc.GetState(context.Background(), "conv-1")
		if !errors.Is(err, ErrCaseNotFound) {
			t.Fatalf("expected ErrCaseNotFound, got %v", err)
		}
	})

	t.Run("after start", func(t *testing.T) {
		do(t, uc, "start_case", `{"items":[{"text":"escape deportivo"}]}`)
		c, actions, err := uc.GetState(context.Background(), "conv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.ID == "" || c.Phase != entities.PhaseElementPhotos {
			t.Fatalf("unexpected case: %+v", c)
		}
		want := []flow.Action{flow.ActionConfirmPhotos, flow.ActionCancelCase}
		if len(actions) != len(want) {
			t.Fatalf("unexpected menu: %v", actions)
		}
		for i, a := range want {
			if actions[i] != a {
				t.Fatalf("unexpected menu: %v", actions)
			}
		}
	})
}

func TestCaseFlowUseCase_PersistenceErrors(t *testing.T) {
	t.Run("load failure surfaces as error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		cases := mock_interfaces.NewMockICaseRepository(ctrl)
		cases.EXPECT().GetCurrentByConversationID(gomock.Any(), "conv-1").Return(entities.Case{}, errors.New("db down"))
		uc := NewCaseFlowUseCase(cases, mock_interfaces.NewMockIReviewTicketRepository(ctrl), newCatalogFixture(ctrl), "cat-1")

		_, err := uc.HandleAction(context.Background(), "conv-1", "start_case", json.RawMessage(`{"items":[{"text":"escape"}]}`))
		if err == nil || err.Error() != "db down" {
			t.Fatalf("expected the repository error, got %v", err)
		}
	})

	t.Run("save failure surfaces as error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		cases := mock_interfaces.NewMockICaseRepository(ctrl)
		cases.EXPECT().GetCurrentByConversationID(gomock.Any(), "conv-1").Return(entities.Case{}, nil)
		cases.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Case{}, errors.New("write timeout"))
		uc := NewCaseFlowUseCase(cases, mock_interfaces.NewMockIReviewTicketRepository(ctrl), newCatalogFixture(ctrl), "cat-1")

		_, err := uc.HandleAction(context.Background(), "conv-1", "start_case", json.RawMessage(`{"items":[{"text":"escape deportivo"}]}`))
		if err == nil || err.Error() != "write timeout" {
			t.Fatalf("expected the write error, got %v", err)
		}
	})
}
