// Package flow owns the collection workflow rules: which action is legal in
// which phase, the section chain walked after the per-element stage, and the
// field collection planner. Everything here is pure; the usecase layer loads
// and persists the case around it.
package flow

import (
	"slices"

	"homologacion_motos/internal/domain/entities"
)

// Action is the closed enumeration of mutating case actions. The upstream
// intent proposer is untrusted: whatever it sends is parsed against this list
// and checked against the phase table before any handler runs.
type Action string

const (
	ActionStartCase         Action = "start_case"
	ActionSelectVariant     Action = "select_variant"
	ActionConfirmPhotos     Action = "confirm_photos"
	ActionSaveElementFields Action = "save_element_fields"
	ActionCompleteElement   Action = "complete_element"
	ActionConfirmBaseDocs   Action = "confirm_base_docs"
	ActionSavePersonalData  Action = "save_personal_data"
	ActionSaveVehicleData   Action = "save_vehicle_data"
	ActionSaveWorkshopData  Action = "save_workshop_data"
	ActionEditSection       Action = "edit_section"
	ActionFinalizeCase      Action = "finalize_case"
	ActionCancelCase        Action = "cancel_case"
)

// allActions is the canonical workflow order, used for the advisory menu.
var allActions = []Action{
	ActionStartCase,
	ActionSelectVariant,
	ActionConfirmPhotos,
	ActionSaveElementFields,
	ActionCompleteElement,
	ActionConfirmBaseDocs,
	ActionSavePersonalData,
	ActionSaveVehicleData,
	ActionSaveWorkshopData,
	ActionEditSection,
	ActionFinalizeCase,
	ActionCancelCase,
}

// allowedPhases is the single authoritative allow-table. Any advisory
// filtering done upstream (chat menus, intent prompts) never replaces this
// check.
//
// Replay detection runs before this table is consulted, so an action whose
// transition already happened resolves as already_done and never reaches the
// phase check. The table therefore lists only the phases where the action
// still has work to do.
//
// Notes on the edges:
//   - start_case also covers the no-case-yet situation, which behaves as IDLE.
//   - select_variant only makes sense while the start of a case is parked on
//     a pending variant question, which can only happen in IDLE.
//   - cancel_case is accepted in every phase: a requester can withdraw the
//     request at any point, including after finalize.
var allowedPhases = map[Action][]entities.CasePhase{
	ActionStartCase:         {entities.PhaseIdle, entities.PhaseCompleted},
	ActionSelectVariant:     {entities.PhaseIdle},
	ActionConfirmPhotos:     {entities.PhaseElementPhotos},
	ActionSaveElementFields: {entities.PhaseElementData},
	ActionCompleteElement:   {entities.PhaseElementData},
	ActionConfirmBaseDocs:   {entities.PhaseBaseDocs},
	ActionSavePersonalData:  {entities.PhasePersonal},
	ActionSaveVehicleData:   {entities.PhaseVehicle},
	ActionSaveWorkshopData:  {entities.PhaseWorkshop},
	ActionEditSection:       {entities.PhaseReview},
	ActionFinalizeCase:      {entities.PhaseReview},
	ActionCancelCase: {
		entities.PhaseIdle, entities.PhaseElementPhotos, entities.PhaseElementData,
		entities.PhaseBaseDocs, entities.PhasePersonal, entities.PhaseVehicle,
		entities.PhaseWorkshop, entities.PhaseReview, entities.PhaseCompleted,
	},
}

// ParseAction validates an inbound action name.
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	if _, ok := allowedPhases[a]; !ok {
		return "", false
	}
	return a, true
}

// Allowed reports whether the action is legal in the given phase.
func Allowed(a Action, phase entities.CasePhase) bool {
	return slices.Contains(allowedPhases[a], phase)
}

// AllowedActions returns the advisory action menu for a phase, in workflow
// order. It is exposed on the state endpoint for UX filtering and is never
// consulted for enforcement.
func AllowedActions(phase entities.CasePhase) []Action {
	out := make([]Action, 0, len(allActions))
	for _, a := range allActions {
		if Allowed(a, phase) {
			out = append(out, a)
		}
	}
	return out
}
