package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"homologacion_motos/internal/domain/catalog"
	"homologacion_motos/internal/domain/entities"
	"homologacion_motos/internal/domain/flow"
	"strings"
)

// replay recognizes actions whose requested transition is already on the
// case record and answers them as already done. It runs before the phase
// check on purpose: the first of two identical calls usually moves the
// phase, so the duplicate would otherwise bounce off the allow table with a
// phase error instead of the calm reply it deserves. An action is a replay
// when the record proves the effect by value (same start items, same field
// values, flag or id already set), never by guessing intent.
func (u *CaseFlowUseCase) replay(ctx context.Context, c entities.Case, action flow.Action, raw json.RawMessage) (ActionResult, bool, error) {
	switch action {
	case flow.ActionStartCase:
		return u.replayStartCase(c, raw)
	case flow.ActionSelectVariant:
		return u.replaySelectVariant(ctx, c, raw)
	case flow.ActionConfirmPhotos:
		return replayConfirmPhotos(c, raw)
	case flow.ActionSaveElementFields:
		return u.replaySaveElementFields(ctx, c, raw)
	case flow.ActionCompleteElement:
		return replayCompleteElement(c, raw)
	case flow.ActionConfirmBaseDocs:
		return replayConfirmBaseDocs(c)
	case flow.ActionSavePersonalData:
		return replaySaveSection(c, flow.SectionPersonal, raw)
	case flow.ActionSaveVehicleData:
		return replaySaveSection(c, flow.SectionVehicle, raw)
	case flow.ActionSaveWorkshopData:
		return replaySaveSection(c, flow.SectionWorkshop, raw)
	case flow.ActionEditSection:
		return replayEditSection(c, raw)
	case flow.ActionFinalizeCase:
		return replayFinalizeCase(c)
	case flow.ActionCancelCase:
		return replayCancelCase(c)
	default:
		return ActionResult{}, false, nil
	}
}

func (u *CaseFlowUseCase) replayStartCase(c entities.Case, raw json.RawMessage) (ActionResult, bool, error) {
	if !c.IsActive() {
		return ActionResult{}, false, nil
	}
	var p startCasePayload
	if !decodePayload(raw, &p) || len(p.Items) == 0 {
		return ActionResult{}, false, nil
	}
	categoryID := strings.TrimSpace(p.CategoryID)
	if categoryID == "" {
		categoryID = u.defaultCategoryID
	}
	if categoryID != c.CategoryID || !sameStartItems(normalizeStartItems(p.Items), c.StartItems) {
		return ActionResult{}, false, nil
	}
	data := caseData(c)
	if c.PendingVariant != nil {
		data["pending_variant"] = variantQuestionData(*c.PendingVariant)
	}
	return doneResult("case already started with these items", data), true, nil
}

func (u *CaseFlowUseCase) replaySelectVariant(ctx context.Context, c entities.Case, raw json.RawMessage) (ActionResult, bool, error) {
	if !c.IsActive() || len(c.Elements) == 0 {
		return ActionResult{}, false, nil
	}
	var p selectVariantPayload
	if !decodePayload(raw, &p) || strings.TrimSpace(p.Text) == "" {
		return ActionResult{}, false, nil
	}

	s, err := u.catalog.Snapshot(ctx, c.CategoryID)
	if err != nil {
		return ActionResult{}, false, err
	}
	// The resolved question is gone from the record, so the proof is
	// indirect: the answer text selects a variant the case already holds.
	for _, e := range c.Elements {
		el, ok := s.ElementByCode[e.Code]
		if !ok || el.ParentElementID == "" {
			continue
		}
		parent, ok := s.Elements[el.ParentElementID]
		if !ok {
			continue
		}
		v, ok := catalog.SelectVariant(s, parent.Code, p.Text)
		if !ok || v.Code != e.Code {
			continue
		}
		data := caseData(c)
		data["element"] = map[string]any{"code": el.Code, "name": el.Name}
		if c.PendingVariant != nil {
			data["pending_variant"] = variantQuestionData(*c.PendingVariant)
		}
		return doneResult(fmt.Sprintf("variant %s already selected", el.Name), data), true, nil
	}
	return ActionResult{}, false, nil
}

func replayConfirmPhotos(c entities.Case, raw json.RawMessage) (ActionResult, bool, error) {
	if !c.IsActive() {
		return ActionResult{}, false, nil
	}
	var p elementPayload
	if !decodePayload(raw, &p) {
		return ActionResult{}, false, nil
	}
	if code := strings.TrimSpace(p.ElementCode); code != "" {
		e, _, ok := c.ElementByCode(code)
		if !ok || !e.PhotosConfirmed {
			return ActionResult{}, false, nil
		}
		data := caseData(c)
		data["element"] = map[string]any{"code": e.Code}
		return doneResult(fmt.Sprintf("photos already confirmed for %s", e.Code), data), true, nil
	}
	// Bare form: once the case sits past the photos subphase, the transition
	// this call asks for already happened.
	if flow.PhaseAtOrPast(c.Phase, entities.PhaseElementData) {
		return doneResult("photos already confirmed", caseData(c)), true, nil
	}
	return ActionResult{}, false, nil
}

func (u *CaseFlowUseCase) replaySaveElementFields(ctx context.Context, c entities.Case, raw json.RawMessage) (ActionResult, bool, error) {
	if !c.IsActive() {
		return ActionResult{}, false, nil
	}
	var p saveFieldsPayload
	if !decodePayload(raw, &p) || len(p.Values) == 0 {
		return ActionResult{}, false, nil
	}
	code := strings.TrimSpace(p.ElementCode)
	if code == "" {
		// The bare form targets the current element and never moves the
		// phase, so the live path reports its own replays.
		return ActionResult{}, false, nil
	}
	e, _, ok := c.ElementByCode(code)
	if !ok {
		return ActionResult{}, false, nil
	}

	s, err := u.catalog.Snapshot(ctx, c.CategoryID)
	if err != nil {
		return ActionResult{}, false, err
	}
	schema := elementFields(s, code)
	results, _, changed := flow.ApplyFields(schema, e.FieldValues, p.Values)
	if changed || !cleanResults(results) {
		return ActionResult{}, false, nil
	}
	data := caseData(c)
	data["results"] = results
	data["plan"] = planData(schema, e.FieldValues)
	return doneResult("all fields were already saved", data), true, nil
}

func replayCompleteElement(c entities.Case, raw json.RawMessage) (ActionResult, bool, error) {
	if !c.IsActive() {
		return ActionResult{}, false, nil
	}
	var p elementPayload
	if !decodePayload(raw, &p) {
		return ActionResult{}, false, nil
	}
	if code := strings.TrimSpace(p.ElementCode); code != "" {
		e, _, ok := c.ElementByCode(code)
		if !ok || !e.FieldsComplete {
			return ActionResult{}, false, nil
		}
		data := caseData(c)
		data["element"] = map[string]any{"code": e.Code}
		return doneResult(fmt.Sprintf("element %s already completed", e.Code), data), true, nil
	}
	// Bare form: the duplicate repeats the completion that moved the case to
	// the next element's photos or to the documentation stage.
	if c.Phase == entities.PhaseElementPhotos && c.ElementIndex > 0 && c.Elements[c.ElementIndex-1].FieldsComplete {
		return doneResult(fmt.Sprintf("element %s already completed", c.Elements[c.ElementIndex-1].Code), caseData(c)), true, nil
	}
	if flow.PhaseAtOrPast(c.Phase, entities.PhaseBaseDocs) {
		return doneResult("all elements already completed", caseData(c)), true, nil
	}
	return ActionResult{}, false, nil
}

func replayConfirmBaseDocs(c entities.Case) (ActionResult, bool, error) {
	if c.IsActive() && flow.PhaseAtOrPast(c.Phase, entities.PhasePersonal) {
		return doneResult("base documentation already confirmed", caseData(c)), true, nil
	}
	return ActionResult{}, false, nil
}

func replaySaveSection(c entities.Case, sec flow.Section, raw json.RawMessage) (ActionResult, bool, error) {
	if !c.IsActive() || c.Phase == flow.SectionPhase(sec) {
		return ActionResult{}, false, nil
	}
	var p saveSectionPayload
	if !decodePayload(raw, &p) || len(p.Values) == 0 {
		return ActionResult{}, false, nil
	}
	schema := flow.SectionFields(sec)
	results, _, changed := flow.ApplyFields(schema, sectionValues(c, sec), p.Values)
	if changed || !cleanResults(results) {
		return ActionResult{}, false, nil
	}
	data := caseData(c)
	data["results"] = results
	return doneResult(fmt.Sprintf("%s data already saved", sec), data), true, nil
}

func replayEditSection(c entities.Case, raw json.RawMessage) (ActionResult, bool, error) {
	if !c.IsActive() {
		return ActionResult{}, false, nil
	}
	var p editSectionPayload
	if !decodePayload(raw, &p) {
		return ActionResult{}, false, nil
	}
	sec, ok := flow.ParseSection(strings.TrimSpace(p.Section))
	if !ok || c.Phase != flow.SectionPhase(sec) {
		return ActionResult{}, false, nil
	}
	data := caseData(c)
	data["section"] = string(sec)
	return doneResult(fmt.Sprintf("section %s already reopened", sec), data), true, nil
}

func replayFinalizeCase(c entities.Case) (ActionResult, bool, error) {
	if c.ID == "" || c.ReviewTicketID == "" {
		return ActionResult{}, false, nil
	}
	data := caseData(c)
	data["review_ticket_id"] = c.ReviewTicketID
	data["price"] = c.TierPrice
	return doneResult("case already finalized", data), true, nil
}

func replayCancelCase(c entities.Case) (ActionResult, bool, error) {
	if c.ID == "" {
		return doneResult("no case to cancel", map[string]any{"phase": string(entities.PhaseIdle)}), true, nil
	}
	if c.Status == entities.CaseStatusCancelado {
		data := caseData(c)
		data["cancellation_id"] = c.CancellationID
		return doneResult("case already cancelled", data), true, nil
	}
	return ActionResult{}, false, nil
}
