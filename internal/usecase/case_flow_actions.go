package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"homologacion_motos/internal/domain/catalog"
	"homologacion_motos/internal/domain/entities"
	"homologacion_motos/internal/domain/flow"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action payloads. Every field is optional at the JSON level; handlers report
// missing required fields as FIELD_INVALID instead of transport errors.

type startCaseItem struct {
	Text     string `json:"text"`
	Quantity int    `json:"quantity"`
}

type startCasePayload struct {
	CategoryID string          `json:"category_id"`
	Items      []startCaseItem `json:"items"`
}

type selectVariantPayload struct {
	Text string `json:"text"`
}

type elementPayload struct {
	ElementCode string `json:"element_code"`
}

type saveFieldsPayload struct {
	ElementCode string            `json:"element_code"`
	Values      map[string]string `json:"values"`
}

type saveSectionPayload struct {
	Values map[string]string `json:"values"`
}

type editSectionPayload struct {
	Section string `json:"section"`
}

func (u *CaseFlowUseCase) handleStartCase(ctx context.Context, conversationID string, raw json.RawMessage) (ActionResult, error) {
	var p startCasePayload
	if !decodePayload(raw, &p) || len(p.Items) == 0 {
		return failResult(CodeFieldInvalid, "at least one item is required", "send items as [{text, quantity}]"), nil
	}
	categoryID := strings.TrimSpace(p.CategoryID)
	if categoryID == "" {
		categoryID = u.defaultCategoryID
	}
	if categoryID == "" {
		return failResult(CodeFieldInvalid, "category_id is required", "send the catalog category of the vehicle"), nil
	}

	items := normalizeStartItems(p.Items)
	for _, it := range items {
		if it.Text == "" {
			return failResult(CodeFieldInvalid, "item text is required", "every item needs a short description"), nil
		}
	}

	s, err := u.catalog.Snapshot(ctx, categoryID)
	if err != nil {
		return ActionResult{}, err
	}

	c := entities.Case{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		CategoryID:     categoryID,
		Status:         entities.CaseStatusActivo,
		Phase:          entities.PhaseIdle,
		StartItems:     items,
		CreatedAt:      time.Now().UTC(),
	}

	// Match every item before persisting anything: a single unrecognized
	// item rejects the whole start.
	for _, item := range items {
		match := catalog.MatchElement(s, item.Text)
		switch match.Outcome {
		case catalog.MatchOutcomeNoMatch:
			return failResult(CodeNoMatch, fmt.Sprintf("no catalog element matches %q", item.Text), "rephrase the item or split it in simpler terms"), nil
		case catalog.MatchOutcomeAmbiguous:
			if c.PendingVariant == nil {
				c.PendingVariant = &entities.PendingVariantQuestion{
					BaseCode: match.Element.Code,
					Prompt:   match.Prompt,
					Options:  match.Options,
					Quantity: item.Quantity,
				}
			} else {
				// One question at a time; the rest waits its turn.
				c.PendingItems = append(c.PendingItems, item)
			}
		case catalog.MatchOutcomeMatched:
			appendElement(&c, match.Element.Code, item.Quantity)
		}
	}

	if c.PendingVariant != nil {
		saved, err := u.saveCase(ctx, c, true)
		if err != nil {
			return ActionResult{}, err
		}
		data := variantQuestionData(*saved.PendingVariant)
		data["case_id"] = saved.ID
		return okResult(saved.PendingVariant.Prompt, data), nil
	}
	return u.priceAndOpen(ctx, c, s, true)
}

func (u *CaseFlowUseCase) handleSelectVariant(ctx context.Context, c entities.Case, raw json.RawMessage) (ActionResult, error) {
	if !c.IsActive() || c.PendingVariant == nil {
		return failResult(CodeFSMWrongPhase, "no variant question is pending", "start a case first"), nil
	}
	var p selectVariantPayload
	if !decodePayload(raw, &p) || strings.TrimSpace(p.Text) == "" {
		return failResult(CodeFieldInvalid, "text is required", "answer the variant question in free text"), nil
	}

	s, err := u.catalog.Snapshot(ctx, c.CategoryID)
	if err != nil {
		return ActionResult{}, err
	}
	q := *c.PendingVariant
	variant, ok := catalog.SelectVariant(s, q.BaseCode, p.Text)
	if !ok {
		res := failResult(CodeNoConfidentVariant, "the answer does not identify one variant", "reply with one of the listed options")
		res.Data = variantQuestionData(q)
		return res, nil
	}

	appendElement(&c, variant.Code, q.Quantity)
	c.PendingVariant = nil

	// Drain the queued start items; the next ambiguous one re-opens a
	// question and the call ends there.
	for len(c.PendingItems) > 0 {
		item := c.PendingItems[0]
		match := catalog.MatchElement(s, item.Text)
		switch match.Outcome {
		case catalog.MatchOutcomeNoMatch:
			// Only reachable when the catalog changed under an open case.
			return failResult(CodeNoMatch, fmt.Sprintf("no catalog element matches %q anymore", item.Text), "cancel the case and start over"), nil
		case catalog.MatchOutcomeAmbiguous:
			c.PendingItems = c.PendingItems[1:]
			c.PendingVariant = &entities.PendingVariantQuestion{
				BaseCode: match.Element.Code,
				Prompt:   match.Prompt,
				Options:  match.Options,
				Quantity: item.Quantity,
			}
			saved, err := u.saveCase(ctx, c, false)
			if err != nil {
				return ActionResult{}, err
			}
			data := variantQuestionData(*saved.PendingVariant)
			data["case_id"] = saved.ID
			return okResult(saved.PendingVariant.Prompt, data), nil
		case catalog.MatchOutcomeMatched:
			c.PendingItems = c.PendingItems[1:]
			appendElement(&c, match.Element.Code, item.Quantity)
		}
	}

	return u.priceAndOpen(ctx, c, s, false)
}

// priceAndOpen runs tariff selection over the now-complete element multiset
// and, if a tier qualifies, persists the case in the photos phase of its
// first element. NO_TIER_COVERS persists nothing: the request as stated
// cannot be priced.
func (u *CaseFlowUseCase) priceAndOpen(ctx context.Context, c entities.Case, s entities.CatalogSnapshot, create bool) (ActionResult, error) {
	sel, res, ok, err := u.selectTariffFor(ctx, &c)
	if err != nil {
		return ActionResult{}, err
	}
	if !ok {
		return res, nil
	}
	saved, err := u.saveCase(ctx, c, create)
	if err != nil {
		return ActionResult{}, err
	}
	msg := fmt.Sprintf("tariff %s selected at %.2f EUR", sel.Tier.Name, sel.Tier.Price)
	if cur, ok := saved.CurrentElement(); ok {
		msg += fmt.Sprintf(", send photos of %s", elementName(s, cur.Code))
	}
	return okResult(msg, startedData(saved, sel, s)), nil
}

func (u *CaseFlowUseCase) selectTariffFor(ctx context.Context, c *entities.Case) (catalog.Selection, ActionResult, bool, error) {
	sel, err := u.catalog.SelectTariff(ctx, c.CategoryID, requestedOf(*c))
	if err != nil {
		if errors.Is(err, catalog.ErrNoTierCovers) {
			res := failResult(CodeNoTierCovers, "no tariff tier covers the requested elements", "split the request or remove an element")
			res.Data = map[string]any{"requested": requestedData(*c)}
			return catalog.Selection{}, res, false, nil
		}
		return catalog.Selection{}, ActionResult{}, false, err
	}
	c.SelectedTierID = sel.Tier.ID
	c.TierPrice = sel.Tier.Price
	c.Flags.PriceCommunicated = true
	c.Phase = entities.PhaseElementPhotos
	c.ElementIndex = 0
	return sel, ActionResult{}, true, nil
}

func (u *CaseFlowUseCase) handleConfirmPhotos(ctx context.Context, c entities.Case, raw json.RawMessage) (ActionResult, error) {
	var p elementPayload
	if !decodePayload(raw, &p) {
		return failResult(CodeFieldInvalid, "malformed payload", "element_code is the only accepted field"), nil
	}
	cur, ok := c.CurrentElement()
	if !ok {
		return ActionResult{}, fmt.Errorf("case %s has no element at index %d", c.ID, c.ElementIndex)
	}
	if code := strings.TrimSpace(p.ElementCode); code != "" && code != cur.Code {
		return failResult(CodeFieldInvalid, fmt.Sprintf("element %s is not awaiting photos", code), fmt.Sprintf("current element is %s", cur.Code)), nil
	}

	s, err := u.catalog.Snapshot(ctx, c.CategoryID)
	if err != nil {
		return ActionResult{}, err
	}
	c.Elements[c.ElementIndex].PhotosConfirmed = true
	c.Phase = entities.PhaseElementData
	saved, err := u.saveCase(ctx, c, false)
	if err != nil {
		return ActionResult{}, err
	}
	data := caseData(saved)
	data["element"] = map[string]any{"code": cur.Code, "name": elementName(s, cur.Code)}
	data["plan"] = planData(elementFields(s, cur.Code), cur.FieldValues)
	return okResult(fmt.Sprintf("photos confirmed for %s", elementName(s, cur.Code)), data), nil
}

func (u *CaseFlowUseCase) handleSaveElementFields(ctx context.Context, c entities.Case, raw json.RawMessage) (ActionResult, error) {
	var p saveFieldsPayload
	if !decodePayload(raw, &p) || len(p.Values) == 0 {
		return failResult(CodeFieldInvalid, "no field values in payload", "send values as a key-value object"), nil
	}
	cur, ok := c.CurrentElement()
	if !ok {
		return ActionResult{}, fmt.Errorf("case %s has no element at index %d", c.ID, c.ElementIndex)
	}
	if code := strings.TrimSpace(p.ElementCode); code != "" && code != cur.Code {
		return failResult(CodeFieldInvalid, fmt.Sprintf("element %s is not under collection", code), fmt.Sprintf("current element is %s", cur.Code)), nil
	}

	s, err := u.catalog.Snapshot(ctx, c.CategoryID)
	if err != nil {
		return ActionResult{}, err
	}
	schema := elementFields(s, cur.Code)
	results, updated, changed := flow.ApplyFields(schema, cur.FieldValues, p.Values)
	if changed {
		// Recognized values persist even when the same call carried bad
		// keys; only the rejected ones need a resend.
		c.Elements[c.ElementIndex].FieldValues = updated
		if c, err = u.saveCase(ctx, c, false); err != nil {
			return ActionResult{}, err
		}
	}
	return fieldsOutcome(results, changed, schema, updated, caseData(c)), nil
}

func (u *CaseFlowUseCase) handleCompleteElement(ctx context.Context, c entities.Case, raw json.RawMessage) (ActionResult, error) {
	var p elementPayload
	if !decodePayload(raw, &p) {
		return failResult(CodeFieldInvalid, "malformed payload", "element_code is the only accepted field"), nil
	}
	cur, ok := c.CurrentElement()
	if !ok {
		return ActionResult{}, fmt.Errorf("case %s has no element at index %d", c.ID, c.ElementIndex)
	}
	if code := strings.TrimSpace(p.ElementCode); code != "" && code != cur.Code {
		return failResult(CodeFieldInvalid, fmt.Sprintf("element %s is not under collection", code), fmt.Sprintf("current element is %s", cur.Code)), nil
	}

	s, err := u.catalog.Snapshot(ctx, c.CategoryID)
	if err != nil {
		return ActionResult{}, err
	}
	if missing := flow.Missing(elementFields(s, cur.Code), cur.FieldValues); len(missing) > 0 {
		return failResult(CodeFieldInvalid, fmt.Sprintf("element %s still misses required data", cur.Code), "missing: "+strings.Join(missing, ", ")), nil
	}

	c.Elements[c.ElementIndex].FieldsComplete = true
	data := map[string]any{}
	var msg string
	if c.ElementIndex+1 < len(c.Elements) {
		c.ElementIndex++
		c.Phase = entities.PhaseElementPhotos
		next := c.Elements[c.ElementIndex]
		msg = fmt.Sprintf("element completed, send photos of %s", elementName(s, next.Code))
		data["next_element"] = map[string]any{"code": next.Code, "name": elementName(s, next.Code), "quantity": next.Quantity}
	} else {
		c.Phase = entities.PhaseBaseDocs
		c.Flags.DocsImagesSent = true
		msg = "all elements completed, send the base documentation"
	}
	saved, err := u.saveCase(ctx, c, false)
	if err != nil {
		return ActionResult{}, err
	}
	for k, v := range caseData(saved) {
		data[k] = v
	}
	return okResult(msg, data), nil
}

func (u *CaseFlowUseCase) handleConfirmBaseDocs(ctx context.Context, c entities.Case) (ActionResult, error) {
	advanceSections(&c)
	saved, err := u.saveCase(ctx, c, false)
	if err != nil {
		return ActionResult{}, err
	}
	return okResult("base documentation received", stageData(saved)), nil
}

func (u *CaseFlowUseCase) handleSaveSection(ctx context.Context, c entities.Case, sec flow.Section, raw json.RawMessage) (ActionResult, error) {
	var p saveSectionPayload
	if !decodePayload(raw, &p) || len(p.Values) == 0 {
		return failResult(CodeFieldInvalid, "no field values in payload", "send values as a key-value object"), nil
	}
	schema := flow.SectionFields(sec)
	results, updated, changed := flow.ApplyFields(schema, sectionValues(c, sec), p.Values)
	if changed {
		setSectionValues(&c, sec, updated)
	}

	// A clean save that completes the section moves on, also when nothing
	// changed: after an edit_section re-entry, resending the same values is
	// the confirmation that closes the section again.
	if cleanResults(results) && flow.Complete(schema, updated) {
		advanceSections(&c)
		saved, err := u.saveCase(ctx, c, false)
		if err != nil {
			return ActionResult{}, err
		}
		data := stageData(saved)
		data["results"] = results
		return okResult(fmt.Sprintf("%s data complete", sec), data), nil
	}

	if changed {
		var err error
		if c, err = u.saveCase(ctx, c, false); err != nil {
			return ActionResult{}, err
		}
	}
	return fieldsOutcome(results, changed, schema, updated, caseData(c)), nil
}

func (u *CaseFlowUseCase) handleEditSection(ctx context.Context, c entities.Case, raw json.RawMessage) (ActionResult, error) {
	var p editSectionPayload
	if !decodePayload(raw, &p) {
		return failResult(CodeFieldInvalid, "malformed payload", "send the section to reopen"), nil
	}
	sec, ok := flow.ParseSection(strings.TrimSpace(p.Section))
	if !ok {
		return failResult(CodeFieldInvalid, fmt.Sprintf("unknown section %q", p.Section), "valid sections: base_docs, personal, vehicle, workshop"), nil
	}

	c.Phase = flow.SectionPhase(sec)
	saved, err := u.saveCase(ctx, c, false)
	if err != nil {
		return ActionResult{}, err
	}
	data := caseData(saved)
	data["section"] = string(sec)
	if fields := flow.SectionFields(sec); fields != nil {
		data["current"] = sectionValues(saved, sec)
		data["plan"] = planData(fields, sectionValues(saved, sec))
	}
	return okResult(fmt.Sprintf("section %s reopened", sec), data), nil
}

func (u *CaseFlowUseCase) handleFinalizeCase(ctx context.Context, c entities.Case) (ActionResult, error) {
	// The ticket may exist already if a previous attempt died between the
	// ticket write and the case write; reuse it instead of opening a second.
	ticket, err := u.findTicket(ctx, c.ID)
	if err != nil {
		return ActionResult{}, err
	}
	if ticket.ID == "" {
		ticket = entities.ReviewTicket{
			ID:             uuid.NewString(),
			CaseID:         c.ID,
			ConversationID: c.ConversationID,
			TierID:         c.SelectedTierID,
			Price:          c.TierPrice,
			CreatedAt:      time.Now().UTC(),
		}
		if ticket, err = u.createTicket(ctx, ticket); err != nil {
			return ActionResult{}, err
		}
	}

	c.ReviewTicketID = ticket.ID
	c.Status = entities.CaseStatusPendienteRevision
	c.Phase = entities.PhaseCompleted
	c.Notes = append(c.Notes, entities.CaseNote{At: time.Now().UTC(), Text: "case finalized for engineering review"})
	saved, err := u.saveCase(ctx, c, false)
	if err != nil {
		return ActionResult{}, err
	}
	data := caseData(saved)
	data["review_ticket_id"] = saved.ReviewTicketID
	data["price"] = saved.TierPrice
	return okResult("case sent to engineering review", data), nil
}

func (u *CaseFlowUseCase) handleCancelCase(ctx context.Context, c entities.Case) (ActionResult, error) {
	c.CancellationID = uuid.NewString()
	c.Status = entities.CaseStatusCancelado
	c.Phase = entities.PhaseIdle
	c.Notes = append(c.Notes, entities.CaseNote{At: time.Now().UTC(), Text: "case cancelled by requester"})
	saved, err := u.saveCase(ctx, c, false)
	if err != nil {
		return ActionResult{}, err
	}
	data := caseData(saved)
	data["cancellation_id"] = saved.CancellationID
	return okResult("case cancelled", data), nil
}

func (u *CaseFlowUseCase) findTicket(ctx context.Context, caseID string) (entities.ReviewTicket, error) {
	tctx, cancel := context.WithTimeout(ctx, u.persistTimeout)
	defer cancel()
	return u.tickets.GetByCaseID(tctx, caseID)
}

func (u *CaseFlowUseCase) createTicket(ctx context.Context, t entities.ReviewTicket) (entities.ReviewTicket, error) {
	tctx, cancel := context.WithTimeout(ctx, u.persistTimeout)
	defer cancel()
	return u.tickets.Create(tctx, t)
}

func normalizeStartItems(items []startCaseItem) []entities.PendingItem {
	out := make([]entities.PendingItem, 0, len(items))
	for _, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		out = append(out, entities.PendingItem{Text: strings.TrimSpace(it.Text), Quantity: qty})
	}
	return out
}

func sameStartItems(a, b []entities.PendingItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text || a[i].Quantity != b[i].Quantity {
			return false
		}
	}
	return true
}

// appendElement merges repeated codes into one line so quantities add up.
func appendElement(c *entities.Case, code string, qty int) {
	if qty <= 0 {
		qty = 1
	}
	for i := range c.Elements {
		if c.Elements[i].Code == code {
			c.Elements[i].Quantity += qty
			return
		}
	}
	c.Elements = append(c.Elements, entities.CaseElement{Code: code, Quantity: qty})
}

func requestedOf(c entities.Case) []catalog.RequestedElement {
	req := make([]catalog.RequestedElement, 0, len(c.Elements))
	for _, e := range c.Elements {
		req = append(req, catalog.RequestedElement{Code: e.Code, Quantity: e.Quantity})
	}
	return req
}

func requestedData(c entities.Case) []map[string]any {
	out := make([]map[string]any, 0, len(c.Elements))
	for _, e := range c.Elements {
		out = append(out, map[string]any{"code": e.Code, "quantity": e.Quantity})
	}
	return out
}

func elementName(s entities.CatalogSnapshot, code string) string {
	if el, ok := s.ElementByCode[code]; ok {
		return el.Name
	}
	return code
}

func elementFields(s entities.CatalogSnapshot, code string) []entities.RequiredField {
	return s.ElementByCode[code].RequiredFields
}

func startedData(c entities.Case, sel catalog.Selection, s entities.CatalogSnapshot) map[string]any {
	data := caseData(c)
	data["tier"] = map[string]any{"code": sel.Tier.Code, "name": sel.Tier.Name, "price": sel.Tier.Price}
	elements := make([]map[string]any, 0, len(c.Elements))
	for _, e := range c.Elements {
		elements = append(elements, map[string]any{"code": e.Code, "name": elementName(s, e.Code), "quantity": e.Quantity})
	}
	data["elements"] = elements
	if cur, ok := c.CurrentElement(); ok {
		data["current_element"] = map[string]any{"code": cur.Code, "name": elementName(s, cur.Code)}
	}
	return data
}

// stageData describes the stage the case landed on after an advance.
func stageData(c entities.Case) map[string]any {
	data := caseData(c)
	if sec, ok := flow.SectionOfPhase(c.Phase); ok {
		data["section"] = string(sec)
		data["plan"] = planData(flow.SectionFields(sec), sectionValues(c, sec))
	}
	if c.Phase == entities.PhaseReview {
		data["review"] = reviewData(c)
	}
	return data
}

func reviewData(c entities.Case) map[string]any {
	elements := make([]map[string]any, 0, len(c.Elements))
	for _, e := range c.Elements {
		elements = append(elements, map[string]any{"code": e.Code, "quantity": e.Quantity})
	}
	return map[string]any{
		"elements": elements,
		"personal": c.PersonalData,
		"vehicle":  c.VehicleData,
		"workshop": c.WorkshopData,
		"tier_id":  c.SelectedTierID,
		"price":    c.TierPrice,
	}
}

func cleanResults(results []flow.FieldResult) bool {
	for _, r := range results {
		if r.Outcome == flow.FieldUnknown || r.Outcome == flow.FieldInvalid {
			return false
		}
	}
	return true
}

// fieldsOutcome turns per-key save results into the call-level reply.
// Unknown keys outrank invalid values when both happened; a call where every
// key was already stored is a replayed save.
func fieldsOutcome(results []flow.FieldResult, changed bool, schema []entities.RequiredField, values map[string]string, data map[string]any) ActionResult {
	data["results"] = results
	data["plan"] = planData(schema, values)

	unknown, invalid := false, false
	for _, r := range results {
		switch r.Outcome {
		case flow.FieldUnknown:
			unknown = true
		case flow.FieldInvalid:
			invalid = true
		}
	}
	switch {
	case unknown:
		res := failResult(CodeFieldUnknown, "some field keys are unknown", "valid keys are listed in the per-field results")
		res.Data = data
		return res
	case invalid:
		res := failResult(CodeFieldInvalid, "some values failed validation", "check the per-field results and resend the rejected values")
		res.Data = data
		return res
	case !changed:
		return doneResult("all fields were already saved", data)
	default:
		return okResult("fields saved", data)
	}
}
