package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"homologacion_motos/internal/domain/entities"
	"homologacion_motos/internal/domain/flow"
	"homologacion_motos/internal/usecase/interfaces"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	ErrInvalidConversationID = errors.New("invalid conversation id")
	ErrUnknownAction         = errors.New("unknown action")
	ErrCaseNotFound          = errors.New("case not found")
)

const defaultPersistTimeoutMS = 5000

// ICaseFlowUseCase drives the collection workflow: one inbound action per
// call, serialized per conversation.
//
// HandleAction returns a vocabulary-coded ActionResult for every
// conversational outcome (wrong phase, bad fields, no match, no covering
// tier) with a nil error; Go errors are reserved for infrastructure faults
// (persistence, catalog integrity) and are mapped by the transport layer.

type ICaseFlowUseCase interface {
	HandleAction(ctx context.Context, conversationID, action string, payload json.RawMessage) (ActionResult, error)
	GetState(ctx context.Context, conversationID string) (entities.Case, []flow.Action, error)
}

type CaseFlowUseCase struct {
	cases   interfaces.ICaseRepository
	tickets interfaces.IReviewTicketRepository
	catalog ICatalogQueryUseCase

	defaultCategoryID string
	persistTimeout    time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var _ ICaseFlowUseCase = (*CaseFlowUseCase)(nil)

func NewCaseFlowUseCase(cases interfaces.ICaseRepository, tickets interfaces.IReviewTicketRepository, catalog ICatalogQueryUseCase, defaultCategoryID string) *CaseFlowUseCase {
	return &CaseFlowUseCase{
		cases:             cases,
		tickets:           tickets,
		catalog:           catalog,
		defaultCategoryID: strings.TrimSpace(defaultCategoryID),
		persistTimeout:    persistTimeoutFromEnv(),
		locks:             make(map[string]*sync.Mutex),
	}
}

func (u *CaseFlowUseCase) HandleAction(ctx context.Context, conversationID, actionName string, payload json.RawMessage) (ActionResult, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return ActionResult{}, ErrInvalidConversationID
	}
	action, ok := flow.ParseAction(strings.TrimSpace(actionName))
	if !ok {
		return ActionResult{}, fmt.Errorf("%w: %q", ErrUnknownAction, actionName)
	}

	lock := u.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	current, err := u.loadCurrent(ctx, conversationID)
	if err != nil {
		log.Printf("[case][usecase] load failed conversation_id=%s action=%s err=%v", conversationID, action, err)
		return ActionResult{}, err
	}

	phase := entities.PhaseIdle
	if current.ID != "" {
		phase = current.Phase
	}
	log.Printf("[case][usecase] action start conversation_id=%s action=%s phase=%s case_id=%s", conversationID, action, phase, current.ID)

	// Replay first: a transition that already happened answers already_done
	// no matter where the phase moved since, which keeps duplicate retries
	// from an unreliable upstream harmless.
	if res, done, err := u.replay(ctx, current, action, payload); err != nil {
		return ActionResult{}, err
	} else if done {
		log.Printf("[case][usecase] replay conversation_id=%s action=%s phase=%s", conversationID, action, phase)
		return res, nil
	}

	if action == flow.ActionStartCase && current.IsActive() {
		return failResult(CodeFSMNotIdle, "a case is already active for this conversation", string(phase)), nil
	}

	// The single authoritative phase check. Upstream menus are advisory.
	if !flow.Allowed(action, phase) {
		log.Printf("[case][usecase] phase violation conversation_id=%s action=%s phase=%s", conversationID, action, phase)
		return failResult(CodeFSMWrongPhase, fmt.Sprintf("action %s is not allowed in phase %s", action, phase), string(phase)), nil
	}

	switch action {
	case flow.ActionStartCase:
		return u.handleStartCase(ctx, conversationID, payload)
	case flow.ActionSelectVariant:
		return u.handleSelectVariant(ctx, current, payload)
	case flow.ActionConfirmPhotos:
		return u.handleConfirmPhotos(ctx, current, payload)
	case flow.ActionSaveElementFields:
		return u.handleSaveElementFields(ctx, current, payload)
	case flow.ActionCompleteElement:
		return u.handleCompleteElement(ctx, current, payload)
	case flow.ActionConfirmBaseDocs:
		return u.handleConfirmBaseDocs(ctx, current)
	case flow.ActionSavePersonalData:
		return u.handleSaveSection(ctx, current, flow.SectionPersonal, payload)
	case flow.ActionSaveVehicleData:
		return u.handleSaveSection(ctx, current, flow.SectionVehicle, payload)
	case flow.ActionSaveWorkshopData:
		return u.handleSaveSection(ctx, current, flow.SectionWorkshop, payload)
	case flow.ActionEditSection:
		return u.handleEditSection(ctx, current, payload)
	case flow.ActionFinalizeCase:
		return u.handleFinalizeCase(ctx, current)
	case flow.ActionCancelCase:
		return u.handleCancelCase(ctx, current)
	default:
		return ActionResult{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// GetState returns the conversation's current case plus the advisory action
// menu for its phase.
func (u *CaseFlowUseCase) GetState(ctx context.Context, conversationID string) (entities.Case, []flow.Action, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return entities.Case{}, nil, ErrInvalidConversationID
	}
	c, err := u.loadCurrent(ctx, conversationID)
	if err != nil {
		return entities.Case{}, nil, err
	}
	if c.ID == "" {
		return entities.Case{}, nil, ErrCaseNotFound
	}
	return c, flow.AllowedActions(c.Phase), nil
}

// conversationLock serializes actions for one conversation; different
// conversations run fully in parallel.
func (u *CaseFlowUseCase) conversationLock(conversationID string) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()
	l, ok := u.locks[conversationID]
	if !ok {
		l = &sync.Mutex{}
		u.locks[conversationID] = l
	}
	return l
}

func (u *CaseFlowUseCase) loadCurrent(ctx context.Context, conversationID string) (entities.Case, error) {
	tctx, cancel := context.WithTimeout(ctx, u.persistTimeout)
	defer cancel()
	return u.cases.GetCurrentByConversationID(tctx, conversationID)
}

// saveCase persists the mutated case within the bounded timeout. A failed or
// timed-out write is returned as-is so the action never reports success on a
// lost write; the retry that follows is safe because replays are detected by
// value.
func (u *CaseFlowUseCase) saveCase(ctx context.Context, c entities.Case, create bool) (entities.Case, error) {
	c.UpdatedAt = time.Now().UTC()
	tctx, cancel := context.WithTimeout(ctx, u.persistTimeout)
	defer cancel()
	if create {
		return u.cases.Create(tctx, c)
	}
	return u.cases.Save(tctx, c)
}

func persistTimeoutFromEnv() time.Duration {
	ms := defaultPersistTimeoutMS
	if v := strings.TrimSpace(os.Getenv("PERSIST_TIMEOUT_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ms = n
		}
	}
	return time.Duration(ms) * time.Millisecond
}

// decodePayload tolerates an absent payload; malformed JSON is the caller's
// problem and reported as FIELD_INVALID.
func decodePayload(raw json.RawMessage, dst any) bool {
	if len(raw) == 0 {
		return true
	}
	return json.Unmarshal(raw, dst) == nil
}

func sectionValues(c entities.Case, sec flow.Section) map[string]string {
	switch sec {
	case flow.SectionPersonal:
		return c.PersonalData
	case flow.SectionVehicle:
		return c.VehicleData
	case flow.SectionWorkshop:
		return c.WorkshopData
	default:
		return nil
	}
}

func setSectionValues(c *entities.Case, sec flow.Section, values map[string]string) {
	switch sec {
	case flow.SectionPersonal:
		c.PersonalData = values
	case flow.SectionVehicle:
		c.VehicleData = values
	case flow.SectionWorkshop:
		c.WorkshopData = values
	}
}

// advanceSections moves to the next phase of the chain, passing straight
// through sections whose data is already complete. Review edits re-walk the
// chain with exactly this rule.
func advanceSections(c *entities.Case) {
	c.Phase = flow.NextPhase(c.Phase)
	for {
		sec, ok := flow.SectionOfPhase(c.Phase)
		if !ok {
			return
		}
		if !flow.Complete(flow.SectionFields(sec), sectionValues(*c, sec)) {
			return
		}
		c.Phase = flow.NextPhase(c.Phase)
	}
}

func caseData(c entities.Case) map[string]any {
	return map[string]any{
		"case_id": c.ID,
		"phase":   string(c.Phase),
		"status":  string(c.Status),
	}
}

// planData describes the next field request of a schema for the caller.
func planData(fields []entities.RequiredField, values map[string]string) map[string]any {
	plan := flow.PlanFields(fields, values)
	ask := make([]map[string]any, 0, len(plan.AskNow))
	for _, f := range plan.AskNow {
		item := map[string]any{"key": f.Key, "label": f.Label, "type": string(f.Type)}
		if len(f.Options) > 0 {
			item["options"] = f.Options
		}
		ask = append(ask, item)
	}
	return map[string]any{
		"strategy": string(plan.Strategy),
		"ask_now":  ask,
		"pending":  len(plan.Ready) + len(plan.Blocked),
	}
}

func variantQuestionData(q entities.PendingVariantQuestion) map[string]any {
	options := make([]map[string]string, 0, len(q.Options))
	for _, o := range q.Options {
		options = append(options, map[string]string{"code": o.Code, "name": o.Name})
	}
	return map[string]any{
		"base_code": q.BaseCode,
		"prompt":    q.Prompt,
		"options":   options,
	}
}
