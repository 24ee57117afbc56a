package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"homologacion_motos/internal/domain/entities"
	"homologacion_motos/internal/usecase/interfaces"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	ErrCasePaymentNotFound            = errors.New("case payment not found")
	ErrInvalidPaymentCaseID           = errors.New("invalid case_id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrCaseNotPayable                 = errors.New("case not finalized")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// ICasePaymentUseCase encapsulates charging the selected tariff of a
// finalized case.
//
// Requested behavior:
//   - Create an item in the payment table and approve it as paid.

type ICasePaymentUseCase interface {
	CreateAndApprove(ctx context.Context, caseID string, mpPayload json.RawMessage) (entities.CasePayment, error)
	GetByID(ctx context.Context, id string) (entities.CasePayment, error)
	ListByCaseID(ctx context.Context, caseID string) ([]entities.CasePayment, error)
}

type CasePaymentUseCase struct {
	repo     interfaces.ICasePaymentRepository
	caseRepo interfaces.ICaseRepository
	gateway  interfaces.IPaymentGateway
}

var _ ICasePaymentUseCase = (*CasePaymentUseCase)(nil)

func NewCasePaymentUseCase(repo interfaces.ICasePaymentRepository, caseRepo interfaces.ICaseRepository, gateway interfaces.IPaymentGateway) *CasePaymentUseCase {
	return &CasePaymentUseCase{repo: repo, caseRepo: caseRepo, gateway: gateway}
}

func (u *CasePaymentUseCase) CreateAndApprove(ctx context.Context, caseID string, mpPayload json.RawMessage) (entities.CasePayment, error) {
	log.Printf("[payment][usecase] create-and-approve start raw_case_id=%q payload_len=%d", caseID, len(mpPayload))
	mockMode := isPaymentGatewayMockEnabled()
	caseID = strings.TrimSpace(caseID)
	if caseID == "" {
		log.Printf("[payment][usecase] invalid case_id (empty)")
		return entities.CasePayment{}, ErrInvalidPaymentCaseID
	}
	if len(mpPayload) == 0 {
		if mockMode {
			mpPayload = json.RawMessage("{}")
		} else {
			log.Printf("[payment][usecase] invalid payload (empty) case_id=%s", caseID)
			return entities.CasePayment{}, ErrInvalidMPPayload
		}
	}
	if !json.Valid(mpPayload) {
		if mockMode {
			mpPayload = json.RawMessage("{}")
		} else {
			log.Printf("[payment][usecase] invalid payload (not-json) case_id=%s", caseID)
			return entities.CasePayment{}, ErrInvalidMPPayload
		}
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured case_id=%s", caseID)
		return entities.CasePayment{}, errors.New("payment gateway not configured")
	}
	if u.caseRepo == nil {
		log.Printf("[payment][usecase] case repository not configured case_id=%s", caseID)
		return entities.CasePayment{}, errors.New("case repository not configured")
	}

	log.Printf("[payment][usecase] loading case case_id=%s", caseID)
	var err error
	c, err := u.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading case case_id=%s err=%v", caseID, err)
		return entities.CasePayment{}, err
	}
	if c.ID == "" {
		log.Printf("[payment][usecase] case not found case_id=%s", caseID)
		return entities.CasePayment{}, ErrCaseNotFound
	}

	// Replay first, like the workflow actions: an approved payment on file is
	// the proof the charge already happened, so a repeat call returns it
	// instead of charging twice.
	existing, err := u.repo.ListByCaseID(ctx, caseID)
	if err != nil {
		log.Printf("[payment][usecase] failed listing payments case_id=%s err=%v", caseID, err)
		return entities.CasePayment{}, err
	}
	for _, prev := range existing {
		if prev.Status == entities.PaymentStatusAprobado {
			log.Printf("[payment][usecase] payment already approved case_id=%s payment_id=%s", caseID, prev.ID)
			return prev, nil
		}
	}

	if !mockMode && c.Status != entities.CaseStatusPendienteRevision {
		log.Printf("[payment][usecase] case not payable case_id=%s status=%s", caseID, c.Status)
		return entities.CasePayment{}, ErrCaseNotPayable
	}
	log.Printf("[payment][usecase] case loaded case_id=%s status=%s price=%.2f", caseID, c.Status, c.TierPrice)

	// Ensure basic linkage with the case when the caller didn't provide it.
	// Mercado Pago uses external_reference to help reconcile events.
	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err == nil {
		if !mockMode && !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Printf("[payment][usecase] missing payment_method_id case_id=%s", caseID)
			return entities.CasePayment{}, ErrInvalidMPPayload
		}
		if !mockMode {
			normalizeSandboxPayerFromUserID(reqMap)
			ensurePayerDefaults(reqMap)
		}
		if !mockMode && !hasPayer(reqMap) {
			log.Printf("[payment][usecase] missing/invalid payer case_id=%s", caseID)
			return entities.CasePayment{}, ErrInvalidMPPayload
		}

		log.Printf("[payment][usecase] enriching payload case_id=%s", caseID)
		if _, ok := reqMap["external_reference"]; !ok {
			reqMap["external_reference"] = caseID
		}
		if _, ok := reqMap["description"]; !ok {
			reqMap["description"] = fmt.Sprintf("Homologation case %s", caseID)
		}

		// The source of truth for amount is the tariff stored on the case.
		reqMap["transaction_amount"] = c.TierPrice
		if b, err := json.Marshal(reqMap); err == nil {
			mpPayload = b
			log.Printf("[payment][usecase] payload enriched case_id=%s payload_len=%d", caseID, len(mpPayload))
		}
	} else {
		log.Printf("[payment][usecase] payload unmarshal failed case_id=%s err=%v", caseID, err)
	}

	providerPaymentID := ""
	providerStatus := ""
	providerResp := json.RawMessage(nil)

	if mockMode {
		log.Printf("[payment][usecase] mock mode enabled; skipping external payment gateway case_id=%s", caseID)
		providerPaymentID = strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		providerStatus = "approved"
		now := time.Now().UTC().Format(time.RFC3339Nano)
		mockResp := map[string]any{}
		if len(mpPayload) > 0 && json.Valid(mpPayload) {
			_ = json.Unmarshal(mpPayload, &mockResp)
		}
		mockResp["id"] = providerPaymentID
		mockResp["status"] = "approved"
		mockResp["status_detail"] = "accredited"
		mockResp["date_created"] = now
		mockResp["date_approved"] = now
		if _, ok := mockResp["external_reference"]; !ok {
			mockResp["external_reference"] = caseID
		}
		if _, ok := mockResp["transaction_amount"]; !ok {
			mockResp["transaction_amount"] = c.TierPrice
		}
		b, mErr := json.Marshal(mockResp)
		if mErr != nil {
			return entities.CasePayment{}, mErr
		}
		providerResp = b
	} else {
		log.Printf("[payment][usecase] calling payment gateway case_id=%s", caseID)
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, mpPayload)
		if err != nil {
			log.Printf("[payment][usecase] payment gateway failed case_id=%s err=%v", caseID, err)
			if isGatewayCustomerNotFound(err) {
				return entities.CasePayment{}, ErrPaymentGatewayCustomerNotFound
			}
			if isGatewayInvalidUsers(err) {
				return entities.CasePayment{}, ErrPaymentGatewayInvalidUsers
			}
			if isGatewayUnauthorized(err) {
				return entities.CasePayment{}, ErrPaymentGatewayUnauthorized
			}
			if isGatewayBadRequest(err) {
				return entities.CasePayment{}, ErrPaymentGatewayBadRequest
			}
			return entities.CasePayment{}, err
		}
	}
	log.Printf("[payment][usecase] payment gateway success case_id=%s provider_payment_id=%s provider_status=%s", caseID, providerPaymentID, providerStatus)

	status := entities.PaymentStatusAprobado

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed case_id=%s err=%v", caseID, err)
	}

	now := time.Now().UTC()
	p := entities.CasePayment{
		ID:                 providerPaymentID,
		CaseID:             caseID,
		ConversationID:     c.ConversationID,
		Amount:             c.TierPrice,
		Date:               now,
		Status:             status,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed case_id=%s payment_id=%s err=%v", caseID, p.ID, err)
		return entities.CasePayment{}, err
	}
	log.Printf("[payment][usecase] create-and-approve success case_id=%s payment_id=%s status=%s", caseID, created.ID, created.Status)
	return created, nil
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// In sandbox, either payer.id or payer.email may be used.
	// Fill email only when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
			payer["email"] = email
		} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
			// Sandbox-safe fallback recommended by Mercado Pago examples.
			payer["email"] = "test_user_es@testuser.com"
		}
	}
}

func normalizeSandboxPayerFromUserID(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		return
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}

	accessToken := strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if !strings.HasPrefix(accessToken, "TEST-") {
		return
	}

	configuredUserID := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_USER_ID"))
	configuredEmail := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL"))
	if configuredUserID == "" || configuredEmail == "" {
		return
	}

	rawID := strings.TrimSpace(fmt.Sprintf("%v", payer["id"]))
	if rawID == "" || rawID == "<nil>" || rawID != configuredUserID {
		return
	}

	payer["email"] = configuredEmail
	delete(payer, "id")
	log.Printf("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func isPaymentGatewayMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PAYMENT_GATEWAY_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}

	v = strings.ToLower(strings.TrimSpace(os.Getenv("MERCADOPAGO_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}

	return false
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}

func (u *CasePaymentUseCase) GetByID(ctx context.Context, id string) (entities.CasePayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.CasePayment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.CasePayment{}, err
	}
	if p.ID == "" {
		return entities.CasePayment{}, ErrCasePaymentNotFound
	}
	return p, nil
}

func (u *CasePaymentUseCase) ListByCaseID(ctx context.Context, caseID string) ([]entities.CasePayment, error) {
	caseID = strings.TrimSpace(caseID)
	if caseID == "" {
		return nil, ErrInvalidPaymentCaseID
	}
	return u.repo.ListByCaseID(ctx, caseID)
}
