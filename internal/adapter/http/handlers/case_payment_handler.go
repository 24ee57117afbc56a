package handlers

import (
	"encoding/json"
	"errors"
	"log"
	response "homologacion_motos/internal/adapter/http/dto/response"
	"homologacion_motos/internal/usecase"
	"homologacion_motos/pkg"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CasePaymentHandler handles HTTP requests for case payments.

type CasePaymentHandler struct {
	usecase usecase.ICasePaymentUseCase
}

func NewCasePaymentHandler(uc usecase.ICasePaymentUseCase) *CasePaymentHandler {
	return &CasePaymentHandler{usecase: uc}
}

// CreatePaymentByCaseID creates/approves a payment using case_id in path.
func (h *CasePaymentHandler) CreatePaymentByCaseID(c *gin.Context) {
	caseID := c.Param("case_id")
	log.Printf("[payment][handler] create start case_id=%s", caseID)
	mockMode := isPaymentGatewayMockEnabled()
	mpPayload, err := readMPPayload(c)
	if err != nil {
		if mockMode {
			log.Printf("[payment][handler] payload invalid in mock mode; fallback to empty payload case_id=%s err=%v", caseID, err)
			mpPayload = json.RawMessage("{}")
		} else {
			log.Printf("[payment][handler] invalid payload case_id=%s err=%v", caseID, err)
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	created, err := h.usecase.CreateAndApprove(c.Request.Context(), caseID, mpPayload)
	if err != nil {
		log.Printf("[payment][handler] create failed case_id=%s err=%v", caseID, err)
		appErr := mapCasePaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success case_id=%s payment_id=%s status=%s", caseID, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromCasePayment(created))
}

// GetPaymentByCaseID returns the latest payment for a case.
func (h *CasePaymentHandler) GetPaymentByCaseID(c *gin.Context) {
	caseID := c.Param("case_id")
	log.Printf("[payment][handler] get-by-case start case_id=%s", caseID)

	payments, err := h.usecase.ListByCaseID(c.Request.Context(), caseID)
	if err != nil {
		log.Printf("[payment][handler] get-by-case failed case_id=%s err=%v", caseID, err)
		appErr := mapCasePaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if len(payments) == 0 {
		log.Printf("[payment][handler] get-by-case not-found case_id=%s", caseID)
		appErr := pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	log.Printf("[payment][handler] get-by-case success case_id=%s payment_id=%s status=%s", caseID, latest.ID, latest.Status)

	c.JSON(http.StatusOK, response.FromCasePayment(latest))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapCasePaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentCaseID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrCaseNotFound):
		return pkg.NewDomainErrorSimple("CASE_NOT_FOUND", "Case not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCaseNotPayable):
		return pkg.NewDomainErrorSimple("CASE_NOT_FINALIZED", "Case not finalized", http.StatusConflict)
	case errors.Is(err, usecase.ErrCasePaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
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
