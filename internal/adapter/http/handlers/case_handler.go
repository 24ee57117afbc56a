package handlers

import (
	"errors"
	request "homologacion_motos/internal/adapter/http/dto/request"
	response "homologacion_motos/internal/adapter/http/dto/response"
	"homologacion_motos/internal/domain/catalog"
	"homologacion_motos/internal/usecase"
	"homologacion_motos/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidActionPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid action payload", http.StatusBadRequest)
)

// CaseHandler handles HTTP requests of the conversational case workflow.

type CaseHandler struct {
	usecase usecase.ICaseFlowUseCase
}

func NewCaseHandler(uc usecase.ICaseFlowUseCase) *CaseHandler {
	return &CaseHandler{usecase: uc}
}

// HandleAction applies one workflow action to the conversation's case.
//
// Successes, replays and conversational failures all answer with the uniform
// ActionResultResponse envelope; only malformed requests and infrastructure
// faults use the error shape.
func (h *CaseHandler) HandleAction(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	var payload request.CaseActionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidActionPayload.HTTPStatus, errInvalidActionPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.HandleAction(c.Request.Context(), conversationID, payload.Action, payload.Payload)
	if err != nil {
		appErr := mapCaseFlowError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(statusForActionResult(result), response.FromActionResult(result))
}

// GetState returns the conversation's current case with the advisory action
// menu for its phase.
func (h *CaseHandler) GetState(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	current, actions, err := h.usecase.GetState(c.Request.Context(), conversationID)
	if err != nil {
		appErr := mapCaseFlowError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCaseState(current, actions))
}

// statusForActionResult maps the conversational error vocabulary onto HTTP:
// phase conflicts are 409, everything the caller can rephrase is 422. The
// envelope itself is identical across statuses.
func statusForActionResult(r usecase.ActionResult) int {
	if r.ErrorCode == "" {
		return http.StatusOK
	}
	switch r.ErrorCode {
	case usecase.CodeFSMWrongPhase, usecase.CodeFSMNotIdle:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func mapCaseFlowError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidConversationID), errors.Is(err, usecase.ErrUnknownAction):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCaseNotFound):
		return pkg.NewDomainErrorSimple("CASE_NOT_FOUND", "Case not found", http.StatusNotFound)
	case errors.Is(err, catalog.ErrCycleDetected):
		return pkg.NewDomainError("CYCLE_DETECTED", "Catalog tier inclusions form a cycle", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("PERSISTENCE_ERROR", "A persistence error occurred", err, http.StatusServiceUnavailable)
	}
}
