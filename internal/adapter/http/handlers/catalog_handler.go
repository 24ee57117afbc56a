package handlers

import (
	"errors"
	response "homologacion_motos/internal/adapter/http/dto/response"
	"homologacion_motos/internal/domain/catalog"
	"homologacion_motos/internal/usecase"
	"homologacion_motos/pkg"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidQuoteElements = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid elements parameter", http.StatusBadRequest)
)

// CatalogHandler handles HTTP requests for the tariff catalog.

type CatalogHandler struct {
	usecase usecase.ICatalogQueryUseCase
}

func NewCatalogHandler(uc usecase.ICatalogQueryUseCase) *CatalogHandler {
	return &CatalogHandler{usecase: uc}
}

// InvalidateCache drops the catalog snapshot cache. The management interface
// calls it after editing categories, elements, tiers or inclusions.
func (h *CatalogHandler) InvalidateCache(c *gin.Context) {
	h.usecase.InvalidateCache()
	c.Status(http.StatusNoContent)
}

// Quote computes the cheapest qualifying tier for `elements=CODE:QTY,...`
// without touching any case.
func (h *CatalogHandler) Quote(c *gin.Context) {
	categoryID := c.Param("category_id")

	requested, err := parseQuoteElements(c.Query("elements"))
	if err != nil {
		c.JSON(errInvalidQuoteElements.HTTPStatus, errInvalidQuoteElements.ToHTTPError())
		return
	}

	sel, err := h.usecase.SelectTariff(c.Request.Context(), categoryID, requested)
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTariffSelection(categoryID, requested, sel))
}

// parseQuoteElements parses "ESCAPE:2,MANILLAR" into requested lines; the
// quantity defaults to 1.
func parseQuoteElements(raw string) ([]catalog.RequestedElement, error) {
	parts := strings.Split(raw, ",")
	requested := make([]catalog.RequestedElement, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, qty := part, 1
		if before, after, found := strings.Cut(part, ":"); found {
			n, err := strconv.Atoi(strings.TrimSpace(after))
			if err != nil || n <= 0 {
				return nil, errors.New("invalid quantity")
			}
			code, qty = before, n
		}
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			return nil, errors.New("empty element code")
		}
		requested = append(requested, catalog.RequestedElement{Code: code, Quantity: qty})
	}
	if len(requested) == 0 {
		return nil, errors.New("no elements requested")
	}
	return requested, nil
}

func mapCatalogError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCategoryID), errors.Is(err, usecase.ErrInvalidTierID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCategoryNotFound):
		return pkg.NewDomainErrorSimple("CATEGORY_NOT_FOUND", "Catalog category not found", http.StatusNotFound)
	case errors.Is(err, catalog.ErrUnknownElement):
		return pkg.NewDomainErrorSimple("UNKNOWN_ELEMENT", "Unknown element code", http.StatusUnprocessableEntity)
	case errors.Is(err, catalog.ErrNoTierCovers):
		return pkg.NewDomainErrorSimple("NO_TIER_COVERS", "No tariff tier covers the requested elements", http.StatusUnprocessableEntity)
	case errors.Is(err, catalog.ErrCycleDetected):
		return pkg.NewDomainError("CYCLE_DETECTED", "Catalog tier inclusions form a cycle", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("PERSISTENCE_ERROR", "A persistence error occurred", err, http.StatusServiceUnavailable)
	}
}
