package routes

import (
	"homologacion_motos/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathConversations = "/conversations"
	PathCatalog       = "/catalog"
	PathCases         = "/cases"
)

func addCaseRoutes(rg *gin.RouterGroup, caseHandler *handlers.CaseHandler, catalogHandler *handlers.CatalogHandler, paymentHandler *handlers.CasePaymentHandler) {
	conversations := rg.Group(PathConversations)
	{
		conversations.POST("/:conversation_id/actions", caseHandler.HandleAction)
		conversations.GET("/:conversation_id/case", caseHandler.GetState)
	}

	catalog := rg.Group(PathCatalog)
	{
		// Hook para la interfaz de gestión tras editar el catálogo.
		catalog.POST("/cache/invalidate", catalogHandler.InvalidateCache)
		catalog.GET("/categories/:category_id/quote", catalogHandler.Quote)
	}

	cases := rg.Group(PathCases)
	{
		cases.POST("/:case_id/payments", paymentHandler.CreatePaymentByCaseID)
		cases.GET("/:case_id/payments", paymentHandler.GetPaymentByCaseID)
	}
}
