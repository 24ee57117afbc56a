package routes

import (
	_ "homologacion_motos/docs" // This will be auto-generated
	"homologacion_motos/internal/adapter/http/handlers"
	repository2 "homologacion_motos/internal/adapter/persistence/repository"
	"homologacion_motos/internal/infrastructure/database"
	"homologacion_motos/internal/infrastructure/payments"
	"homologacion_motos/internal/usecase"
	"homologacion_motos/internal/usecase/interfaces"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	caseRepo := repository2.NewCaseDynamoRepository(ddb)
	ticketRepo := repository2.NewReviewTicketDynamoRepository(ddb)
	paymentRepo := repository2.NewCasePaymentDynamoRepository(ddb)
	catalogRepo := repository2.NewCatalogDynamoRepository(ddb)

	catalogUseCase := usecase.NewCatalogQueryUseCase(catalogRepo)

	defaultCategoryID := os.Getenv("DEFAULT_CATEGORY_ID")
	if defaultCategoryID == "" {
		defaultCategoryID = "motos"
	}
	caseFlowUseCase := usecase.NewCaseFlowUseCase(caseRepo, ticketRepo, catalogUseCase, defaultCategoryID)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	paymentUseCase := usecase.NewCasePaymentUseCase(paymentRepo, caseRepo, paymentGateway)

	caseHandler := handlers.NewCaseHandler(caseFlowUseCase)
	catalogHandler := handlers.NewCatalogHandler(catalogUseCase)
	casePaymentHandler := handlers.NewCasePaymentHandler(paymentUseCase)

	// Rutas públicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addCaseRoutes(v1, caseHandler, catalogHandler, casePaymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
