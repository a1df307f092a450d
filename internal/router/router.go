package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"printstock/internal/config"
	"printstock/internal/handler"
	"printstock/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	reconH *handler.ReconciliationHandler,
	inventoryH *handler.InventoryHandler,
	poH *handler.PurchaseOrderHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Reconciliation sessions
	recon := v1.Group("/reconciliation/sessions")
	recon.POST("", reconH.Start)
	recon.GET("/:id", reconH.Get)
	recon.PATCH("/:id/decisions/:index", reconH.UpdateDecision)
	recon.POST("/:id/commit", reconH.Commit)
	recon.GET("/:id/progress", reconH.Progress)
	recon.GET("/:id/archive", reconH.Archive)
	recon.POST("/:id/handoff", reconH.Handoff)
	recon.DELETE("/:id", reconH.Abandon)

	// Inventory
	materials := v1.Group("/materials")
	materials.POST("", inventoryH.CreateMaterial)
	materials.GET("", inventoryH.ListMaterials)
	materials.GET("/:id", inventoryH.GetMaterial)
	materials.PUT("/:id", inventoryH.UpdateMaterial)
	materials.DELETE("/:id", inventoryH.DeleteMaterial)

	consumables := v1.Group("/consumables")
	consumables.POST("", inventoryH.CreateConsumable)
	consumables.GET("", inventoryH.ListConsumables)
	consumables.GET("/:id", inventoryH.GetConsumable)
	consumables.PUT("/:id", inventoryH.UpdateConsumable)
	consumables.DELETE("/:id", inventoryH.DeleteConsumable)

	// Purchase orders
	orders := v1.Group("/purchase-orders")
	orders.GET("", poH.List)
	orders.GET("/:id", poH.GetByID)
	orders.GET("/:id/export", poH.Export)

	return r
}
