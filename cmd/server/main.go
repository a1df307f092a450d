package main

import (
	"fmt"
	"log"

	"printstock/internal/config"
	"printstock/internal/handler"
	"printstock/internal/parser"
	"printstock/internal/parser/openai"
	"printstock/internal/port"
	"printstock/internal/repository/postgres"
	"printstock/internal/router"
	"printstock/internal/service"
	"printstock/internal/session"
	"printstock/internal/storage/noop"
	s3storage "printstock/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	materialRepo := postgres.NewMaterialRepo(db)
	consumableRepo := postgres.NewConsumableRepo(db)
	poRepo := postgres.NewPurchaseOrderRepo(db)

	// Initialize invoice archive storage
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewArchive(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Printf("no archive bucket configured, invoice uploads will not be archived")
		storage = noop.NewStorage()
	}

	// Initialize invoice parser with optional secondary fallback
	invoiceParser := buildParser(&cfg.Parser)

	// Initialize services
	inventorySvc := service.NewInventoryService(materialRepo, consumableRepo)
	sessionStore := session.NewStore()
	reconSvc := service.NewReconciliationService(
		sessionStore, inventorySvc, invoiceParser, storage, poRepo, &cfg.S3, &cfg.Upload)
	poSvc := service.NewPurchaseOrderService(poRepo)

	// Initialize handlers
	reconH := handler.NewReconciliationHandler(reconSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	poH := handler.NewPurchaseOrderHandler(poSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, reconH, inventoryH, poH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func buildParser(cfg *config.ParserConfig) port.InvoiceParser {
	primary := openai.NewParser(&cfg.Primary)
	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary
	}
	secondary := openai.NewParser(secondaryCfg)
	return parser.NewFallbackParser(
		parser.Provider{Name: cfg.Primary.Provider, Parser: primary},
		parser.Provider{Name: secondaryCfg.Provider, Parser: secondary},
	)
}
