package app

import (
	"fmt"
	"log"

	"kisanagro-backend/app/controller"
	"kisanagro-backend/app/router"
	"kisanagro-backend/cache"
	"kisanagro-backend/config"
	"kisanagro-backend/db"
	"kisanagro-backend/repository"
	"kisanagro-backend/service"
)

// Initialize initializes the application
func Initialize(cfg *config.Config) error {
	// Initialize database connection
	if err := db.InitDB(cfg); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis (session inquiry carts)
	if err := cache.InitRedis(cfg); err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize mail dispatch
	mailService, err := service.NewMailService(cfg)
	if err != nil {
		return err
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository()
	inquiryRepo := repository.NewInquiryRepository()
	cartRepo := repository.NewCartRepository()

	// Initialize services
	compressor := service.NewImageCompressor(service.DefaultCompressorConfig())
	inquiryService := service.NewInquiryService(inquiryRepo, mailService)

	catalogService, err := service.NewCatalogService(productRepo, cfg.BaseURL)
	if err != nil {
		return err
	}

	// Drive image import is optional, the rest of the app works without it
	var importService *service.ImageImportService
	if cfg.GoogleCredentials != "" {
		driveService, err := service.NewDriveService(cfg.GoogleCredentials)
		if err != nil {
			return err
		}
		importService = service.NewImageImportService(driveService, compressor, productRepo)
	} else {
		log.Printf("⚠️ GOOGLE_APPLICATION_CREDENTIALS not set, Drive image import disabled")
	}

	// Create controllers
	controllers := &router.Controllers{
		Product: controller.NewProductController(productRepo, compressor, importService),
		Inquiry: controller.NewInquiryController(inquiryService, inquiryRepo),
		Cart:    controller.NewCartController(cartRepo, productRepo, inquiryService),
		Catalog: controller.NewCatalogController(catalogService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
