package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"k8s.io/klog/v2"

	"github.com/reportdesk/backend/config"
	"github.com/reportdesk/backend/internal/eventbus"
	"github.com/reportdesk/backend/internal/handler"
	"github.com/reportdesk/backend/internal/pkg/database"
	"github.com/reportdesk/backend/internal/repository"
	"github.com/reportdesk/backend/internal/router"
	"github.com/reportdesk/backend/internal/service"
	"github.com/reportdesk/backend/internal/subscriber"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	// .env is optional, real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	reportRepo := repository.NewReportRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	elementRepo := repository.NewElementRepository(db)
	dataSourceRepo := repository.NewDataSourceRepository(db)
	userRepo := repository.NewUserRepository(db)

	bus := eventbus.NewBus()
	subscriber.NewReportEventSubscriber().Register(bus)

	reportService := service.NewReportService(reportRepo, sectionRepo, elementRepo, bus)
	sectionService := service.NewSectionService(reportRepo, sectionRepo)
	elementService := service.NewElementService(sectionRepo, elementRepo, dataSourceRepo, bus)
	dataSourceService := service.NewDataSourceService(dataSourceRepo)
	userService := service.NewUserService(userRepo)

	reportHandler := handler.NewReportHandler(reportService)
	sectionHandler := handler.NewSectionHandler(sectionService, reportService)
	elementHandler := handler.NewElementHandler(elementService, sectionService, reportService)
	dataSourceHandler := handler.NewDataSourceHandler(dataSourceService)
	userHandler := handler.NewUserHandler(userService)

	r := router.Setup(cfg, userRepo,
		reportHandler, sectionHandler, elementHandler, dataSourceHandler, userHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
