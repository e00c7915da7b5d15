package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/reportdesk/backend/config"
	"github.com/reportdesk/backend/internal/handler"
	"github.com/reportdesk/backend/internal/repository"
)

func Setup(
	cfg *config.Config,
	userRepo repository.UserRepository,
	reportHandler *handler.ReportHandler,
	sectionHandler *handler.SectionHandler,
	elementHandler *handler.ElementHandler,
	dataSourceHandler *handler.DataSourceHandler,
	userHandler *handler.UserHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.BestCompression))
	r.Use(handler.Identify(userRepo))

	api := r.Group("/api")
	{
		reports := api.Group("/reports")
		{
			reports.POST("", reportHandler.Create)
			reports.GET("", reportHandler.List)
			reports.GET("/:id", reportHandler.Get)
			reports.PUT("/:id", reportHandler.Update)
			reports.DELETE("/:id", reportHandler.Delete)
			reports.POST("/:id/status", reportHandler.SetStatus)
			reports.GET("/:id/export", reportHandler.Export)
		}

		sections := api.Group("/sections")
		{
			sections.POST("", sectionHandler.Add)
			sections.GET("/:id", sectionHandler.Get)
			sections.PUT("/:id", sectionHandler.Rename)
			sections.DELETE("/:id", sectionHandler.Delete)
			sections.POST("/:id/move", sectionHandler.Move)
		}

		elements := api.Group("/elements")
		{
			elements.POST("", elementHandler.Add)
			elements.GET("/:id", elementHandler.Get)
			elements.PUT("/:id", elementHandler.Edit)
			elements.DELETE("/:id", elementHandler.Delete)
			elements.POST("/:id/move", elementHandler.Move)
			elements.POST("/:id/swap", elementHandler.Swap)
			elements.POST("/:id/advance", elementHandler.Advance)
		}

		dataSources := api.Group("/datasources")
		{
			dataSources.POST("", dataSourceHandler.Create)
			dataSources.GET("", dataSourceHandler.List)
			dataSources.GET("/:id", dataSourceHandler.Get)
			dataSources.DELETE("/:id", dataSourceHandler.Delete)
		}

		users := api.Group("/users")
		{
			users.POST("", userHandler.Create)
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)
		}
	}

	return r
}
