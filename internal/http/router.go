package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionMiddleware != nil {
		router.Use(cfg.SessionMiddleware)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	quotesController := NewQuotesController(cfg.Quotes)
	api.GET("/quotes", quotesController.List)
	api.POST("/quotes", quotesController.Add)
	api.GET("/quotes/random", quotesController.Random)
	api.GET("/quotes/last", quotesController.Last)

	categoriesController := NewCategoriesController(cfg.Quotes)
	api.GET("/categories", categoriesController.List)
	api.PUT("/categories/selected", categoriesController.Select)

	transferController := NewTransferController(cfg.Quotes)
	api.GET("/export", transferController.Export)
	api.POST("/import", transferController.Import)

	if cfg.Sync != nil {
		syncController := NewSyncController(cfg.Sync, cfg.SyncProgress)
		syncHandlers := []gin.HandlerFunc{syncController.SyncNow}
		if cfg.SyncRateLimit != nil {
			syncHandlers = append([]gin.HandlerFunc{cfg.SyncRateLimit.Middleware()}, syncHandlers...)
		}
		api.POST("/sync", syncHandlers...)
		api.GET("/sync/status", syncController.GetStatus)
	}

	if cfg.Notifications != nil {
		notificationsController := NewNotificationsController(cfg.Notifications)
		api.GET("/notifications", notificationsController.List)
	}

	if cfg.Audit != nil {
		auditController := NewAuditController(cfg.Audit)
		api.GET("/audit", auditController.GetAuditEvents)
	}

	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
