package entrypoint

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotebook/internal/audit"
	"github.com/mrlokans/quotebook/internal/config"
	"github.com/mrlokans/quotebook/internal/database"
	auditrepo "github.com/mrlokans/quotebook/internal/database/audit"
	syncrepo "github.com/mrlokans/quotebook/internal/database/sync"
	http_controllers "github.com/mrlokans/quotebook/internal/http"
	"github.com/mrlokans/quotebook/internal/notify"
	"github.com/mrlokans/quotebook/internal/persistence"
	"github.com/mrlokans/quotebook/internal/quotes"
	"github.com/mrlokans/quotebook/internal/remote"
	"github.com/mrlokans/quotebook/internal/scheduler"
	"github.com/mrlokans/quotebook/internal/selection"
	"github.com/mrlokans/quotebook/internal/services"
	"github.com/mrlokans/quotebook/internal/session"
	"github.com/mrlokans/quotebook/internal/settingsstore"
	"github.com/mrlokans/quotebook/internal/syncer"
	"github.com/mrlokans/quotebook/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the server so no cycle outlives it
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Quotebook v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := session.NewManager(sqlDB, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	// Quote collection, restored from the settings table
	snapshot := persistence.NewAdapter(settingsstore.New(db), sessionManager)
	store := quotes.NewStore()
	view := selection.NewViewModel(store)
	feed := notify.NewFeed(cfg.Notifications.Capacity)

	// Audit trail in the database, raw import payloads on disk
	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	defer auditService.Wait()
	auditor := audit.NewAuditor(cfg.Audit.Dir)

	remoteClient := remote.NewClient(cfg.Remote.BaseURL, cfg.Sync.Category, remote.WithTimeout(cfg.Remote.Timeout))
	syncOpts := syncer.Options{
		PageSize:    cfg.Sync.PageSize,
		PushTimeout: cfg.Remote.Timeout,
		Notifier:    feed,
		Auditor:     auditService,
		Progress:    syncrepo.NewRepository(db.DB),
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:            cfg.Tasks.Workers,
			ReleaseAfter:       cfg.Tasks.ReleaseAfter,
			CleanupInterval:    cfg.Tasks.CleanupInterval,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()
		syncOpts.Queue = taskClient
	}

	syncService := syncer.NewService(store, remoteClient, snapshot, view, syncOpts)
	defer syncService.Wait()

	var cleanupScheduler *scheduler.AuditCleanupScheduler
	if taskClient != nil {
		taskClient.Register(
			tasks.NewPushQuoteQueue(syncService),
			tasks.NewCleanupAuditEventsQueue(auditService),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		cleanupScheduler = scheduler.NewAuditCleanupScheduler(taskClient, cfg.Tasks.AuditCleanupSchedule)
		if err := cleanupScheduler.Start(); err != nil {
			log.Printf("WARNING: audit cleanup disabled: %v", err)
			cleanupScheduler = nil
		}
	}

	quoteService := services.NewQuoteService(store, view, snapshot, services.Options{
		Pusher:   syncService,
		Notifier: feed,
		Audit:    auditService,
		Archiver: auditor,
	})
	quoteService.Bootstrap()

	// Cycles run only after the collection is restored
	syncScheduler := scheduler.NewQuoteSyncScheduler(syncService, cfg.Sync.Interval)
	if cfg.Sync.Enabled {
		if err := syncScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start quote sync scheduler: %v", err)
		}
	} else {
		log.Printf("Quote sync: scheduled cycles disabled, POST /api/sync still available")
	}

	var csrfSecret []byte
	if cfg.CSRF.Enabled {
		csrfSecret, err = loadCSRFSecret(cfg.CSRF.Secret)
		if err != nil {
			log.Fatalf("Failed to prepare CSRF secret: %v", err)
		}
	}

	syncLimiter := http_controllers.NewRateLimiter(http_controllers.RateLimitConfig{
		MaxRequests:    cfg.Sync.ManualLimit,
		WindowDuration: time.Minute,
	})
	defer syncLimiter.Stop()

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Quotes:            quoteService,
		Database:          db,
		Sync:              syncScheduler,
		SyncProgress:      syncrepo.NewRepository(db.DB),
		SyncRateLimit:     syncLimiter,
		Notifications:     feed,
		Audit:             auditService,
		SessionMiddleware: sessionManager.LoadSave(),
		CSRFSecret:        csrfSecret,
		SecureCookies:     cfg.Session.SecureCookies,
		Version:           version,
	}
	if taskClient != nil {
		routerCfg.TaskClient = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		syncScheduler.Stop()
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// loadCSRFSecret decodes a hex secret, falls back to the raw bytes, or
// generates a fresh one when none is configured.
func loadCSRFSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	log.Printf("Generated CSRF secret (set CSRF_SECRET to persist)")
	return secret, nil
}
