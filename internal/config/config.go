package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Audit
		Sync
		Remote
		Session
		CSRF
		Tasks
		Notifications
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Audit struct {
		Dir           string // Directory for archived import payloads
		RetentionDays int    // Days to keep audit events (default: 30)
	}
	Sync struct {
		Enabled  bool
		Interval time.Duration // Period between merge cycles (default: 30s)
		PageSize int           // Remote records fetched per cycle (default: 5)
		Category string        // Synthetic category for remote quotes (default: "Server")
		// Manual POST /api/sync triggers allowed per client per minute (default: 6)
		ManualLimit int
	}
	Remote struct {
		BaseURL string
		Timeout time.Duration
	}
	Session struct {
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	CSRF struct {
		Enabled bool
		Secret  string // 32 bytes, hex or raw; generated when empty
	}
	Tasks struct {
		Enabled              bool
		Workers              int
		ReleaseAfter         time.Duration
		CleanupInterval      time.Duration
		AuditCleanupSchedule string // Cron schedule for enqueuing audit cleanup
	}
	Notifications struct {
		Capacity int // Number of recent notifications kept in memory
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("audit_retention_days", 30)

	// Remote sync defaults
	v.SetDefault("sync_enabled", true)
	v.SetDefault("sync_interval", DefaultSyncInterval.String())
	v.SetDefault("sync_page_size", DefaultSyncPageSize)
	v.SetDefault("sync_category", DefaultSyncCategory)
	v.SetDefault("sync_manual_limit", 6)
	v.SetDefault("remote_base_url", DefaultRemoteBaseURL)
	v.SetDefault("remote_timeout", "10s")

	// Session defaults
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("session_secure_cookies", false)

	// CSRF defaults
	v.SetDefault("csrf_enabled", false)
	v.SetDefault("csrf_secret", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_audit_cleanup_schedule", "0 3 * * *") // Daily at 03:00

	v.SetDefault("notifications_capacity", 50)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Audit: Audit{
			Dir:           v.GetString("AUDIT_DIR"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Sync: Sync{
			Enabled:     v.GetBool("SYNC_ENABLED"),
			Interval:    v.GetDuration("SYNC_INTERVAL"),
			PageSize:    v.GetInt("SYNC_PAGE_SIZE"),
			Category:    v.GetString("SYNC_CATEGORY"),
			ManualLimit: v.GetInt("SYNC_MANUAL_LIMIT"),
		},
		Remote: Remote{
			BaseURL: v.GetString("REMOTE_BASE_URL"),
			Timeout: v.GetDuration("REMOTE_TIMEOUT"),
		},
		Session: Session{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SESSION_SECURE_COOKIES"),
		},
		CSRF: CSRF{
			Enabled: v.GetBool("CSRF_ENABLED"),
			Secret:  v.GetString("CSRF_SECRET"),
		},
		Tasks: Tasks{
			Enabled:              v.GetBool("TASKS_ENABLED"),
			Workers:              v.GetInt("TASK_WORKERS"),
			ReleaseAfter:         v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:      v.GetDuration("TASK_CLEANUP_INTERVAL"),
			AuditCleanupSchedule: v.GetString("TASK_AUDIT_CLEANUP_SCHEDULE"),
		},
		Notifications: Notifications{
			Capacity: v.GetInt("NOTIFICATIONS_CAPACITY"),
		},
	}
}
