package http

import "github.com/gin-gonic/gin"

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Quotes   QuoteService
	Database Pinger

	// Remote sync (optional)
	Sync          SyncRunner
	SyncProgress  SyncProgressReader
	SyncRateLimit *RateLimiter // caps manual sync triggers per client

	// Feeds (optional)
	Notifications NotificationReader
	Audit         AuditReader

	// Task queue (optional)
	TaskClient TaskQueue

	// Session middleware; required for the last shown quote to survive
	// between requests
	SessionMiddleware gin.HandlerFunc

	// CSRF protection is enabled when the secret is set
	CSRFSecret    []byte
	SecureCookies bool

	// Application info
	Version string
}
