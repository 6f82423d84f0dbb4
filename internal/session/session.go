// Package session keeps per-browser-session state in scs sessions backed by SQLite.
//
// The session cookie is not persistent, so the browser drops it when the
// session ends and the stored values become unreachable.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/quotebook/internal/config"
	"github.com/mrlokans/quotebook/internal/entities"
)

// Session data keys
const (
	KeyLastQuote = "lastQuote"
)

// Manager wraps scs.SessionManager with quote-specific accessors.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg config.Session) (*Manager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.Lifetime
	sm.IdleTimeout = cfg.Lifetime / 2

	sm.Cookie.Name = "quotebook_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	// Session cookie only: cleared when the browser session ends
	sm.Cookie.Persist = false

	return &Manager{SessionManager: sm}, nil
}

// LastShown returns the quote most recently shown in this session.
func (m *Manager) LastShown(ctx context.Context) (entities.Quote, bool) {
	raw := m.GetString(ctx, KeyLastQuote)
	if raw == "" {
		return entities.Quote{}, false
	}

	var q entities.Quote
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		log.Printf("Session: discarding unreadable last quote: %v", err)
		m.Remove(ctx, KeyLastQuote)
		return entities.Quote{}, false
	}
	if !q.IsComplete() {
		return entities.Quote{}, false
	}
	return q, true
}

// SetLastShown records q as the quote most recently shown in this session.
func (m *Manager) SetLastShown(ctx context.Context, q entities.Quote) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	m.Put(ctx, KeyLastQuote, string(data))
	return nil
}
