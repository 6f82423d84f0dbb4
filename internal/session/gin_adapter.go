package session

import (
	"bufio"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
)

// committingWriter commits the session and sets its cookie the first time
// the handler touches the response headers.
type committingWriter struct {
	gin.ResponseWriter
	req       *http.Request
	sm        *Manager
	committed bool
}

func (w *committingWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *committingWriter) WriteHeaderNow() {
	w.commit()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *committingWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *committingWriter) WriteString(s string) (int, error) {
	w.commit()
	return w.ResponseWriter.WriteString(s)
}

func (w *committingWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.Hijack()
}

func (w *committingWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true

	ctx := w.req.Context()
	status := w.sm.Status(ctx)
	if status == scs.Destroyed {
		w.sm.WriteSessionCookie(ctx, w.ResponseWriter, "", time.Time{})
		return
	}
	if status != scs.Modified {
		return
	}

	token, expiry, err := w.sm.Commit(ctx)
	if err != nil {
		log.Printf("Session: commit failed: %v", err)
		return
	}
	w.sm.WriteSessionCookie(ctx, w.ResponseWriter, token, expiry)
}

// LoadSave is the gin form of scs LoadAndSave. Handlers that read or write
// the last shown quote must run after it.
func (sm *Manager) LoadSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if cookie, err := c.Request.Cookie(sm.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := sm.Load(c.Request.Context(), token)
		if err != nil {
			log.Printf("Session: load failed: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(ctx)

		w := &committingWriter{ResponseWriter: c.Writer, req: c.Request, sm: sm}
		c.Writer = w

		c.Next()

		// Empty responses never reach Write.
		w.commit()
	}
}
