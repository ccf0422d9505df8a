package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"coursehub/internal/session"
)

const (
	ctxKeySession = "session"
	ctxKeyUser    = "currentUser"
	ctxKeyReqID   = "request_id"
)

// MethodOverride lets HTML forms express PUT and DELETE through a POST with a
// "_method" field, the way browsers require. It must wrap the router itself
// because routing dispatches on the rewritten method.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err == nil {
				switch r.PostForm.Get("_method") {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(ctxKeyReqID, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func (h *Handler) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := h.logger.WithFields(logrus.Fields{
			"request_id": c.GetString(ctxKeyReqID),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"client_ip":  c.ClientIP(),
		})
		if user := currentUser(c); user != nil {
			entry = entry.WithField("user_id", user.ID)
		}
		entry.Info("request")
	}
}

// restoreSession runs before every route (and before the error pipeline, so
// error pages see the same locals): it restores the session from the cookie,
// resolves the principal, and writes the session back after the handler if it
// was modified. Unmodified sessions are never persisted.
func (h *Handler) restoreSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(h.sessions.CookieName())
		if err != nil {
			raw = ""
		}

		st := h.sessions.Load(c.Request.Context(), raw)
		c.Set(ctxKeySession, st)

		if user := h.sessions.CurrentUser(c.Request.Context(), st); user != nil {
			c.Set(ctxKeyUser, user)
		}

		c.Next()

		if err := h.sessions.Commit(c.Request.Context(), st); err != nil {
			h.logger.WithError(err).Error("persist session")
		}
	}
}

// requireUser guards the mutating catalog routes: anonymous requests are sent
// to the login form with an error flash.
func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			h.flash(c, session.FlashError, "You must be signed in to do that")
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
