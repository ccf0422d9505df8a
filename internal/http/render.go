package http

import (
	"github.com/gin-gonic/gin"

	"coursehub/internal/domain"
	"coursehub/internal/session"
)

// render produces an HTML page. Every render pass carries the same locals:
// currentUser (nil when anonymous, but the key is always present), the session
// state, and the drained flash queues. Draining at render time means messages
// enqueued earlier in this same request are visible on this pass, while
// messages enqueued just before a redirect surface on the following request.
func (h *Handler) render(c *gin.Context, statusCode int, name string, data gin.H) {
	st := sessionState(c)

	payload := gin.H{
		"currentUser": currentUser(c),
		"session":     st,
		"success":     st.Drain(session.FlashSuccess),
		"error":       st.Drain(session.FlashError),
	}
	for k, v := range data {
		payload[k] = v
	}

	h.syncCookie(c, st)
	c.HTML(statusCode, name, payload)
}

// flash enqueues a one-shot message on the session.
func (h *Handler) flash(c *gin.Context, category, text string) {
	st := sessionState(c)
	st.Enqueue(category, text)
	h.syncCookie(c, st)
}

// syncCookie makes sure the client holds the signed token for the session it
// just modified. New and rotated sessions get a Set-Cookie; untouched
// sessions never produce one, so anonymous browsing stays cookie-free.
func (h *Handler) syncCookie(c *gin.Context, st *session.State) {
	if !st.Dirty() {
		return
	}
	signed := h.sessions.Sign(st.Token())
	if raw, err := c.Cookie(h.sessions.CookieName()); err == nil && raw == signed {
		return
	}
	c.SetCookie(
		h.sessions.CookieName(),
		signed,
		int(h.sessions.TTL().Seconds()),
		"/",
		"",
		false,
		true,
	)
}

func sessionState(c *gin.Context) *session.State {
	if v, ok := c.Get(ctxKeySession); ok {
		if st, ok := v.(*session.State); ok {
			return st
		}
	}
	// Only reachable when a route bypassed restoreSession; an unsaved
	// throwaway state keeps the render path total.
	return new(session.Manager).Load(c.Request.Context(), "")
}

func currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(ctxKeyUser); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}
