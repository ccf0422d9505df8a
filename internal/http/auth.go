package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coursehub/internal/service"
	"coursehub/internal/session"
)

func (h *Handler) loginForm(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, http.StatusOK, "login.html", nil)
}

// login verifies the submitted credentials. Failures never reach the error
// pipeline: they turn into an error flash and a redirect back to the form.
func (h *Handler) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.users.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.WithError(err).WithField("email", email).Info("login rejected")
			h.flash(c, session.FlashError, "Invalid email or password")
			c.Redirect(http.StatusFound, "/auth/login")
			return
		}
		h.fail(c, err)
		return
	}

	st := sessionState(c)
	if err := h.sessions.Login(c.Request.Context(), st, user); err != nil {
		h.fail(c, err)
		return
	}
	c.Set(ctxKeyUser, user)

	h.flash(c, session.FlashSuccess, "Welcome back, "+displayName(user.Name, user.Email))
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) registerForm(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, http.StatusOK, "register.html", nil)
}

func (h *Handler) register(c *gin.Context) {
	email := c.PostForm("email")
	name := c.PostForm("name")
	password := c.PostForm("password")

	user, err := h.users.Register(c.Request.Context(), email, name, password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			h.flash(c, session.FlashError, "That email is already registered")
		} else {
			h.flash(c, session.FlashError, err.Error())
		}
		c.Redirect(http.StatusFound, "/auth/register")
		return
	}

	st := sessionState(c)
	if err := h.sessions.Login(c.Request.Context(), st, user); err != nil {
		h.fail(c, err)
		return
	}
	c.Set(ctxKeyUser, user)

	h.flash(c, session.FlashSuccess, "Welcome, "+displayName(user.Name, user.Email))
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	st := sessionState(c)
	h.sessions.Logout(st)
	c.Set(ctxKeyUser, nil)

	h.flash(c, session.FlashSuccess, "You have been logged out")
	c.Redirect(http.StatusFound, "/")
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	return email
}
