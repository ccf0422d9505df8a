package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// fallbackMessage is rendered for faults that carry no message of their own.
const fallbackMessage = "Someting Went Wrong!!"

// HTTPError is a fault that knows which status code to render with. Handlers
// push one into the gin error list and the error pipeline turns it into the
// uniform error page.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string { return e.Message }

func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// NotFoundError is the catch-all fault for unmatched routes.
func NotFoundError() *HTTPError {
	return NewHTTPError(http.StatusNotFound, "Page Not found")
}

// fail records a fault and stops the handler chain. The error pipeline is the
// single sink that converts it into a response.
func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// errorPipeline is the terminal stage for handler faults: it picks the status
// code off the error when present (500 otherwise), substitutes the generic
// message when the error carries none, and renders the uniform error view.
// Nothing is retried and nothing propagates further.
func (h *Handler) errorPipeline() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		statusCode := http.StatusInternalServerError
		message := fallbackMessage

		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode != 0 {
				statusCode = httpErr.StatusCode
			}
			if httpErr.Message != "" {
				message = httpErr.Message
			}
		}

		if statusCode >= http.StatusInternalServerError {
			h.logger.WithError(err).WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			}).Error("request failed")
		}

		if c.Writer.Written() {
			// response already streamed, nothing sensible left to render
			return
		}

		h.renderError(c, statusCode, message)
	}
}

// recovery converts panics into the same uniform error page the pipeline
// renders, keeping each request's fault isolated from the process.
func (h *Handler) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"panic":  recovered,
		}).Error("handler panicked")

		if !c.Writer.Written() {
			h.renderError(c, http.StatusInternalServerError, fallbackMessage)
		}
		c.Abort()
	})
}

func (h *Handler) renderError(c *gin.Context, statusCode int, message string) {
	h.render(c, statusCode, "error.html", gin.H{
		"statusCode": statusCode,
		"message":    message,
	})
}
