// Package http wires the course catalog's routes, session restoration, and
// the centralized error pipeline onto a gin engine.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coursehub/internal/service"
	"coursehub/internal/session"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	courses  service.CourseService
	users    service.UserService
	sessions *session.Manager
	logger   *logrus.Logger
}

func NewHandler(courses service.CourseService, users service.UserService, sessions *session.Manager, logger *logrus.Logger) *Handler {
	return &Handler{
		courses:  courses,
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterRoutes attaches middleware and routes. Order matters: the session
// restore step runs before dispatch and before the error pipeline, so every
// render (error pages included) sees currentUser and the flash queues.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestID())
	router.Use(h.accessLog())
	router.Use(h.restoreSession())
	router.Use(h.recovery())
	router.Use(h.errorPipeline())

	router.GET("/", h.home)
	router.GET("/about", h.about)

	auth := router.Group("/auth")
	{
		auth.GET("/register", h.registerForm)
		auth.POST("/register", h.register)
		auth.GET("/login", h.loginForm)
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
	}

	course := router.Group("/course")
	{
		course.GET("/:id", h.showCourse)

		protected := course.Group("")
		protected.Use(h.requireUser())
		{
			protected.GET("/new", h.newCourseForm)
			protected.POST("", h.createCourse)
			protected.GET("/:id/edit", h.editCourseForm)
			protected.PUT("/:id", h.updateCourse)
			protected.DELETE("/:id", h.deleteCourse)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		h.fail(c, NotFoundError())
	})
}
