package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/service"
	"coursehub/internal/session"
)

func (h *Handler) newCourseForm(c *gin.Context) {
	h.render(c, http.StatusOK, "course_new.html", nil)
}

func (h *Handler) createCourse(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")

	user := currentUser(c)
	course, err := h.courses.Create(c.Request.Context(), title, description, user.ID)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			h.flash(c, session.FlashError, vErr.Message)
			c.Redirect(http.StatusFound, "/course/new")
			return
		}
		h.fail(c, err)
		return
	}

	h.flash(c, session.FlashSuccess, "Course created")
	c.Redirect(http.StatusFound, fmt.Sprintf("/course/%d", course.ID))
}

func (h *Handler) showCourse(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, "course_show.html", gin.H{
		"course": course,
	})
}

func (h *Handler) editCourseForm(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, "course_edit.html", gin.H{
		"course": course,
	})
}

func (h *Handler) updateCourse(c *gin.Context) {
	id, ok := h.courseID(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")

	if _, err := h.courses.Update(c.Request.Context(), id, title, description); err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.flash(c, session.FlashError, vErr.Message)
			c.Redirect(http.StatusFound, fmt.Sprintf("/course/%d/edit", id))
		case errors.Is(err, repository.ErrNotFound):
			h.fail(c, NewHTTPError(http.StatusNotFound, "Course not found"))
		default:
			h.fail(c, err)
		}
		return
	}

	h.flash(c, session.FlashSuccess, "Course updated")
	c.Redirect(http.StatusFound, fmt.Sprintf("/course/%d", id))
}

func (h *Handler) deleteCourse(c *gin.Context) {
	id, ok := h.courseID(c)
	if !ok {
		return
	}

	if err := h.courses.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.fail(c, NewHTTPError(http.StatusNotFound, "Course not found"))
		} else {
			h.fail(c, err)
		}
		return
	}

	h.flash(c, session.FlashSuccess, "Course deleted")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) loadCourse(c *gin.Context) (*domain.Course, bool) {
	id, ok := h.courseID(c)
	if !ok {
		return nil, false
	}

	found, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.fail(c, NewHTTPError(http.StatusNotFound, "Course not found"))
		} else {
			h.fail(c, err)
		}
		return nil, false
	}
	return found, true
}

func (h *Handler) courseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, NewHTTPError(http.StatusNotFound, "Course not found"))
		return 0, false
	}
	return id, true
}
