package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/edu-platform/internal/application"
	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
	"github.com/oksasatya/edu-platform/pkg/response"
)

type CourseHandler struct {
	Svc            *application.CourseService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewCourseHandler(svc *application.CourseService, logger *logrus.Logger, maxUpload int64) *CourseHandler {
	return &CourseHandler{Svc: svc, Logger: logger, MaxUploadBytes: maxUpload}
}

// List GET /api/courses?difficulty=&search=
func (h *CourseHandler) List(c *gin.Context) {
	f := repository.CourseFilter{
		Difficulty: entity.CourseDifficulty(c.Query("difficulty")),
		Search:     c.Query("search"),
	}
	courses, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.List(c, courses, "courses")
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, course, "course", nil)
}

func (h *CourseHandler) Create(c *gin.Context) {
	var in application.CreateCourseInput
	if !bindJSON(c, &in) {
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), in, currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, course, "course created", nil)
}

func (h *CourseHandler) Update(c *gin.Context) {
	var in application.UpdateCourseInput
	if !bindJSON(c, &in) {
		return
	}
	course, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, course, "course updated", nil)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "course deleted", nil)
}

// UploadThumbnail PUT /api/courses/:id/thumbnail (multipart "file")
func (h *CourseHandler) UploadThumbnail(c *gin.Context) {
	up, done, err := formUpload(c, h.MaxUploadBytes)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	defer done()
	course, err := h.Svc.UploadThumbnail(c.Request.Context(), c.Param("id"), up)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, course, "thumbnail updated", nil)
}

func (h *CourseHandler) Enroll(c *gin.Context) {
	if err := h.Svc.Enroll(c.Request.Context(), c.Param("id"), currentUser(c)); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrolled": true}, "successfully enrolled in course", nil)
}

func (h *CourseHandler) Rate(c *gin.Context) {
	var in application.RateCourseInput
	if !bindJSON(c, &in) {
		return
	}
	course, err := h.Svc.Rate(c.Request.Context(), c.Param("id"), currentUser(c), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, course, "rating saved", nil)
}

// Mine GET /api/my/courses
func (h *CourseHandler) Mine(c *gin.Context) {
	courses, err := h.Svc.MyCourses(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.List(c, courses, "enrolled courses")
}
