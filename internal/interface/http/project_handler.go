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

type ProjectHandler struct {
	Svc            *application.ProjectService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewProjectHandler(svc *application.ProjectService, logger *logrus.Logger, maxUpload int64) *ProjectHandler {
	return &ProjectHandler{Svc: svc, Logger: logger, MaxUploadBytes: maxUpload}
}

// List GET /api/projects?difficulty=&status=&search=
func (h *ProjectHandler) List(c *gin.Context) {
	f := repository.ProjectFilter{
		Difficulty: entity.ProjectDifficulty(c.Query("difficulty")),
		Status:     entity.ProjectStatus(c.Query("status")),
		Search:     c.Query("search"),
	}
	projects, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.List(c, projects, "projects")
}

func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "project", nil)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var in application.CreateProjectInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), in, currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "project created", nil)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var in application.UpdateProjectInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in, currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "project updated", nil)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), currentUser(c)); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "project deleted", nil)
}

func (h *ProjectHandler) UploadThumbnail(c *gin.Context) {
	up, done, err := formUpload(c, h.MaxUploadBytes)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	defer done()
	p, err := h.Svc.UploadThumbnail(c.Request.Context(), c.Param("id"), currentUser(c), up)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "thumbnail updated", nil)
}

func (h *ProjectHandler) Like(c *gin.Context) {
	res, err := h.Svc.ToggleLike(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	msg := "project unliked"
	if res.Liked {
		msg = "project liked"
	}
	response.Success(c, http.StatusOK, res, msg, nil)
}

func (h *ProjectHandler) Comment(c *gin.Context) {
	var in application.CommentInput
	if !bindJSON(c, &in) {
		return
	}
	comments, err := h.Svc.Comment(c.Request.Context(), c.Param("id"), currentUser(c), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.List(c, comments, "comment added")
}

// Mine GET /api/my/projects
func (h *ProjectHandler) Mine(c *gin.Context) {
	projects, err := h.Svc.MyProjects(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.List(c, projects, "my projects")
}
