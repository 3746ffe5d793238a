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

type OpportunityHandler struct {
	Svc    *application.OpportunityService
	Logger *logrus.Logger
}

func NewOpportunityHandler(svc *application.OpportunityService, logger *logrus.Logger) *OpportunityHandler {
	return &OpportunityHandler{Svc: svc, Logger: logger}
}

// List GET /api/opportunities?type=&location=&isRemote=&search=
func (h *OpportunityHandler) List(c *gin.Context) {
	remote, err := queryBool(c, "isRemote")
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	f := repository.OpportunityFilter{
		Type:     entity.OpportunityType(c.Query("type")),
		Location: c.Query("location"),
		IsRemote: remote,
		Search:   c.Query("search"),
	}
	opps, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.List(c, opps, "opportunities")
}

func (h *OpportunityHandler) Get(c *gin.Context) {
	o, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, o, "opportunity", nil)
}

func (h *OpportunityHandler) Create(c *gin.Context) {
	var in application.CreateOpportunityInput
	if !bindJSON(c, &in) {
		return
	}
	o, err := h.Svc.Create(c.Request.Context(), in, currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, o, "opportunity created", nil)
}

func (h *OpportunityHandler) Update(c *gin.Context) {
	var in application.UpdateOpportunityInput
	if !bindJSON(c, &in) {
		return
	}
	o, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, o, "opportunity updated", nil)
}

func (h *OpportunityHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "opportunity deleted", nil)
}

func (h *OpportunityHandler) Apply(c *gin.Context) {
	a, err := h.Svc.Apply(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "application submitted successfully", nil)
}

// SetStatus PUT /api/opportunities/:id/applications/:applicationId
func (h *OpportunityHandler) SetStatus(c *gin.Context) {
	var in application.ApplicationStatusInput
	if !bindJSON(c, &in) {
		return
	}
	a, err := h.Svc.SetApplicationStatus(c.Request.Context(), c.Param("id"), c.Param("applicationId"), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "application status updated", nil)
}

// Mine GET /api/my/applications
func (h *OpportunityHandler) Mine(c *gin.Context) {
	apps, err := h.Svc.MyApplications(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.List(c, apps, "my applications")
}
