package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/edu-platform/internal/application"
	"github.com/oksasatya/edu-platform/pkg/response"
)

type SearchHandler struct {
	Svc    *application.SearchService
	Logger *logrus.Logger
}

func NewSearchHandler(svc *application.SearchService, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{Svc: svc, Logger: logger}
}

// Search GET /api/search?q=&kind=&size=
func (h *SearchHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	docs, err := h.Svc.Search(c.Request.Context(), c.Query("q"), c.Query("kind"), size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.List(c, docs, "search results")
}
