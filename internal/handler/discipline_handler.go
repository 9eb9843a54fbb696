package handler

import (
	"net/http"

	"artist-booking/internal/service"

	"github.com/gin-gonic/gin"
)

type DisciplineHandler struct {
	service service.DisciplineService
}

func NewDisciplineHandler(service service.DisciplineService) *DisciplineHandler {
	return &DisciplineHandler{service: service}
}

func (h *DisciplineHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("disciplines", h.GetDisciplines)
	}
}

func (h *DisciplineHandler) GetDisciplines(c *gin.Context) {
	disciplines, err := h.service.List(c)
	if err != nil {
		handleError(c, err, "GetDisciplines")
		return
	}
	handleSuccess(c, disciplines, http.StatusOK)
}
