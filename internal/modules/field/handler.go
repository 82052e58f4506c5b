package field

import (
	"errors"
	"net/http"
	"strconv"

	"turnosya/internal/middleware"
	"turnosya/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the read-only catalog endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/fields", h.Search)
	rg.GET("/fields/:id", h.GetByID)
	rg.GET("/fields/nearby/:lat/:lng", h.Nearby)
	rg.GET("/fields/:id/special-hours", h.GetSpecialHours)
}

// RegisterOwnerRoutes mounts the endpoints behind owner auth.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.POST("/fields", h.Create)
	rg.GET("/fields/owner/mine", h.GetMine)
	rg.POST("/fields/:id/special-hours", h.CreateSpecialHours)
	rg.PUT("/fields/:id/special-hours/:shID", h.UpdateSpecialHours)
	rg.DELETE("/fields/:id/special-hours/:shID", h.DeleteSpecialHours)
	rg.GET("/fields/:id/special-hours/conflicts", h.GetConflicts)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	f, err := h.service.CreateField(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"field": f})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid field id")
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"field": f})
}

func (h *Handler) GetMine(c *gin.Context) {
	fields, err := h.service.GetByOwner(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"fields": fields})
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid search filters")
		return
	}

	fields, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"fields": fields})
}

func (h *Handler) Nearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Param("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Param("lng"), 64)
	if latErr != nil || lngErr != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid coordinates")
		return
	}

	radius, _ := strconv.ParseFloat(c.DefaultQuery("radius", "20"), 64)
	if radius < 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Radius must be positive")
		return
	}

	fields, err := h.service.Nearby(c.Request.Context(), lat, lng, radius)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"fields": fields})
}

func (h *Handler) CreateSpecialHours(c *gin.Context) {
	fieldID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid field id")
		return
	}

	var req SpecialHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sh, err := h.service.CreateSpecialHours(c.Request.Context(), fieldID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"special_hours": sh})
}

func (h *Handler) UpdateSpecialHours(c *gin.Context) {
	fieldID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid field id")
		return
	}
	shID, err := strconv.ParseInt(c.Param("shID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid special hours id")
		return
	}

	var req SpecialHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sh, err := h.service.UpdateSpecialHours(c.Request.Context(), fieldID, shID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"special_hours": sh})
}

func (h *Handler) DeleteSpecialHours(c *gin.Context) {
	fieldID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid field id")
		return
	}
	shID, err := strconv.ParseInt(c.Param("shID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid special hours id")
		return
	}

	if err := h.service.DeleteSpecialHours(c.Request.Context(), fieldID, shID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) GetSpecialHours(c *gin.Context) {
	fieldID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid field id")
		return
	}

	from := c.Query("start_date")
	to := c.Query("end_date")
	if from == "" || to == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date and end_date are required")
		return
	}

	rows, err := h.service.GetSpecialHours(c.Request.Context(), fieldID, from, to)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"special_hours": rows})
}

func (h *Handler) GetConflicts(c *gin.Context) {
	fieldID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid field id")
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	conflicts, err := h.service.GetConflicts(c.Request.Context(), fieldID, date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"conflicts": conflicts})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrOutOfBusinessHours):
		response.Error(c, http.StatusBadRequest, "OUT_OF_BUSINESS_HOURS", err.Error())
	case errors.Is(err, ErrOverlapConflict):
		response.Error(c, http.StatusBadRequest, "OVERLAP_CONFLICT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
