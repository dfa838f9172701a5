package schedule

import (
	"net/http"
	"strconv"

	"courtside/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/sports/:id/slots", h.AvailableSlots)

	admin.POST("/sports/:id/slots/generate", h.Generate)
	admin.POST("/sports/:id/slots/clear", h.Clear)
	admin.POST("/slots/reset-booked", h.ResetBooked)
	admin.POST("/slots/:id/disable", h.DisableSlot)
	admin.POST("/slots/:id/enable", h.EnableSlot)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) AvailableSlots(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Sport not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list slots")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) Generate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	result, err := h.service.Generate(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid date range")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Sport not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Slot generation failed")
		}
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Clear(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	deleted, err := h.service.Clear(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid date range")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Sport not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to clear slots")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}

func (h *Handler) ResetBooked(c *gin.Context) {
	reset, err := h.service.ResetBooked(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to reset slots")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reset": reset})
}

func (h *Handler) DisableSlot(c *gin.Context) {
	h.setDisabled(c, true)
}

func (h *Handler) EnableSlot(c *gin.Context) {
	h.setDisabled(c, false)
}

func (h *Handler) setDisabled(c *gin.Context, disabled bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.SetSlotDisabled(c.Request.Context(), id, disabled); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Slot not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update slot")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"admin_disabled": disabled})
}
