package catalog

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

// RegisterRoutes mounts the public catalog endpoints on public and the
// management endpoints on admin.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/sports", h.ListSports)
	public.GET("/sports/:id", h.GetSport)

	admin.POST("/sports", h.CreateSport)
	admin.PUT("/sports/:id", h.UpdateSport)
	admin.GET("/sports/:id/config", h.GetConfig)
	admin.PUT("/sports/:id/config", h.UpsertConfig)
	admin.POST("/sports/:id/breaks", h.AddBreak)
	admin.GET("/sports/:id/breaks", h.ListBreaks)
	admin.DELETE("/breaks/:id", h.RemoveBreak)
	admin.POST("/sports/:id/blackouts", h.AddBlackout)
	admin.GET("/sports/:id/blackouts", h.ListBlackouts)
	admin.DELETE("/blackouts/:id", h.RemoveBlackout)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) ListSports(c *gin.Context) {
	activeOnly := c.Query("all") != "true"

	sports, err := h.service.ListSports(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list sports")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sports": sports})
}

func (h *Handler) GetSport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sport, err := h.service.GetSport(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Sport not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load sport")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sport": sport})
}

func (h *Handler) CreateSport(c *gin.Context) {
	var req CreateSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	sport, err := h.service.CreateSport(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid sport data")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create sport")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"sport": sport})
}

func (h *Handler) UpdateSport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	sport, err := h.service.UpdateSport(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Sport not found")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid sport data")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update sport")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sport": sport})
}

func (h *Handler) GetConfig(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cfg, err := h.service.GetConfig(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Configuration not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load configuration")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"config": cfg})
}

func (h *Handler) UpsertConfig(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpsertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	cfg, err := h.service.UpsertConfig(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Sport not found")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid configuration")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to save configuration")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"config": cfg})
}

func (h *Handler) AddBreak(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AddBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	b, err := h.service.AddBreak(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid break window")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create break")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"break": b})
}

func (h *Handler) ListBreaks(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	breaks, err := h.service.Breaks(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list breaks")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"breaks": breaks})
}

func (h *Handler) RemoveBreak(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.RemoveBreak(c.Request.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Break not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to delete break")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) AddBlackout(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AddBlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	b, err := h.service.AddBlackout(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid blackout date")
		case ErrDuplicateBlackout:
			response.Error(c, http.StatusConflict, "DUPLICATE_BLACKOUT", "Blackout date already exists for this sport")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create blackout date")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"blackout": b})
}

func (h *Handler) ListBlackouts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	blackouts, err := h.service.Blackouts(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list blackout dates")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blackouts": blackouts})
}

func (h *Handler) RemoveBlackout(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.RemoveBlackout(c.Request.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Blackout date not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to delete blackout date")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
