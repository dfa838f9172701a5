package checkin

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

// RegisterRoutes mounts the scan endpoints on the authenticated group (gate
// staff scanners log in like any user) and audit logs on admin.
func (h *Handler) RegisterRoutes(authed, admin *gin.RouterGroup) {
	authed.POST("/checkin/player", h.ScanPlayer)
	authed.POST("/checkin/organizer", h.ScanOrganizer)

	admin.GET("/players/:id/checkin-logs", h.PlayerLogs)
	admin.GET("/bookings/:id/checkin-logs", h.OrganizerLogs)
}

func scanError(c *gin.Context, err error) {
	switch err {
	case ErrInvalidToken:
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "QR token is invalid")
	case ErrTokenExpired:
		response.Error(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "QR token has expired")
	case ErrWrongDate:
		response.Error(c, http.StatusConflict, "WRONG_DATE", "Booking is not scheduled for today")
	case ErrMaxScansReached:
		response.Error(c, http.StatusConflict, "MAX_SCANS_REACHED", "Check-in and check-out already completed")
	case ErrEntityNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Referenced player or booking no longer exists")
	case ErrConflict:
		response.Error(c, http.StatusConflict, "SCAN_CONFLICT", "Another scan is being processed")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Scan failed")
	}
}

func (h *Handler) ScanPlayer(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	result, err := h.service.ScanPlayer(c.Request.Context(), req.Token)
	if err != nil {
		scanError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) ScanOrganizer(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	result, err := h.service.ScanOrganizer(c.Request.Context(), req.Token)
	if err != nil {
		scanError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) PlayerLogs(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid player id")
		return
	}

	logs, err := h.service.PlayerLogs(c.Request.Context(), id)
	if err != nil {
		scanError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logs": logs})
}

func (h *Handler) OrganizerLogs(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid booking id")
		return
	}

	logs, err := h.service.OrganizerLogs(c.Request.Context(), id)
	if err != nil {
		scanError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logs": logs})
}
