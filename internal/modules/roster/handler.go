package roster

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

func (h *Handler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.POST("/bookings/:id/players", h.AddPlayers)
	authed.GET("/bookings/:id/players", h.Players)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid booking id")
		return 0, false
	}
	return id, true
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("role") == "admin"
}

func (h *Handler) AddPlayers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AddPlayersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	players, err := h.service.AddPlayers(c.Request.Context(), id, req, c.GetInt64("user_id"), isAdmin(c))
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid player list")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Not your booking")
		case ErrPaymentRequired:
			response.Error(c, http.StatusPreconditionFailed, "PAYMENT_REQUIRED", "Booking payment is not verified")
		case ErrBookingCancelled:
			response.Error(c, http.StatusConflict, "BOOKING_CANCELLED", "Booking is cancelled")
		case ErrCapacityExceeded:
			response.Error(c, http.StatusConflict, "CAPACITY_EXCEEDED", "Player limit for this slot would be exceeded")
		case ErrDuplicatePlayer:
			response.Error(c, http.StatusConflict, "DUPLICATE_PLAYER", "Player email already registered for this booking")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to add players")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"players": toResponseList(players)})
}

func (h *Handler) Players(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	players, err := h.service.Players(c.Request.Context(), id, c.GetInt64("user_id"), isAdmin(c))
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Not your booking")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list players")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"players": toResponseList(players)})
}
