package booking

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

// RegisterRoutes mounts booking endpoints on the authenticated group and
// payment verification on admin (the gateway callback is validated before
// it reaches this service).
func (h *Handler) RegisterRoutes(authed, admin *gin.RouterGroup) {
	authed.POST("/bookings", h.Reserve)
	authed.GET("/bookings", h.MyBookings)
	authed.GET("/bookings/:id", h.Get)
	authed.POST("/bookings/:id/cancel", h.Cancel)

	admin.POST("/bookings/:id/verify-payment", h.VerifyPayment)
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("role") == "admin"
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid booking id")
		return 0, false
	}
	return id, true
}

func (h *Handler) Reserve(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	b, err := h.service.Reserve(c.Request.Context(), req.SlotID, c.GetInt64("user_id"))
	if err != nil {
		switch err {
		case ErrSlotUnavailable:
			response.Error(c, http.StatusConflict, "SLOT_UNAVAILABLE", "Slot is not available")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Slot not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to reserve slot")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": toResponse(b)})
}

func (h *Handler) MyBookings(c *gin.Context) {
	bookings, err := h.service.MyBookings(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": toResponseList(bookings)})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"), isAdmin(c))
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Not your booking")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load booking")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toResponse(b)})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"), isAdmin(c), req.Reason)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Not your booking")
		case ErrAlreadyCancelled:
			response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", "Booking is already cancelled")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to cancel booking")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toResponse(b)})
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	b, err := h.service.VerifyPayment(c.Request.Context(), id, req.PaymentID)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
		case ErrAlreadyCancelled:
			response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", "Booking is cancelled")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to verify payment")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toResponse(b)})
}
