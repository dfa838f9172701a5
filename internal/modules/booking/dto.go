package booking

import "courtside/internal/domain"

type ReserveRequest struct {
	SlotID int64 `json:"slot_id" binding:"required"`
}

type VerifyPaymentRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// BookingResponse adds the derived status to the stored booking fields.
type BookingResponse struct {
	*domain.Booking
	Status domain.BookingStatus `json:"status"`
}

func toResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{Booking: b, Status: b.Status()}
}

func toResponseList(bs []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bs))
	for i := range bs {
		out = append(out, toResponse(&bs[i]))
	}
	return out
}
