package checkin

import (
	"time"

	"courtside/internal/domain"
)

type ScanRequest struct {
	Token string `json:"token" binding:"required"`
}

type ScanResult struct {
	Action    domain.CheckAction `json:"action"`
	Status    string             `json:"status"`
	PlayerID  int64              `json:"player_id,omitempty"`
	BookingID int64              `json:"booking_id"`
	Name      string             `json:"name,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}
