package roster

import "courtside/internal/domain"

type PlayerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

type AddPlayersRequest struct {
	Players []PlayerRequest `json:"players" binding:"required,min=1,dive"`
}

// PlayerResponse adds the check-in state label to the stored player fields.
type PlayerResponse struct {
	*domain.Player
	CheckInStatus string `json:"check_in_status"`
}

func toResponse(p *domain.Player) PlayerResponse {
	return PlayerResponse{Player: p, CheckInStatus: domain.CheckInStatus(p.CheckInCount)}
}

func toResponseList(ps []domain.Player) []PlayerResponse {
	out := make([]PlayerResponse, 0, len(ps))
	for i := range ps {
		out = append(out, toResponse(&ps[i]))
	}
	return out
}
