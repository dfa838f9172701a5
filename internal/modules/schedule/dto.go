package schedule

type ManualSlotRequest struct {
	StartTime string `json:"start_time" binding:"required"` // "15:04"
	EndTime   string `json:"end_time" binding:"required"`   // "15:04"
}

type GenerateRequest struct {
	StartDate    string              `json:"start_date" binding:"required"` // "2006-01-02"
	EndDate      string              `json:"end_date" binding:"required"`   // "2006-01-02"
	ForceReplace bool                `json:"force_replace"`
	ManualSlots  []ManualSlotRequest `json:"manual_slots"`
}

type GenerateResult struct {
	Created  int `json:"created"`
	Skipped  int `json:"skipped"`
	Replaced int `json:"replaced"`
}

type ClearRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}
