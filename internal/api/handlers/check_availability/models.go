package check_availability

import (
	"time"

	checkAvailability "github.com/m04kA/SMC-CheckinService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SlotTime     *string `json:"slotTime,omitempty"`
	SlotEnd      *string `json:"slotEnd,omitempty"`
	Available    bool    `json:"available"`
	CurrentCount int     `json:"currentCount"`
	Max          int     `json:"max"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Available:    resp.Available,
		CurrentCount: resp.CurrentCount,
		Max:          resp.Max,
	}
	if resp.SlotTime != nil {
		start := resp.SlotTime.Format(time.RFC3339)
		out.SlotTime = &start
	}
	if resp.SlotEnd != nil {
		end := resp.SlotEnd.Format(time.RFC3339)
		out.SlotEnd = &end
	}
	return out
}
