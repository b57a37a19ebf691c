package transport

import (
	"salon_booking_backend/internal/availability/service"
	"salon_booking_backend/platform/timeutil"
)

// SlotResponse is one bookable slot: a wall-clock starting time and the
// master who is free then.
type SlotResponse struct {
	Time     string `json:"time"`
	MasterID int64  `json:"master_id"`
}

// ToSlotResponses converts computed slots to their API shape.
func ToSlotResponses(slots []service.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, SlotResponse{
			Time:     timeutil.FormatClock(timeutil.MinutesOfDay(slot.Start)),
			MasterID: slot.MasterID,
		})
	}
	return out
}
