package service

import "fmt"

// Business hours run 11:00 through midnight in 30-minute steps, plus the 00:00
// slot that wraps past midnight. The wrap slot belongs to the following
// calendar day in real-world terms but is booked under the selected date.
const (
	openingHour = 11
	closingHour = 24
	slotStepMin = 30
	SlotCount   = 27
	FirstSlot   = "11:00"
	LastSlot    = "00:00"
)

// GenerateSlots returns the canonical ordered slot sequence for any business
// day. Pure and deterministic: no input, no side effects, same 27 values on
// every call.
func GenerateSlots() []string {
	slots := make([]string, 0, SlotCount)
	for hour := openingHour; hour < closingHour; hour++ {
		for minute := 0; minute < 60; minute += slotStepMin {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	slots = append(slots, LastSlot)
	return slots
}

// IsBookableSlot reports whether t (HH:MM) is one of the generated slots.
func IsBookableSlot(t string) bool {
	for _, slot := range GenerateSlots() {
		if slot == t {
			return true
		}
	}
	return false
}
