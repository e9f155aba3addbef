package service

import "testing"

func TestGenerateSlots_Count(t *testing.T) {
	slots := GenerateSlots()
	if len(slots) != SlotCount {
		t.Fatalf("expected %d slots, got %d", SlotCount, len(slots))
	}
}

func TestGenerateSlots_Boundaries(t *testing.T) {
	slots := GenerateSlots()
	if slots[0] != FirstSlot {
		t.Errorf("first slot: expected %q, got %q", FirstSlot, slots[0])
	}
	if slots[len(slots)-1] != LastSlot {
		t.Errorf("last slot: expected %q, got %q", LastSlot, slots[len(slots)-1])
	}
	if slots[len(slots)-2] != "23:30" {
		t.Errorf("penultimate slot: expected 23:30, got %q", slots[len(slots)-2])
	}
}

func TestGenerateSlots_OrderedNoDuplicates(t *testing.T) {
	slots := GenerateSlots()
	seen := make(map[string]bool, len(slots))
	for i, slot := range slots {
		if seen[slot] {
			t.Errorf("duplicate slot %q at index %d", slot, i)
		}
		seen[slot] = true
		// Every slot before the midnight wrap must sort after its predecessor.
		if i > 0 && i < len(slots)-1 && slots[i] <= slots[i-1] {
			t.Errorf("slots out of order at index %d: %q <= %q", i, slots[i], slots[i-1])
		}
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	first := GenerateSlots()
	second := GenerateSlots()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs between calls: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestGenerateSlots_HalfHourSteps(t *testing.T) {
	for _, slot := range GenerateSlots() {
		min := slot[3:]
		if min != "00" && min != "30" {
			t.Errorf("slot %q is not on a 30-minute boundary", slot)
		}
	}
}

func TestIsBookableSlot(t *testing.T) {
	tests := []struct {
		time string
		want bool
	}{
		{"11:00", true},
		{"23:30", true},
		{"00:00", true},
		{"10:30", false},
		{"00:30", false},
		{"11:15", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsBookableSlot(tt.time); got != tt.want {
			t.Errorf("IsBookableSlot(%q) = %v, want %v", tt.time, got, tt.want)
		}
	}
}
