package library

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// slotOrigin is the hour of day that slot 0 starts at.
const slotOrigin = 5

// TimeSlot is a half-hour window counted from 5:00 AM.
type TimeSlot uint8

// ParseTimeSlot converts a page label such as "10:30 AM" into a slot.
// Labels beginning with "Booked" carry no slot and return false, as do
// malformed labels and minutes other than :00 or :30.
func ParseTimeSlot(label string) (TimeSlot, bool) {
	label = strings.TrimSpace(label)
	if label == "" || strings.HasPrefix(label, "Booked") {
		return 0, false
	}
	clock, meridiem, ok := strings.Cut(label, " ")
	if !ok {
		return 0, false
	}
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 1 || hour > 12 {
		return 0, false
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || (minute != 0 && minute != 30) {
		return 0, false
	}
	switch strings.ToUpper(strings.TrimSpace(meridiem)) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, false
	}
	shifted := (hour - slotOrigin + 24) % 24
	return TimeSlot(shifted*2 + minute/30), true
}

// Label renders the slot the way the booking page does, e.g. "5:00 AM".
func (s TimeSlot) Label() string {
	hour := (int(s)/2 + slotOrigin) % 24
	minute := "00"
	if s%2 == 1 {
		minute = "30"
	}
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, minute, meridiem)
}

func (s TimeSlot) String() string { return s.Label() }

// Availability is the ordered list of open slots for a room on one day.
type Availability []TimeSlot

// AvailabilityFromLabels keeps the slots that parse and drops the rest.
func AvailabilityFromLabels(labels []string) Availability {
	slots := make(Availability, 0, len(labels))
	for _, label := range labels {
		if slot, ok := ParseTimeSlot(label); ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// String renders "Fully booked" when nothing is open.
func (a Availability) String() string {
	if len(a) == 0 {
		return "Fully booked"
	}
	labels := make([]string, len(a))
	for i, slot := range a {
		labels[i] = slot.Label()
	}
	return "[" + strings.Join(labels, ", ") + "]"
}

// MarshalJSON encodes slots as an array of indices. A nil Availability
// encodes as [] rather than null.
func (a Availability) MarshalJSON() ([]byte, error) {
	// Plain ints: a []uint8 would encode as base64.
	indices := make([]int, len(a))
	for i, slot := range a {
		indices[i] = int(slot)
	}
	return json.Marshal(indices)
}

// RoomAvailability pairs a room with its open slots.
type RoomAvailability struct {
	Room         Room
	Availability Availability
}

// MarshalJSON encodes the pair as a two-element array [room, availability].
func (ra RoomAvailability) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{ra.Room, ra.Availability})
}

// UnmarshalJSON decodes a two-element array [room, availability].
func (ra *RoomAvailability) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode room availability: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode room availability: expected 2 elements, got %d", len(pair))
	}
	var room Room
	if err := json.Unmarshal(pair[0], &room); err != nil {
		return fmt.Errorf("decode room: %w", err)
	}
	var slots []int
	if err := json.Unmarshal(pair[1], &slots); err != nil {
		return fmt.Errorf("decode availability: %w", err)
	}
	avail := make(Availability, len(slots))
	for i, v := range slots {
		if v < 0 || v > 47 {
			return fmt.Errorf("decode availability: slot %d out of range", v)
		}
		avail[i] = TimeSlot(v)
	}
	*ra = RoomAvailability{Room: room, Availability: avail}
	return nil
}
