// Package library models the rooms and half-hour time slots reported by the
// library's booking page.
package library

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// KnownRoom identifies a bookable room whose title we recognise. The values
// match the variant names the host serialises.
type KnownRoom string

const (
	R205AMeetingRoom                          KnownRoom = "R205AMeetingRoom"
	R205BMeetingRoom                          KnownRoom = "R205BMeetingRoom"
	R205CMeetingRoom                          KnownRoom = "R205CMeetingRoom"
	R206ATerentiukSpaceForAdultLearning       KnownRoom = "R206ATerentiukSpaceForAdultLearning"
	R206BMillarFamilyLearningAndDiscoveryRoom KnownRoom = "R206BMillarFamilyLearningAndDiscoveryRoom"
	R320CMeetingRoom                          KnownRoom = "R320CMeetingRoom"
	R320GMeetingRoom                          KnownRoom = "R320GMeetingRoom"
	R320HMeetingRoom                          KnownRoom = "R320HMeetingRoom"
	R310AMeetingRoom                          KnownRoom = "R310AMeetingRoom"
	R310BMeetingRoom                          KnownRoom = "R310BMeetingRoom"
	R317AMeetingRoom                          KnownRoom = "R317AMeetingRoom"
	R317BFieldLawMeetingRoom                  KnownRoom = "R317BFieldLawMeetingRoom"
	R319CMeetingRoom                          KnownRoom = "R319CMeetingRoom"
	R320AIdeaLab                              KnownRoom = "R320AIdeaLab"
	R316B                                     KnownRoom = "R316B"
)

var knownTitles = map[string]KnownRoom{
	"2-05A Meeting Room":                              R205AMeetingRoom,
	"2-05B Meeting Room":                              R205BMeetingRoom,
	"2-05C Meeting Room":                              R205CMeetingRoom,
	"2-06A Terentiuk Space for Adult Learning":        R206ATerentiukSpaceForAdultLearning,
	"2-06B Millar Family Learning and Discovery Room": R206BMillarFamilyLearningAndDiscoveryRoom,
	"3-20C Meeting Room":                              R320CMeetingRoom,
	"3-20G Meeting Room":                              R320GMeetingRoom,
	"3-20H Meeting Room":                              R320HMeetingRoom,
	"3-10A Meeting Room":                              R310AMeetingRoom,
	"3-10B Meeting Room":                              R310BMeetingRoom,
	"3-17A Meeting Room":                              R317AMeetingRoom,
	"3-17B Field Law Meeting Room":                    R317BFieldLawMeetingRoom,
	"3-19C Meeting Room":                              R319CMeetingRoom,
	"3-20A Idea Lab":                                  R320AIdeaLab,
	"3-16B":                                           R316B,
}

// KnownRoomFromTitle resolves a page title to a known room. The second return
// is false for titles not in the table.
func KnownRoomFromTitle(title string) (KnownRoom, bool) {
	room, ok := knownTitles[title]
	return room, ok
}

// Room is a bookable space. Choice is empty for rooms whose title is not
// recognised; Capacity is 0 when the description does not state one.
type Room struct {
	Choice      KnownRoom
	Title       string
	Description string
	Capacity    int
}

// NewRoom builds a Room from its page title and description.
func NewRoom(title, description string) Room {
	choice, _ := KnownRoomFromTitle(title)
	return Room{
		Choice:      choice,
		Title:       title,
		Description: description,
		Capacity:    InferCapacity(description),
	}
}

// Known reports whether the room's title matched the known-room table.
func (r Room) Known() bool {
	return r.Choice != ""
}

var (
	accommodateRE = regexp.MustCompile(`accommodate up to (\S+) people`)
	capacityRE    = regexp.MustCompile(`It has a capacity of (\S+)`)
)

var spelledCapacity = map[string]int{
	"four": 4,
	"six":  6,
	"ten":  10,
}

// InferCapacity extracts a head count from a room description. It returns 0
// when no recognised phrase is present.
func InferCapacity(description string) int {
	var raw string
	if m := accommodateRE.FindStringSubmatch(description); m != nil {
		raw = m[1]
	} else if m := capacityRE.FindStringSubmatch(description); m != nil {
		raw = m[1]
	} else {
		return 0
	}
	if n, ok := spelledCapacity[raw]; ok {
		return n
	}
	n, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0
	}
	return int(n)
}

type roomWire struct {
	Choice           json.RawMessage `json:"choice"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	InferredCapacity *int            `json:"inferred_capacity"`
}

// MarshalJSON writes the room in the host's shape: the choice is either the
// string "UnknownRoom" or {"KnownRoom": "<variant>"}.
func (r Room) MarshalJSON() ([]byte, error) {
	choice := []byte(`"UnknownRoom"`)
	if r.Known() {
		encoded, err := json.Marshal(map[string]KnownRoom{"KnownRoom": r.Choice})
		if err != nil {
			return nil, err
		}
		choice = encoded
	}
	wire := roomWire{
		Choice:      choice,
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Capacity > 0 {
		capacity := r.Capacity
		wire.InferredCapacity = &capacity
	}
	return json.Marshal(wire)
}

// UnmarshalJSON accepts the host's room shape.
func (r *Room) UnmarshalJSON(data []byte) error {
	var wire roomWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	choice, err := decodeChoice(wire.Choice)
	if err != nil {
		return err
	}
	*r = Room{
		Choice:      choice,
		Title:       wire.Title,
		Description: wire.Description,
	}
	if wire.InferredCapacity != nil {
		r.Capacity = *wire.InferredCapacity
	}
	return nil
}

func decodeChoice(raw json.RawMessage) (KnownRoom, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var tag string
	if err := json.Unmarshal(raw, &tag); err == nil {
		if tag == "UnknownRoom" {
			return "", nil
		}
		return "", fmt.Errorf("unknown room choice %q", tag)
	}
	var known struct {
		KnownRoom KnownRoom `json:"KnownRoom"`
	}
	if err := json.Unmarshal(raw, &known); err != nil {
		return "", fmt.Errorf("decode room choice: %w", err)
	}
	return known.KnownRoom, nil
}
