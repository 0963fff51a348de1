package models

import "fmt"

// SlotsPerDay is the number of bookable one-hour slots in the grid.
const SlotsPerDay = 24

// EndOfDayLabel is the exclusive upper bound one hour past the last slot.
const EndOfDayLabel = "24:00"

// HourLabels is the fixed grid sequence "00:00" .. "23:00".
var HourLabels = buildHourLabels()

func buildHourLabels() []string {
	labels := make([]string, SlotsPerDay)
	for i := range labels {
		labels[i] = fmt.Sprintf("%02d:00", i)
	}
	return labels
}

// Resource is a bookable unit category.
type Resource struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Resources are the rental categories offered by the venue.
var Resources = []Resource{
	{Type: "ps4", Label: "PlayStation 4"},
	{Type: "ps5", Label: "PlayStation 5"},
	{Type: "warnet", Label: "PC Gaming"},
}

// ResolveResource accepts either a type ("ps5") or a label ("PlayStation 5").
func ResolveResource(v string) (Resource, bool) {
	for _, r := range Resources {
		if v == r.Type || v == r.Label {
			return r, true
		}
	}
	return Resource{}, false
}

// Slot is one hour on the grid.
type Slot struct {
	Label string `json:"label"`
	Index int    `json:"index"`
}

// SelectionState names the position of a SelectionRange in the click state machine.
type SelectionState string

const (
	SelectionEmpty     SelectionState = "EMPTY"
	SelectionStartOnly SelectionState = "START_ONLY"
	SelectionFull      SelectionState = "FULL"
)

// SelectionRange is the customer's in-progress pick on the grid.
type SelectionRange struct {
	Start *Slot `json:"start"`
	End   *Slot `json:"end"`
}

// State reports the state machine position.
func (s SelectionRange) State() SelectionState {
	switch {
	case s.Start == nil:
		return SelectionEmpty
	case s.End == nil:
		return SelectionStartOnly
	default:
		return SelectionFull
	}
}

// Indices returns the start and end indices, nil when unset.
func (s SelectionRange) Indices() (*int, *int) {
	var start, end *int
	if s.Start != nil {
		v := s.Start.Index
		start = &v
	}
	if s.End != nil {
		v := s.End.Index
		end = &v
	}
	return start, end
}

// SlotStatus is how a grid cell is rendered.
type SlotStatus string

const (
	SlotBooked    SlotStatus = "booked"
	SlotSelected  SlotStatus = "selected"
	SlotAvailable SlotStatus = "available"
)

// GridSlot is one rendered cell.
type GridSlot struct {
	Label  string     `json:"label"`
	Index  int        `json:"index"`
	Status SlotStatus `json:"status"`
}
