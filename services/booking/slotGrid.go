package booking

import (
	"sort"

	"rapstation/models"

	"go.uber.org/zap"
)

// BlockedSet is the set of hour labels held by occupying reservations.
type BlockedSet map[string]struct{}

// NewBlockedSet builds a set from labels.
func NewBlockedSet(labels ...string) BlockedSet {
	b := make(BlockedSet, len(labels))
	for _, l := range labels {
		b[l] = struct{}{}
	}
	return b
}

// Has reports whether label is blocked.
func (b BlockedSet) Has(label string) bool {
	_, ok := b[label]
	return ok
}

// Labels returns the blocked labels in grid order.
func (b BlockedSet) Labels(hourLabels []string) []string {
	out := make([]string, 0, len(b))
	for _, l := range hourLabels {
		if b.Has(l) {
			out = append(out, l)
		}
	}
	// labels outside the grid are kept so nothing is lost on a round trip
	var extra []string
	for l := range b {
		if labelIndex(l, hourLabels) < 0 {
			extra = append(extra, l)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// DeriveBlockedHours marks every hour covered by the given reservations. Callers pass
// reservations already filtered to one date, one resource and occupying statuses.
// Rows whose interval cannot be resolved are skipped.
func DeriveBlockedHours(reservations []models.Reservation, hourLabels []string, logger *zap.Logger) BlockedSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	blocked := make(BlockedSet)
	for _, r := range reservations {
		if !r.HasInterval() {
			continue
		}
		res, err := ParseInterval(r.Interval, hourLabels)
		if err != nil {
			logger.Debug("skipping unresolvable reservation interval",
				zap.String("code", r.Code), zap.String("interval", r.Interval), zap.Error(err))
			continue
		}
		for i := res.StartIndex; i < res.EndIndex && i < len(hourLabels); i++ {
			blocked[hourLabels[i]] = struct{}{}
		}
	}
	return blocked
}

// HandleSlotClick advances the selection state machine for a click on label at index.
// A click on a blocked slot is ignored. Extending across a blocked hour returns
// ErrSelectionConflict together with the unchanged selection.
func HandleSlotClick(label string, index int, sel models.SelectionRange, blocked BlockedSet, hourLabels []string) (models.SelectionRange, error) {
	if blocked.Has(label) {
		return sel, nil
	}
	clicked := &models.Slot{Label: label, Index: index}

	if sel.Start == nil || sel.End != nil {
		return models.SelectionRange{Start: clicked}, nil
	}

	startIndex := sel.Start.Index
	switch {
	case index < startIndex:
		return models.SelectionRange{Start: clicked}, nil
	case index == startIndex:
		return models.SelectionRange{}, nil
	}

	for i := startIndex; i <= index && i < len(hourLabels); i++ {
		if blocked.Has(hourLabels[i]) {
			return sel, ErrSelectionConflict
		}
	}
	return models.SelectionRange{Start: sel.Start, End: clicked}, nil
}

// isSelected follows the booking page highlighting: both bounds plus everything strictly between.
func isSelected(index int, sel models.SelectionRange) bool {
	if sel.Start == nil {
		return false
	}
	if sel.Start.Index == index {
		return true
	}
	if sel.End == nil {
		return false
	}
	return sel.End.Index == index || (index > sel.Start.Index && index < sel.End.Index)
}

// BuildGridSlots renders the status of every hour on the grid.
func BuildGridSlots(hourLabels []string, sel models.SelectionRange, blocked BlockedSet) []models.GridSlot {
	slots := make([]models.GridSlot, len(hourLabels))
	for i, l := range hourLabels {
		status := models.SlotAvailable
		switch {
		case blocked.Has(l):
			status = models.SlotBooked
		case isSelected(i, sel):
			status = models.SlotSelected
		}
		slots[i] = models.GridSlot{Label: l, Index: i, Status: status}
	}
	return slots
}
