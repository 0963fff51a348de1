package booking

import (
	"fmt"

	"rapstation/models"
)

// Overlaps is the half-open intersection test for [cs, ce) and [es, ee).
// Back-to-back ranges sharing a boundary do not overlap.
func Overlaps(cs, ce, es, ee int) bool {
	return cs < ee && es < ce
}

// Candidate is the range about to be committed.
type Candidate struct {
	StartIndex int
	// EndIndex is nil when only a start was picked.
	EndIndex *int
}

// CandidateFromSelection converts a grid selection. ok is false without a start.
func CandidateFromSelection(sel models.SelectionRange) (Candidate, bool) {
	if sel.Start == nil {
		return Candidate{}, false
	}
	c := Candidate{StartIndex: sel.Start.Index}
	if sel.End != nil {
		end := sel.End.Index
		c.EndIndex = &end
	}
	return c, true
}

// Bounds returns the effective half-open range. An unset end defaults to one hour.
func (c Candidate) Bounds() (int, int) {
	if c.EndIndex != nil {
		return c.StartIndex, *c.EndIndex
	}
	return c.StartIndex, c.StartIndex + 1
}

// Interval renders the text persisted at checkout.
func (c Candidate) Interval(hourLabels []string) string {
	start, end := c.Bounds()
	return FormatInterval(endLabelFor(start, hourLabels), endLabelFor(end, hourLabels))
}

// CheckBlocked is the optimistic check against the blocked set the grid was rendered with.
func CheckBlocked(c Candidate, blocked BlockedSet, hourLabels []string) error {
	start, end := c.Bounds()
	for i := start; i < end && i < len(hourLabels); i++ {
		if blocked.Has(hourLabels[i]) {
			return ErrCommitConflict
		}
	}
	return nil
}

// ValidateCandidate re-checks c against freshly fetched reservations.
func ValidateCandidate(c Candidate, fresh []models.Reservation, hourLabels []string) error {
	start, end := c.Bounds()
	for _, r := range fresh {
		if !r.HasInterval() {
			continue
		}
		res, err := ParseInterval(r.Interval, hourLabels)
		if err != nil {
			continue
		}
		if Overlaps(start, end, res.StartIndex, res.EndIndex) {
			return fmt.Errorf("%w (held by %s, %s)", ErrCommitConflict, r.Code, r.Interval)
		}
	}
	return nil
}
