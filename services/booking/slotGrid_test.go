package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapstation/models"
)

var labels = models.HourLabels

func slot(i int) *models.Slot {
	return &models.Slot{Label: labels[i], Index: i}
}

func reservation(code, interval string, status models.ReservationStatus) models.Reservation {
	return models.Reservation{Code: code, Resource: "PC Gaming", Date: "2025-01-10", Interval: interval, Status: status}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		cs, ce, es, ee int
		want           bool
	}{
		{"back to back before", 8, 10, 10, 12, false},
		{"back to back after", 12, 14, 10, 12, false},
		{"contained", 10, 11, 9, 12, true},
		{"partial", 14, 16, 15, 17, true},
		{"identical", 3, 5, 3, 5, true},
		{"disjoint", 0, 2, 20, 24, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.cs, tc.ce, tc.es, tc.ee))
			assert.Equal(t, tc.want, Overlaps(tc.es, tc.ee, tc.cs, tc.ce), "overlap must be symmetric")
		})
	}
}

func TestOverlaps_Exhaustive(t *testing.T) {
	for a0 := 0; a0 < 24; a0++ {
		for a1 := a0 + 1; a1 <= 24; a1++ {
			for b0 := 0; b0 < 24; b0++ {
				for b1 := b0 + 1; b1 <= 24; b1++ {
					got := Overlaps(a0, a1, b0, b1)
					require.Equal(t, got, Overlaps(b0, b1, a0, a1), "[%d,%d) vs [%d,%d)", a0, a1, b0, b1)

					shared := false
					for h := a0; h < a1; h++ {
						if h >= b0 && h < b1 {
							shared = true
							break
						}
					}
					require.Equal(t, shared, got, "[%d,%d) vs [%d,%d)", a0, a1, b0, b1)
				}
			}
		}
	}
}

func TestParseInterval(t *testing.T) {
	cases := []struct {
		raw        string
		start, end int
	}{
		{"08:00 - 10:00", 8, 10},
		{"08:00-10:00", 8, 10},
		{"08:00   -  10:00", 8, 10},
		{" 23:00 - 24:00 ", 23, 24},
		{"00:00 - 01:00", 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseInterval(tc.raw, labels)
			require.NoError(t, err)
			assert.Equal(t, IntervalResult{StartIndex: tc.start, EndIndex: tc.end}, got)
		})
	}
}

func TestParseInterval_Errors(t *testing.T) {
	for _, raw := range []string{"", models.IntervalUnselected, "08:00", "8 - 10", "08:00 - 25:00", "08:00 - 10:00 - 12:00", "- 10:00"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseInterval(raw, labels)
			var ie *IntervalError
			assert.ErrorAs(t, err, &ie)
		})
	}

	inverted, err := ParseInterval("12:00 - 10:00", labels)
	require.NoError(t, err)
	assert.True(t, inverted.Empty())
}

func TestDeriveBlockedHours_SpacingDoesNotMatter(t *testing.T) {
	spaced := DeriveBlockedHours([]models.Reservation{reservation("BK-A", "08:00 - 10:00", models.StatusPaid)}, labels, nil)
	tight := DeriveBlockedHours([]models.Reservation{reservation("BK-A", "08:00-10:00", models.StatusPaid)}, labels, nil)

	assert.Equal(t, spaced, tight)
	assert.Equal(t, []string{"08:00", "09:00"}, spaced.Labels(labels))
}

func TestDeriveBlockedHours_SkipsUnselectedAndGarbage(t *testing.T) {
	blocked := DeriveBlockedHours([]models.Reservation{
		reservation("BK-A", models.IntervalUnselected, models.StatusRequested),
		reservation("BK-B", "not an interval", models.StatusPaid),
		reservation("BK-C", "22:00 - 24:00", models.StatusInProgress),
	}, labels, nil)

	assert.Equal(t, []string{"22:00", "23:00"}, blocked.Labels(labels))
}

func TestUnselectedNeverOccupies(t *testing.T) {
	var rows []models.Reservation
	for _, st := range models.AllStatuses {
		rows = append(rows, reservation("BK-"+string(st), models.IntervalUnselected, st))
	}

	assert.Empty(t, DeriveBlockedHours(rows, labels, nil).Labels(labels))

	c, ok := CandidateFromSelection(models.SelectionRange{Start: slot(0), End: slot(23)})
	require.True(t, ok)
	assert.NoError(t, ValidateCandidate(c, rows, labels))
}

func TestHandleSlotClick_StateMachine(t *testing.T) {
	blocked := NewBlockedSet()

	sel, err := HandleSlotClick(labels[9], 9, models.SelectionRange{}, blocked, labels)
	require.NoError(t, err)
	assert.Equal(t, models.SelectionStartOnly, sel.State())

	sel, err = HandleSlotClick(labels[12], 12, sel, blocked, labels)
	require.NoError(t, err)
	assert.Equal(t, models.SelectionFull, sel.State())
	assert.Equal(t, 9, sel.Start.Index)
	assert.Equal(t, 12, sel.End.Index)

	// a click on a full selection starts over
	sel, err = HandleSlotClick(labels[5], 5, sel, blocked, labels)
	require.NoError(t, err)
	assert.Equal(t, models.SelectionRange{Start: slot(5)}, sel)

	// earlier than start moves the start
	sel, err = HandleSlotClick(labels[3], 3, sel, blocked, labels)
	require.NoError(t, err)
	assert.Equal(t, models.SelectionRange{Start: slot(3)}, sel)
}

func TestHandleSlotClick_DoubleClickClears(t *testing.T) {
	sel, err := HandleSlotClick(labels[7], 7, models.SelectionRange{}, NewBlockedSet(), labels)
	require.NoError(t, err)

	sel, err = HandleSlotClick(labels[7], 7, sel, NewBlockedSet(), labels)
	require.NoError(t, err)
	assert.Equal(t, models.SelectionEmpty, sel.State())
}

func TestHandleSlotClick_RejectsRangeOverBlocked(t *testing.T) {
	blocked := NewBlockedSet("10:00", "11:00", "12:00")
	start := models.SelectionRange{Start: slot(9)}

	sel, err := HandleSlotClick(labels[14], 14, start, blocked, labels)
	assert.ErrorIs(t, err, ErrSelectionConflict)
	assert.Equal(t, start, sel, "selection must be unchanged")
}

func TestHandleSlotClick_BlockedClickIsIgnored(t *testing.T) {
	blocked := NewBlockedSet("10:00")
	start := models.SelectionRange{Start: slot(9)}

	sel, err := HandleSlotClick("10:00", 10, start, blocked, labels)
	require.NoError(t, err)
	assert.Equal(t, start, sel)
}

func TestBuildGridSlots(t *testing.T) {
	sel := models.SelectionRange{Start: slot(10), End: slot(12)}
	slots := BuildGridSlots(labels, sel, NewBlockedSet("08:00", "09:00"))

	require.Len(t, slots, models.SlotsPerDay)
	assert.Equal(t, models.SlotBooked, slots[8].Status)
	assert.Equal(t, models.SlotBooked, slots[9].Status)
	assert.Equal(t, models.SlotSelected, slots[10].Status)
	assert.Equal(t, models.SlotSelected, slots[11].Status)
	assert.Equal(t, models.SlotSelected, slots[12].Status)
	assert.Equal(t, models.SlotAvailable, slots[13].Status)
}

func TestPrice(t *testing.T) {
	ten, twelve := 10, 12
	assert.Equal(t, int64(30000), Price(&ten, &twelve, DefaultHourlyRate))
	thirteen := 13
	assert.Equal(t, int64(45000), Price(&ten, &thirteen, DefaultHourlyRate))
	assert.Equal(t, int64(15000), Price(&ten, nil, DefaultHourlyRate))
	assert.Equal(t, int64(0), Price(nil, nil, DefaultHourlyRate))

	p := FlatHourly{Rate: 20000}
	assert.Equal(t, int64(40000), p.Price(&ten, &twelve))
	assert.Equal(t, int64(20000), p.HourlyRate())
}

func TestCandidate(t *testing.T) {
	c, ok := CandidateFromSelection(models.SelectionRange{Start: slot(23)})
	require.True(t, ok)
	start, end := c.Bounds()
	assert.Equal(t, 23, start)
	assert.Equal(t, 24, end)
	assert.Equal(t, "23:00 - 24:00", c.Interval(labels))

	c, ok = CandidateFromSelection(models.SelectionRange{Start: slot(10), End: slot(12)})
	require.True(t, ok)
	assert.Equal(t, "10:00 - 12:00", c.Interval(labels))

	_, ok = CandidateFromSelection(models.SelectionRange{})
	assert.False(t, ok)
}

func TestValidateCandidate(t *testing.T) {
	fresh := []models.Reservation{reservation("BK-B", "15:00 - 17:00", models.StatusPaid)}
	twelve, sixteen, eighteen := 12, 16, 18

	assert.ErrorIs(t, ValidateCandidate(Candidate{StartIndex: 14, EndIndex: &sixteen}, fresh, labels), ErrCommitConflict)
	assert.NoError(t, ValidateCandidate(Candidate{StartIndex: 10, EndIndex: &twelve}, fresh, labels))
	assert.NoError(t, ValidateCandidate(Candidate{StartIndex: 17, EndIndex: &eighteen}, fresh, labels))
	assert.ErrorIs(t, CheckBlocked(Candidate{StartIndex: 14, EndIndex: &sixteen}, NewBlockedSet("15:00"), labels), ErrCommitConflict)
}
