package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/lab-scheduler/internal/models"
)

// Overlaps reports whether a and b book the same resource on the same day
// with intersecting [horaInicio, horaTermino) ranges. The resource is the
// (tipo, nome) pair, compared case-insensitively. Records whose times do not
// parse as HH:MM never overlap anything.
func Overlaps(a, b models.Appointment) bool {
	if resourceKey(a) != resourceKey(b) {
		return false
	}
	if strings.TrimSpace(a.Data) != strings.TrimSpace(b.Data) {
		return false
	}

	aStart, aEnd, ok := timeRange(a)
	if !ok {
		return false
	}
	bStart, bEnd, ok := timeRange(b)
	if !ok {
		return false
	}

	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// NoOverlap is the Guard used when conflict checking is enabled.
func NoOverlap(candidate models.Appointment, existing []models.Appointment) error {
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if Overlaps(candidate, other) {
			return ErrConflict()
		}
	}
	return nil
}

func resourceKey(ap models.Appointment) string {
	return strings.ToLower(strings.TrimSpace(ap.Tipo)) + "|" +
		strings.ToLower(strings.TrimSpace(ap.Nome))
}

func timeRange(ap models.Appointment) (time.Time, time.Time, bool) {
	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", strings.TrimSpace(hm))
		return t, err == nil
	}

	start, ok := parseHM(ap.HoraInicio)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := parseHM(ap.HoraTermino)
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}
