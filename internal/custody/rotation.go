// Package custody computes the deterministic shared-custody rotation.
// The schedule alternates in 2-day blocks starting from a fixed epoch:
// days 0-1 of each 4-day cycle belong to DAD, days 2-3 to MOM.
// Per-day overrides are resolved by the custody service, not here.
package custody

import (
	"time"

	"github.com/Rodeztrading/Dashboard/internal/models"
)

// Epoch is the first day of a DAD block. All rotation math is relative
// to this date.
var Epoch = time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)

const cycleLength = 4

// DayKey formats a time as the YYYY-MM-DD key used for grouping and
// override lookups, in the given location.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// Responsible returns the computed responsible party for the civil date
// of t in loc. Dates before the epoch are handled by keeping the cycle
// position non-negative.
func Responsible(t time.Time, loc *time.Location) models.CustodyParty {
	local := t.In(loc)
	// Compare civil dates only; re-anchoring both to UTC midnight keeps
	// the day arithmetic DST-proof.
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	days := int(day.Sub(Epoch).Hours() / 24)

	pos := ((days % cycleLength) + cycleLength) % cycleLength
	if pos < 2 {
		return models.CustodyDad
	}
	return models.CustodyMom
}

// ResponsibleForKey is Responsible for an already-formatted YYYY-MM-DD
// key. The error from parsing a malformed key is propagated.
func ResponsibleForKey(key string) (models.CustodyParty, error) {
	t, err := time.ParseInLocation("2006-01-02", key, time.UTC)
	if err != nil {
		return "", err
	}
	return Responsible(t, time.UTC), nil
}

// Flip returns the other party.
func Flip(p models.CustodyParty) models.CustodyParty {
	if p == models.CustodyMom {
		return models.CustodyDad
	}
	return models.CustodyMom
}
