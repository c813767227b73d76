package core

import (
	"time"

	"github.com/signalsfoundry/neo-explorer/model"
)

// Criteria narrows a close-approach query. Nil fields are unset and match
// everything; set fields are combined as a conjunction. Date bounds
// compare calendar dates (the time of day is ignored), distance and
// velocity bounds are inclusive, and diameter/hazardous bounds read
// through the approach's linked NEO.
type Criteria struct {
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time

	MinDistance *float64
	MaxDistance *float64
	MinVelocity *float64
	MaxVelocity *float64
	MinDiameter *float64
	MaxDiameter *float64

	Hazardous *bool
}

// Matches reports whether the approach satisfies every set bound. An
// approach with no parseable time never matches a date bound, and an NEO
// with unknown (NaN) diameter never matches a diameter bound; both fall
// out of the comparisons rather than being special-cased.
func (c Criteria) Matches(ca *model.CloseApproach) bool {
	if c.Date != nil || c.StartDate != nil || c.EndDate != nil {
		if ca.Time == nil {
			return false
		}
		if c.Date != nil && !sameDate(*ca.Time, *c.Date) {
			return false
		}
		if c.StartDate != nil && dateOf(*ca.Time).Before(dateOf(*c.StartDate)) {
			return false
		}
		if c.EndDate != nil && dateOf(*ca.Time).After(dateOf(*c.EndDate)) {
			return false
		}
	}

	if c.MinDistance != nil && !(ca.Distance >= *c.MinDistance) {
		return false
	}
	if c.MaxDistance != nil && !(ca.Distance <= *c.MaxDistance) {
		return false
	}
	if c.MinVelocity != nil && !(ca.Velocity >= *c.MinVelocity) {
		return false
	}
	if c.MaxVelocity != nil && !(ca.Velocity <= *c.MaxVelocity) {
		return false
	}
	if c.MinDiameter != nil && !(ca.NEO.Diameter >= *c.MinDiameter) {
		return false
	}
	if c.MaxDiameter != nil && !(ca.NEO.Diameter <= *c.MaxDiameter) {
		return false
	}
	if c.Hazardous != nil && ca.NEO.Hazardous != *c.Hazardous {
		return false
	}
	return true
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
