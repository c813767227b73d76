package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidFormat is returned by Serialize for any format tag other than
// "csv" or "json".
var ErrInvalidFormat = errors.New("Invalid file extension")

// UnknownTime is the sentinel rendered when an approach's timestamp could
// not be parsed.
const UnknownTime = "an unknown date and time"

// CloseApproach represents one close approach to Earth by an NEO: the UTC
// date and time of closest approach, the nominal approach distance in
// astronomical units, and the relative velocity in kilometers per second.
//
// The owning NEO is referenced two ways: the raw designation from the
// dataset row (the pre-link foreign key, available via Designation), and
// the NEO pointer, which stays nil until the catalog's linking pass
// resolves it. Operations that read through NEO (String, Serialize)
// require a linked approach; calling them unlinked is a caller error.
type CloseApproach struct {
	designation string

	Time     *time.Time // nil when the source timestamp was unparseable
	Distance float64
	Velocity float64

	NEO *NearEarthObject
}

// NewCloseApproach builds an approach from raw dataset fields. The
// timestamp is parsed with ApproachTimeLayout; on failure Time is left nil
// rather than failing the row. NEO always starts nil regardless of the
// designation argument.
func NewCloseApproach(designation, timestamp string, distance, velocity float64) *CloseApproach {
	ca := &CloseApproach{
		designation: designation,
		Distance:    distance,
		Velocity:    velocity,
	}
	if t, err := ParseApproachTime(timestamp); err == nil {
		ca.Time = &t
	}
	return ca
}

// Designation returns the raw foreign-key designation from the dataset
// row. It never changes, even after the NEO reference is resolved.
func (ca *CloseApproach) Designation() string {
	return ca.designation
}

// TimeString returns the approach time in the dataset layout, or the
// UnknownTime sentinel when the timestamp was unparseable.
func (ca *CloseApproach) TimeString() string {
	if ca.Time != nil {
		return FormatApproachTime(*ca.Time)
	}
	return UnknownTime
}

// String returns a human-readable description. Precondition: the approach
// has been linked (NEO non-nil).
func (ca *CloseApproach) String() string {
	return fmt.Sprintf("At %s, '%s' approached Earth at a distance of %.2f au and a velocity of %.2f km/s.",
		ca.TimeString(), ca.NEO.Fullname(), ca.Distance, ca.Velocity)
}

// GoString returns a diagnostic representation for %#v and logs. Unlike
// String it tolerates an unlinked approach so it stays safe in debugging
// output.
func (ca *CloseApproach) GoString() string {
	neo := "<nil>"
	if ca.NEO != nil {
		neo = ca.NEO.GoString()
	}
	return fmt.Sprintf("CloseApproach{time: %q, distance: %.2f, velocity: %.2f, neo: %s}",
		ca.TimeString(), ca.Distance, ca.Velocity, neo)
}

// Serialize converts the approach into a plain nested key-value structure
// for output. The format tag selects the shape: "csv" yields a single flat
// mapping, "json" nests the NEO fields under a "neo" key. Both read live
// values from the linked NEO, so the approach must already be linked. Any
// other tag returns ErrInvalidFormat and no structure.
//
// An unnamed NEO serializes its name as nil; an unknown diameter stays NaN
// (writers decide how to render it for their medium).
func (ca *CloseApproach) Serialize(format string) (map[string]any, error) {
	if format != "csv" && format != "json" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	var name any
	if ca.NEO.Name != "" {
		name = ca.NEO.Name
	}

	if format == "csv" {
		return map[string]any{
			"datetime_utc":          ca.TimeString(),
			"distance_au":           ca.Distance,
			"velocity_km_s":         ca.Velocity,
			"designation":           ca.NEO.Designation,
			"name":                  name,
			"diameter_km":           ca.NEO.Diameter,
			"potentially_hazardous": ca.NEO.Hazardous,
		}, nil
	}

	return map[string]any{
		"datetime_utc":  ca.TimeString(),
		"distance_au":   ca.Distance,
		"velocity_km_s": ca.Velocity,
		"neo": map[string]any{
			"designation":           ca.NEO.Designation,
			"name":                  name,
			"diameter_km":           ca.NEO.Diameter,
			"potentially_hazardous": ca.NEO.Hazardous,
		},
	}, nil
}
