package model

import (
	"fmt"
	"math"
	"strconv"
)

// NearEarthObject represents a near-Earth object: its primary designation
// (required, unique), optional IAU name, diameter in kilometers (NaN when
// unknown), and whether it is flagged as potentially hazardous.
//
// Approaches starts empty and is populated by the catalog's linking pass,
// never by the object itself.
type NearEarthObject struct {
	Designation string
	Name        string // empty when the object has no IAU name
	Diameter    float64
	Hazardous   bool

	Approaches []*CloseApproach
}

// NewNearEarthObject builds an object from raw dataset fields, normalizing
// the quirks of the source data: an empty name stays absent, an empty
// diameter becomes NaN (unknown), and the hazardous flag is true only for
// the literal "Y".
//
// An unparseable non-empty diameter is treated the same as an empty one.
func NewNearEarthObject(designation, name, diameter, hazardous string) *NearEarthObject {
	d := math.NaN()
	if diameter != "" {
		if parsed, err := strconv.ParseFloat(diameter, 64); err == nil {
			d = parsed
		}
	}

	return &NearEarthObject{
		Designation: designation,
		Name:        name,
		Diameter:    d,
		Hazardous:   hazardous == "Y",
	}
}

// Fullname returns "designation (name)", or just the designation for
// unnamed objects.
func (n *NearEarthObject) Fullname() string {
	if n.Name != "" {
		return fmt.Sprintf("%s (%s)", n.Designation, n.Name)
	}
	return n.Designation
}

// String returns a human-readable description. The diameter clause is
// omitted when the diameter is unknown.
func (n *NearEarthObject) String() string {
	hazard := "is not"
	if n.Hazardous {
		hazard = "is"
	}
	if !math.IsNaN(n.Diameter) {
		return fmt.Sprintf("NEO %s has a diameter of %.3f km and %s potentially hazardous.",
			n.Fullname(), n.Diameter, hazard)
	}
	return fmt.Sprintf("NEO %s, %s potentially hazardous.", n.Fullname(), hazard)
}

// GoString returns a diagnostic representation for %#v and logs. Not a
// serialization format.
func (n *NearEarthObject) GoString() string {
	return fmt.Sprintf("NearEarthObject{designation: %q, name: %q, diameter: %.3f, hazardous: %t}",
		n.Designation, n.Name, n.Diameter, n.Hazardous)
}
