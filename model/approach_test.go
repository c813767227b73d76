package model

import (
	"errors"
	"reflect"
	"testing"
)

func linkedApproach() (*NearEarthObject, *CloseApproach) {
	neo := NewNearEarthObject("433", "Eros", "16.84", "N")
	ca := NewCloseApproach("433", "1900-Dec-27 01:30", 0.148, 5.1)
	ca.NEO = neo
	neo.Approaches = append(neo.Approaches, ca)
	return neo, ca
}

func TestNewCloseApproachDefaults(t *testing.T) {
	ca := NewCloseApproach("433", "1900-Dec-27 01:30", 0.148, 5.1)
	if ca.NEO != nil {
		t.Fatalf("NEO must start nil; designation is only a lookup key")
	}
	if ca.Designation() != "433" {
		t.Fatalf("Designation = %q, want 433", ca.Designation())
	}
	if ca.Time == nil {
		t.Fatalf("valid timestamp should parse")
	}
}

func TestDesignationSurvivesLinking(t *testing.T) {
	_, ca := linkedApproach()
	if ca.Designation() != "433" {
		t.Fatalf("Designation after linking = %q, want 433", ca.Designation())
	}
}

func TestTimeStringUnparseable(t *testing.T) {
	ca := NewCloseApproach("433", "garbage", 0, 0)
	if ca.Time != nil {
		t.Fatalf("unparseable timestamp should leave Time nil")
	}
	if got := ca.TimeString(); got != UnknownTime {
		t.Fatalf("TimeString = %q, want sentinel", got)
	}
}

func TestTimeFormatRoundTrip(t *testing.T) {
	parsed, err := ParseApproachTime("1900-Dec-27 01:30")
	if err != nil {
		t.Fatalf("ParseApproachTime: %v", err)
	}
	formatted := FormatApproachTime(parsed)
	if formatted != "1900-Dec-27 01:30" {
		t.Fatalf("FormatApproachTime = %q", formatted)
	}
	reparsed, err := ParseApproachTime(formatted)
	if err != nil {
		t.Fatalf("re-parse of formatted output: %v", err)
	}
	if again := FormatApproachTime(reparsed); again != formatted {
		t.Fatalf("format->parse->format not idempotent: %q vs %q", again, formatted)
	}
}

func TestStringDescription(t *testing.T) {
	_, ca := linkedApproach()
	want := "At 1900-Dec-27 01:30, '433 (Eros)' approached Earth at a distance of 0.15 au and a velocity of 5.10 km/s."
	if got := ca.String(); got != want {
		t.Fatalf("String = %q, want %q", got, want)
	}
}

func TestGoStringUnlinked(t *testing.T) {
	ca := NewCloseApproach("433", "1900-Dec-27 01:30", 0.148, 5.1)
	want := `CloseApproach{time: "1900-Dec-27 01:30", distance: 0.15, velocity: 5.10, neo: <nil>}`
	if got := ca.GoString(); got != want {
		t.Fatalf("GoString = %q, want %q", got, want)
	}
}

func TestSerializeCSV(t *testing.T) {
	_, ca := linkedApproach()
	got, err := ca.Serialize("csv")
	if err != nil {
		t.Fatalf("Serialize(csv): %v", err)
	}
	want := map[string]any{
		"datetime_utc":          "1900-Dec-27 01:30",
		"distance_au":           0.148,
		"velocity_km_s":         5.1,
		"designation":           "433",
		"name":                  "Eros",
		"diameter_km":           16.84,
		"potentially_hazardous": false,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Serialize(csv) = %#v, want %#v", got, want)
	}
}

func TestSerializeJSONMatchesCSVValues(t *testing.T) {
	_, ca := linkedApproach()
	flat, err := ca.Serialize("csv")
	if err != nil {
		t.Fatalf("Serialize(csv): %v", err)
	}
	nested, err := ca.Serialize("json")
	if err != nil {
		t.Fatalf("Serialize(json): %v", err)
	}

	for _, key := range []string{"datetime_utc", "distance_au", "velocity_km_s"} {
		if nested[key] != flat[key] {
			t.Fatalf("key %q differs: %v vs %v", key, nested[key], flat[key])
		}
	}
	neo, ok := nested["neo"].(map[string]any)
	if !ok {
		t.Fatalf("json variant missing nested neo mapping: %#v", nested)
	}
	for _, key := range []string{"designation", "name", "diameter_km", "potentially_hazardous"} {
		if neo[key] != flat[key] {
			t.Fatalf("neo key %q differs: %v vs %v", key, neo[key], flat[key])
		}
	}
}

func TestSerializeUnnamedNEO(t *testing.T) {
	neo := NewNearEarthObject("2015 AB", "", "", "N")
	ca := NewCloseApproach("2015 AB", "2020-Jan-01 12:00", 0.5, 10)
	ca.NEO = neo

	flat, err := ca.Serialize("csv")
	if err != nil {
		t.Fatalf("Serialize(csv): %v", err)
	}
	if flat["name"] != nil {
		t.Fatalf("unnamed NEO should serialize name as nil, got %v", flat["name"])
	}
}

func TestSerializeRejectsOtherFormats(t *testing.T) {
	_, ca := linkedApproach()
	for _, format := range []string{"xml", "CSV", "yaml", ""} {
		out, err := ca.Serialize(format)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("Serialize(%q) err = %v, want ErrInvalidFormat", format, err)
		}
		if out != nil {
			t.Fatalf("Serialize(%q) produced partial output: %#v", format, out)
		}
	}
}
