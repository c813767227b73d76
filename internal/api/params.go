package api

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/signalsfoundry/neo-explorer/core"
)

const dateLayout = "2006-01-02"

// criteriaFromQuery maps URL query parameters onto query criteria. Absent
// parameters leave their bound unset. The default limit of 10 mirrors the
// CLI; limit=0 asks for everything.
func criteriaFromQuery(values url.Values) (core.Criteria, int, error) {
	var crit core.Criteria
	var err error

	if crit.Date, err = dateParam(values, "date"); err != nil {
		return crit, 0, err
	}
	if crit.StartDate, err = dateParam(values, "start-date"); err != nil {
		return crit, 0, err
	}
	if crit.EndDate, err = dateParam(values, "end-date"); err != nil {
		return crit, 0, err
	}

	floats := []struct {
		key  string
		dest **float64
	}{
		{"min-distance", &crit.MinDistance},
		{"max-distance", &crit.MaxDistance},
		{"min-velocity", &crit.MinVelocity},
		{"max-velocity", &crit.MaxVelocity},
		{"min-diameter", &crit.MinDiameter},
		{"max-diameter", &crit.MaxDiameter},
	}
	for _, p := range floats {
		if *p.dest, err = floatParam(values, p.key); err != nil {
			return crit, 0, err
		}
	}

	if raw := values.Get("hazardous"); raw != "" {
		hazardous, err := strconv.ParseBool(raw)
		if err != nil {
			return crit, 0, fmt.Errorf("invalid hazardous parameter %q", raw)
		}
		crit.Hazardous = &hazardous
	}

	limit := 10
	if raw := values.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return crit, 0, fmt.Errorf("invalid limit parameter %q", raw)
		}
	}
	return crit, limit, nil
}

func dateParam(values url.Values, key string) (*time.Time, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter %q (want YYYY-MM-DD)", key, raw)
	}
	return &t, nil
}

func floatParam(values url.Values, key string) (*float64, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter %q", key, raw)
	}
	return &f, nil
}
