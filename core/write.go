package core

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/signalsfoundry/neo-explorer/model"
)

// CSVHeader is the column order for row-oriented output. It matches the
// key order of the flat serialization.
var CSVHeader = []string{
	"datetime_utc",
	"distance_au",
	"velocity_km_s",
	"designation",
	"name",
	"diameter_km",
	"potentially_hazardous",
}

// WriteCSV writes the approaches as CSV: a header row followed by one row
// per approach. An unnamed NEO renders as an empty cell, an unknown
// diameter as "nan". An empty result set still writes the header.
func WriteCSV(w io.Writer, results []*model.CloseApproach) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, ca := range results {
		rec, err := ca.Serialize("csv")
		if err != nil {
			return err
		}
		row := make([]string, 0, len(CSVHeader))
		for _, key := range CSVHeader {
			row = append(row, csvCell(rec[key]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if math.IsNaN(val) {
			return "nan"
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// JSONRecord returns the hierarchical serialization of one approach with
// values encoding/json can represent: an unknown (NaN) diameter becomes
// nil. The HTTP API and WriteJSON share this shape.
func JSONRecord(ca *model.CloseApproach) (map[string]any, error) {
	rec, err := ca.Serialize("json")
	if err != nil {
		return nil, err
	}
	neo := rec["neo"].(map[string]any)
	if d, ok := neo["diameter_km"].(float64); ok && math.IsNaN(d) {
		neo["diameter_km"] = nil
	}
	return rec, nil
}

// WriteJSON writes the approaches as a JSON array of nested documents. An
// empty result set writes "[]".
func WriteJSON(w io.Writer, results []*model.CloseApproach) error {
	docs := make([]map[string]any, 0, len(results))
	for _, ca := range results {
		rec, err := JSONRecord(ca)
		if err != nil {
			return err
		}
		docs = append(docs, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}
