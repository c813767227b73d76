package core

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/signalsfoundry/neo-explorer/model"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	ca := approachFor(t, "16.84", "N", "1900-Dec-27 01:30", 0.148, 5.1)
	if err := WriteCSV(&buf, []*model.CloseApproach{ca}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-read CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(CSVHeader, ",") {
		t.Fatalf("header = %v", rows[0])
	}
	want := []string{"1900-Dec-27 01:30", "0.148", "5.1", "433", "Eros", "16.84", "false"}
	if strings.Join(rows[1], "|") != strings.Join(want, "|") {
		t.Fatalf("row = %v, want %v", rows[1], want)
	}
}

func TestWriteCSVUnknownFields(t *testing.T) {
	var buf bytes.Buffer
	neo := model.NewNearEarthObject("2015 AB", "", "", "N")
	ca := model.NewCloseApproach("2015 AB", "garbage", 0, 0)
	ca.NEO = neo
	if err := WriteCSV(&buf, []*model.CloseApproach{ca}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-read CSV: %v", err)
	}
	row := rows[1]
	if row[0] != model.UnknownTime {
		t.Fatalf("datetime cell = %q", row[0])
	}
	if row[4] != "" {
		t.Fatalf("unnamed NEO name cell = %q, want empty", row[4])
	}
	if row[5] != "nan" {
		t.Fatalf("unknown diameter cell = %q, want nan", row[5])
	}
}

func TestWriteCSVEmptyResults(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("empty result set should write only the header, got %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	ca := approachFor(t, "16.84", "N", "1900-Dec-27 01:30", 0.148, 5.1)
	if err := WriteJSON(&buf, []*model.CloseApproach{ca}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var docs []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatalf("re-read JSON: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	doc := docs[0]
	if doc["datetime_utc"] != "1900-Dec-27 01:30" || doc["distance_au"] != 0.148 || doc["velocity_km_s"] != 5.1 {
		t.Fatalf("scalar fields wrong: %#v", doc)
	}
	neo, ok := doc["neo"].(map[string]any)
	if !ok {
		t.Fatalf("missing nested neo document: %#v", doc)
	}
	if neo["designation"] != "433" || neo["name"] != "Eros" || neo["diameter_km"] != 16.84 || neo["potentially_hazardous"] != false {
		t.Fatalf("neo document wrong: %#v", neo)
	}
}

func TestWriteJSONUnknownDiameterBecomesNull(t *testing.T) {
	var buf bytes.Buffer
	neo := model.NewNearEarthObject("2015 AB", "", "", "N")
	ca := model.NewCloseApproach("2015 AB", "2020-Jan-01 12:00", 0.5, 10)
	ca.NEO = neo
	if err := WriteJSON(&buf, []*model.CloseApproach{ca}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var docs []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatalf("re-read JSON: %v", err)
	}
	nested := docs[0]["neo"].(map[string]any)
	if nested["diameter_km"] != nil {
		t.Fatalf("unknown diameter should be null, got %v", nested["diameter_km"])
	}
	if nested["name"] != nil {
		t.Fatalf("unnamed NEO should be null, got %v", nested["name"])
	}
}

func TestWriteJSONEmptyResults(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Fatalf("empty result set = %q, want []", got)
	}
}
