// core/loader.go
package core

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/signalsfoundry/neo-explorer/model"
)

// LoadNEOs reads near-Earth objects from the NASA small-body CSV export.
// Only the designation, name, diameter, and hazardous columns are used;
// everything else in the (wide) export is ignored. Per-row quirks such as
// missing names or unknown diameters are normalized by the entity
// constructor, so loading fails only on structural problems: unreadable
// CSV or a header missing a required column.
func LoadNEOs(r io.Reader) ([]*model.NearEarthObject, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read NEO header: %w", err)
	}
	cols, err := columnIndex(header, "pdes", "name", "diameter", "pha")
	if err != nil {
		return nil, err
	}

	var neos []*model.NearEarthObject
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read NEO row: %w", err)
		}
		neos = append(neos, model.NewNearEarthObject(
			row[cols["pdes"]],
			row[cols["name"]],
			row[cols["diameter"]],
			row[cols["pha"]],
		))
	}
	return neos, nil
}

// closeApproachJSON mirrors the close-approach API document: a fields
// header naming the columns and rows of positional string values.
type closeApproachJSON struct {
	Fields []string   `json:"fields"`
	Data   [][]string `json:"data"`
}

// LoadApproaches reads close approaches from the NASA close-approach JSON
// document. Columns are located by name in the fields header rather than
// by fixed position, so reordered exports still load. Numeric fields that
// fail to parse fall back to the entity default of zero.
func LoadApproaches(r io.Reader) ([]*model.CloseApproach, error) {
	var doc closeApproachJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode close-approach document: %w", err)
	}
	cols, err := columnIndex(doc.Fields, "des", "cd", "dist", "v_rel")
	if err != nil {
		return nil, err
	}

	approaches := make([]*model.CloseApproach, 0, len(doc.Data))
	for i, row := range doc.Data {
		if len(row) != len(doc.Fields) {
			return nil, fmt.Errorf("close-approach row %d has %d values, want %d", i, len(row), len(doc.Fields))
		}
		approaches = append(approaches, model.NewCloseApproach(
			row[cols["des"]],
			row[cols["cd"]],
			parseFloatOrZero(row[cols["dist"]]),
			parseFloatOrZero(row[cols["v_rel"]]),
		))
	}
	return approaches, nil
}

func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("dataset header missing column %q", name)
		}
	}
	return idx, nil
}

func parseFloatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
