// Package loader reads raw voyage event logs into domain events. It owns the
// boundary duties of the external loader collaborator: dropping records
// reassigned to a re-segmented voyage and supplying typed fields to the core.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Qalifah/voyagelog/geo"
	"github.com/Qalifah/voyagelog/voyage"
)

// expected header columns
const (
	colID        = "id"
	colVessel    = "vessel"
	colVoyage    = "voyage"
	colAllocated = "allocated_voyage"
	colEvent     = "event"
	colDateStamp = "dateStamp"
	colTimeStamp = "timeStamp"
	colLat       = "lat"
	colLon       = "lon"
)

var requiredColumns = []string{colVessel, colVoyage, colEvent, colDateStamp, colTimeStamp}

// ReadEvents parses a CSV voyage log. Records carrying an allocated voyage
// are excluded and counted rather than returned. Records without an ID get
// one minted. A malformed numeric cell fails the read with the offending row
// number so no record is dropped silently.
func ReadEvents(r io.Reader) (events []voyage.Event, allocated int, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, 0, fmt.Errorf("missing column %q", name)
		}
	}

	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("row %d: %w", row, err)
		}

		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		if cell(colAllocated) != "" {
			allocated++
			continue
		}

		dayOrdinal, err := strconv.Atoi(cell(colDateStamp))
		if err != nil {
			return nil, 0, fmt.Errorf("row %d: bad dateStamp %q: %w", row, cell(colDateStamp), err)
		}
		dayFraction, err := strconv.ParseFloat(cell(colTimeStamp), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("row %d: bad timeStamp %q: %w", row, cell(colTimeStamp), err)
		}

		position, err := parsePosition(cell(colLat), cell(colLon))
		if err != nil {
			return nil, 0, fmt.Errorf("row %d: %w", row, err)
		}

		id := voyage.ID(cell(colID))
		if id == "" {
			id = voyage.NextEventID()
		}

		events = append(events, voyage.Event{
			ID:          id,
			Kind:        voyage.ParseEventKind(cell(colEvent)),
			DayOrdinal:  dayOrdinal,
			DayFraction: dayFraction,
			Position:    position,
			Vessel:      voyage.VesselID(cell(colVessel)),
			Number:      voyage.Number(cell(colVoyage)),
		})
	}
	return events, allocated, nil
}

// parsePosition returns nil when the record has no fix. A half-filled or
// unparseable pair is malformed input, not a missing fix.
func parsePosition(latCell, lonCell string) (*geo.Position, error) {
	if latCell == "" && lonCell == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(latCell, 64)
	if err != nil {
		return nil, fmt.Errorf("bad lat %q: %w", latCell, err)
	}
	lon, err := strconv.ParseFloat(lonCell, 64)
	if err != nil {
		return nil, fmt.Errorf("bad lon %q: %w", lonCell, err)
	}
	return geo.New(lat, lon)
}
