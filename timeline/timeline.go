package timeline

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Qalifah/voyagelog/geo"
	"github.com/Qalifah/voyagelog/voyage"
)

// ErrEmptyPartition is used when a partition holds no events. Callers should
// treat it as a no-op rather than a failure.
var ErrEmptyPartition = errors.New("empty partition")

// AnnotatedEvent is an event enriched with everything the pipeline derives
// from it: its absolute instant, the stage of the interval ending at it, that
// interval's duration, and the distance traveled since the previous fix.
type AnnotatedEvent struct {
	Event         voyage.Event  `json:"event"`
	At            time.Time     `json:"at"`
	Stage         voyage.Stage  `json:"stage"`
	DurationHours float64       `json:"duration_hours"`
	DistanceKm    float64       `json:"distance_km"`
	// Predecessor references the previous event in the same partition. It is
	// nil for the first event and never crosses a partition boundary.
	Predecessor *AnnotatedEvent `json:"-"`
}

// Totals accumulates per-stage time over a voyage
type Totals struct {
	AtSeaHours  float64 `json:"at_sea_hours"`
	AtPortHours float64 `json:"at_port_hours"`
}

// SkippedEvent records an input event the pipeline rejected, so a failure is
// never dropped without signaling which record failed.
type SkippedEvent struct {
	ID  voyage.ID `json:"id"`
	Err error     `json:"error"`
}

// Timeline is the derived per-voyage view consumed by the reporting and
// plotting collaborators.
type Timeline struct {
	Vessel  voyage.VesselID   `json:"vessel"`
	Number  voyage.Number     `json:"voyage"`
	Events  []*AnnotatedEvent `json:"events,omitempty"`
	Totals  Totals            `json:"totals"`
	Skipped []SkippedEvent    `json:"skipped,omitempty"`
}

// SeriesPoint is one sample of a stage series: event instant against the
// duration of the interval that ended there.
type SeriesPoint struct {
	At            time.Time `json:"at"`
	DurationHours float64   `json:"duration_hours"`
}

// Series is the per-stage grouping the plotting collaborator consumes.
type Series struct {
	Stage  voyage.Stage  `json:"stage"`
	Points []SeriesPoint `json:"points"`
}

// StageSeries groups the timeline by stage, stages ordered by first
// appearance.
func (t Timeline) StageSeries() []Series {
	var series []Series
	index := make(map[voyage.Stage]int)
	for _, e := range t.Events {
		i, ok := index[e.Stage]
		if !ok {
			i = len(series)
			index[e.Stage] = i
			series = append(series, Series{Stage: e.Stage})
		}
		series[i].Points = append(series[i].Points, SeriesPoint{At: e.At, DurationHours: e.DurationHours})
	}
	return series
}

// Build runs the whole derivation for one (vessel, voyage) partition: decode
// each event's instant, order the partition, pair every event with its
// immediate predecessor, classify and measure each pair, and fold the
// running stage totals. Pure; the input events are never mutated.
//
// Events reassigned to another voyage, or belonging to a different partition
// than the one requested, never enter the pipeline. A record with an invalid
// timestamp is reported in Skipped and the build continues, unless strict is
// set, in which case it fails the build.
func Build(vessel voyage.VesselID, number voyage.Number, events []voyage.Event, strict bool) (Timeline, error) {
	t := Timeline{Vessel: vessel, Number: number}
	if len(events) == 0 {
		return t, ErrEmptyPartition
	}

	type timed struct {
		event voyage.Event
		at    time.Time
	}
	items := make([]timed, 0, len(events))
	for _, e := range events {
		if e.Allocated() || e.Vessel != vessel || e.Number != number {
			continue
		}
		at, err := voyage.EventTime(e.DayOrdinal, e.DayFraction)
		if err != nil {
			if strict {
				return Timeline{}, fmt.Errorf("event %s: %w", e.ID, err)
			}
			t.Skipped = append(t.Skipped, SkippedEvent{ID: e.ID, Err: err})
			continue
		}
		items = append(items, timed{event: e, at: at})
	}

	// Total order within the partition, ties broken by ID so the ordering is
	// deterministic. Instants are monotone in (ordinal, fraction), so the
	// output instants are non-decreasing.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].event, items[j].event
		if a.DayOrdinal != b.DayOrdinal {
			return a.DayOrdinal < b.DayOrdinal
		}
		if a.DayFraction != b.DayFraction {
			return a.DayFraction < b.DayFraction
		}
		return a.ID < b.ID
	})

	var prev *AnnotatedEvent
	for _, it := range items {
		annotated := &AnnotatedEvent{
			Event:       it.event,
			At:          it.at,
			Stage:       voyage.StageUnknown,
			Predecessor: prev,
		}
		if prev != nil {
			annotated.Stage = voyage.DeriveStage(it.event.Kind, prev.Event.Kind)
			annotated.DurationHours = it.at.Sub(prev.At).Seconds() / 3600
			annotated.DistanceKm = geo.Distance(prev.Event.Position, it.event.Position)
		}
		switch annotated.Stage {
		case voyage.AtSea:
			t.Totals.AtSeaHours += annotated.DurationHours
		case voyage.AtPort:
			t.Totals.AtPortHours += annotated.DurationHours
		}
		t.Events = append(t.Events, annotated)
		prev = annotated
	}
	return t, nil
}
