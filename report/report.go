// Package report derives the tabular view of a voyage timeline for the
// reporting collaborator. Rendering and file formats stay outside the module.
package report

import (
	"time"

	"github.com/Qalifah/voyagelog/timeline"
)

// Row is one line of the tabular voyage report.
type Row struct {
	ID            string    `json:"id"`
	Vessel        string    `json:"vessel"`
	Voyage        string    `json:"voyage"`
	Kind          string    `json:"kind"`
	At            time.Time `json:"at"`
	Stage         string    `json:"stage"`
	DurationHours float64   `json:"duration_hours"`
	DistanceKm    float64   `json:"distance_km"`
}

// Sink consumes tabular voyage reports.
type Sink interface {
	Write(rows []Row) error
}

// Table flattens a timeline into report rows, one per event, in partition
// order.
func Table(t timeline.Timeline) []Row {
	rows := make([]Row, 0, len(t.Events))
	for _, e := range t.Events {
		rows = append(rows, Row{
			ID:            string(e.Event.ID),
			Vessel:        string(t.Vessel),
			Voyage:        string(t.Number),
			Kind:          e.Event.Kind.String(),
			At:            e.At,
			Stage:         e.Stage.String(),
			DurationHours: e.DurationHours,
			DistanceKm:    e.DistanceKm,
		})
	}
	return rows
}
