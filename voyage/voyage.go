package voyage

import (
	"errors"
	"strings"

	"github.com/Qalifah/voyagelog/geo"
	"github.com/pborman/uuid"
)

// Number uniquely identifies a voyage
type Number string

// VesselID uniquely identifies a vessel
type VesselID string

// ID uniquely identifies an event within the source log
type ID string

// EventKind describes the kind of a logged voyage event
type EventKind int

// valid event kinds
const (
	UnknownEvent EventKind = iota
	SOSP
	EOSP
	NoonReport
	Anchorage
)

func (k EventKind) String() string {
	switch k {
	case SOSP:
		return "SOSP"
	case EOSP:
		return "EOSP"
	case NoonReport:
		return "Noon Report"
	case Anchorage:
		return "Anchorage"
	}
	return "Unknown"
}

// MarshalText lets event kinds render as their log labels in JSON output.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseEventKind maps a raw log label to an event kind. Labels outside the
// vocabulary are never rejected, they come back as UnknownEvent and classify
// as Unknown on either side of a pair.
func ParseEventKind(s string) EventKind {
	kinds := map[string]EventKind{
		SOSP.String():       SOSP,
		EOSP.String():       EOSP,
		NoonReport.String(): NoonReport,
		Anchorage.String():  Anchorage,
	}
	return kinds[s]
}

// Event is one observed record of the vessel position/event log. Events are
// immutable inputs; everything derived from them lives on the timeline side.
type Event struct {
	ID          ID
	Kind        EventKind
	DayOrdinal  int
	DayFraction float64
	Position    *geo.Position
	Vessel      VesselID
	Number      Number
	// AllocatedTo marks a record reassigned to a re-segmented voyage.
	// Records carrying it are excluded from the pipeline entirely.
	AllocatedTo *Number
}

// Allocated reports whether the event has been reassigned to another voyage.
func (e Event) Allocated() bool {
	return e.AllocatedTo != nil
}

// ErrUnknown is used when a voyage can't be found
var ErrUnknown = errors.New("unknown voyage")

// NextEventID generates a new event ID for records the source log left
// unidentified.
func NextEventID() ID {
	return ID(strings.Split(strings.ToUpper(uuid.New()), "-")[0])
}

// EventRepository provides access to the voyage event store
type EventRepository interface {
	Store(e Event)
	FindEvents(vessel VesselID, number Number) ([]Event, error)
}
