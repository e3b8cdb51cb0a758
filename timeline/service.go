package timeline

import (
	"errors"

	"github.com/Qalifah/voyagelog/voyage"
)

// ErrInvalidArgument is returned when one or more arguments are invalid.
var ErrInvalidArgument = errors.New("invalid argument")

// Service is the interface that provides voyage timeline methods.
type Service interface {
	// BuildTimeline derives the annotated event sequence and stage totals
	// for one (vessel, voyage) partition.
	BuildTimeline(vessel voyage.VesselID, number voyage.Number) (Timeline, error)

	// VoyageSeries derives the per-stage duration series the plotting
	// collaborator consumes.
	VoyageSeries(vessel voyage.VesselID, number voyage.Number) ([]Series, error)
}

type service struct {
	events voyage.EventRepository
	strict bool
}

// NewService creates a timeline service backed by the given event store. In
// strict mode a record with an invalid timestamp fails the whole build
// instead of being skipped.
func NewService(events voyage.EventRepository, strict bool) Service {
	return &service{events: events, strict: strict}
}

func (s *service) BuildTimeline(vessel voyage.VesselID, number voyage.Number) (Timeline, error) {
	if vessel == "" || number == "" {
		return Timeline{}, ErrInvalidArgument
	}
	events, err := s.events.FindEvents(vessel, number)
	if err != nil {
		return Timeline{}, err
	}
	t, err := Build(vessel, number, events, s.strict)
	if errors.Is(err, ErrEmptyPartition) {
		// A partition with no events is a no-op, not a failure.
		return t, nil
	}
	return t, err
}

func (s *service) VoyageSeries(vessel voyage.VesselID, number voyage.Number) ([]Series, error) {
	t, err := s.BuildTimeline(vessel, number)
	if err != nil {
		return nil, err
	}
	return t.StageSeries(), nil
}
