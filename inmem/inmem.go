// Package inmem provides in-memory implementations of the voyagelog
// repository interfaces.
package inmem

import (
	"sync"

	"github.com/Qalifah/voyagelog/voyage"
)

type partition struct {
	vessel voyage.VesselID
	number voyage.Number
}

type eventRepository struct {
	mtx    sync.RWMutex
	events map[partition][]voyage.Event
}

// NewEventRepository returns a new instance of an in-memory event repository.
func NewEventRepository() voyage.EventRepository {
	return &eventRepository{
		events: make(map[partition][]voyage.Event),
	}
}

func (r *eventRepository) Store(e voyage.Event) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	key := partition{vessel: e.Vessel, number: e.Number}
	r.events[key] = append(r.events[key], e)
}

// FindEvents returns the stored events of one (vessel, voyage) partition,
// excluding records reassigned to another voyage, per the loader contract.
func (r *eventRepository) FindEvents(vessel voyage.VesselID, number voyage.Number) ([]voyage.Event, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	stored, ok := r.events[partition{vessel: vessel, number: number}]
	if !ok {
		return nil, voyage.ErrUnknown
	}
	events := make([]voyage.Event, 0, len(stored))
	for _, e := range stored {
		if e.Allocated() {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}
