package timeline

import (
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/Qalifah/voyagelog/voyage"
)

type instrumentingService struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	Service
}

// NewInstrumentingService creates a new instance of an instrumenting service
func NewInstrumentingService(counter metrics.Counter, latency metrics.Histogram, s Service) Service {
	return &instrumentingService{
		requestCount:   counter,
		requestLatency: latency,
		Service:        s,
	}
}

func (s *instrumentingService) BuildTimeline(vessel voyage.VesselID, number voyage.Number) (Timeline, error) {
	defer func(begin time.Time) {
		s.requestCount.With("method", "build_timeline").Add(1)
		s.requestLatency.With("method", "build_timeline").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return s.Service.BuildTimeline(vessel, number)
}

func (s *instrumentingService) VoyageSeries(vessel voyage.VesselID, number voyage.Number) ([]Series, error) {
	defer func(begin time.Time) {
		s.requestCount.With("method", "voyage_series").Add(1)
		s.requestLatency.With("method", "voyage_series").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return s.Service.VoyageSeries(vessel, number)
}
