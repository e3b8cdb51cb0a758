package timeline

import (
	"time"

	"github.com/go-kit/kit/log"

	"github.com/Qalifah/voyagelog/voyage"
)

type loggingService struct {
	logger log.Logger
	Service
}

// NewLoggingService creates a new instance of the logging service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{logger, s}
}

func (s *loggingService) BuildTimeline(vessel voyage.VesselID, number voyage.Number) (t Timeline, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "build_timeline",
			"vessel", vessel,
			"voyage", number,
			"events", len(t.Events),
			"skipped", len(t.Skipped),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.BuildTimeline(vessel, number)
}

func (s *loggingService) VoyageSeries(vessel voyage.VesselID, number voyage.Number) (series []Series, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "voyage_series",
			"vessel", vessel,
			"voyage", number,
			"series", len(series),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.VoyageSeries(vessel, number)
}
