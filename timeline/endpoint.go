package timeline

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/Qalifah/voyagelog/voyage"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"

	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"
)

type buildTimelineRequest struct {
	Vessel voyage.VesselID
	Number voyage.Number
}

type buildTimelineResponse struct {
	Timeline *Timeline `json:"timeline,omitempty"`
	Err      error     `json:"error,omitempty"`
}

func (r buildTimelineResponse) error() error { return r.Err }

func makeBuildTimelineEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(buildTimelineRequest)
		t, err := s.BuildTimeline(req.Vessel, req.Number)
		return buildTimelineResponse{Timeline: &t, Err: err}, nil
	}
}

type voyageSeriesRequest struct {
	Vessel voyage.VesselID
	Number voyage.Number
}

type voyageSeriesResponse struct {
	Series []Series `json:"series,omitempty"`
	Err    error    `json:"error,omitempty"`
}

func (r voyageSeriesResponse) error() error { return r.Err }

func makeVoyageSeriesEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(voyageSeriesRequest)
		series, err := s.VoyageSeries(req.Vessel, req.Number)
		return voyageSeriesResponse{Series: series, Err: err}, nil
	}
}

// Set collects all of the endpoints that compose the timeline service.
type Set struct {
	BuildTimelineEndpoint endpoint.Endpoint
	VoyageSeriesEndpoint  endpoint.Endpoint
}

// NewSet returns a Set that wraps the provided server, and wires in all of the
// expected endpoint middlewares via the various parameters.
func NewSet(svc Service, logger log.Logger, duration metrics.Histogram, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer) Set {
	var buildTimelineEndpoint endpoint.Endpoint
	{
		buildTimelineEndpoint = makeBuildTimelineEndpoint(svc)

		buildTimelineEndpoint = ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Limit(1), 100))(buildTimelineEndpoint)
		buildTimelineEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{}))(buildTimelineEndpoint)
		buildTimelineEndpoint = opentracing.TraceServer(otTracer, "BuildTimeline")(buildTimelineEndpoint)
		if zipkinTracer != nil {
			buildTimelineEndpoint = zipkin.TraceEndpoint(zipkinTracer, "BuildTimeline")(buildTimelineEndpoint)
		}
	}

	var voyageSeriesEndpoint endpoint.Endpoint
	{
		voyageSeriesEndpoint = makeVoyageSeriesEndpoint(svc)

		voyageSeriesEndpoint = ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Limit(1), 100))(voyageSeriesEndpoint)
		voyageSeriesEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{}))(voyageSeriesEndpoint)
		voyageSeriesEndpoint = opentracing.TraceServer(otTracer, "VoyageSeries")(voyageSeriesEndpoint)
		if zipkinTracer != nil {
			voyageSeriesEndpoint = zipkin.TraceEndpoint(zipkinTracer, "VoyageSeries")(voyageSeriesEndpoint)
		}
	}

	return Set{
		BuildTimelineEndpoint: buildTimelineEndpoint,
		VoyageSeriesEndpoint:  voyageSeriesEndpoint,
	}
}

// BuildTimeline implements the service interface so Set can be used as a service
func (s Set) BuildTimeline(vessel voyage.VesselID, number voyage.Number) (Timeline, error) {
	resp, err := s.BuildTimelineEndpoint(context.Background(), buildTimelineRequest{Vessel: vessel, Number: number})
	if err != nil {
		return Timeline{}, err
	}
	response := resp.(buildTimelineResponse)
	return *response.Timeline, response.Err
}

// VoyageSeries implements the service interface so Set can be used as a service
func (s Set) VoyageSeries(vessel voyage.VesselID, number voyage.Number) ([]Series, error) {
	resp, err := s.VoyageSeriesEndpoint(context.Background(), voyageSeriesRequest{Vessel: vessel, Number: number})
	if err != nil {
		return nil, err
	}
	response := resp.(voyageSeriesResponse)
	return response.Series, response.Err
}
