package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/transport"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/Qalifah/voyagelog/voyage"
)

// MakeHandler returns a new handler for the timeline service
func MakeHandler(s Service, logger kitlog.Logger) http.Handler {
	r := mux.NewRouter()

	opts := []kithttp.ServerOption{
		kithttp.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
		kithttp.ServerErrorEncoder(encodeError),
	}

	buildTimelineHandler := kithttp.NewServer(
		makeBuildTimelineEndpoint(s),
		decodePartitionRequest(func(vessel voyage.VesselID, number voyage.Number) interface{} {
			return buildTimelineRequest{Vessel: vessel, Number: number}
		}),
		encodeResponse,
		opts...,
	)

	voyageSeriesHandler := kithttp.NewServer(
		makeVoyageSeriesEndpoint(s),
		decodePartitionRequest(func(vessel voyage.VesselID, number voyage.Number) interface{} {
			return voyageSeriesRequest{Vessel: vessel, Number: number}
		}),
		encodeResponse,
		opts...,
	)

	r.Handle("/timeline/v1/vessels/{vessel}/voyages/{number}", buildTimelineHandler).Methods("GET")
	r.Handle("/timeline/v1/vessels/{vessel}/voyages/{number}/series", voyageSeriesHandler).Methods("GET")

	return r
}

func decodePartitionRequest(build func(voyage.VesselID, voyage.Number) interface{}) kithttp.DecodeRequestFunc {
	return func(_ context.Context, r *http.Request) (interface{}, error) {
		vars := mux.Vars(r)
		vessel, ok := vars["vessel"]
		if !ok || vessel == "" {
			return nil, ErrInvalidArgument
		}
		number, ok := vars["number"]
		if !ok || number == "" {
			return nil, ErrInvalidArgument
		}
		return build(voyage.VesselID(vessel), voyage.Number(number)), nil
	}
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if e, ok := response.(errorer); ok && e.error() != nil {
		encodeError(ctx, e.error(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

type errorer interface {
	error() error
}

// encode errors from business-logic
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	switch {
	case errors.Is(err, voyage.ErrUnknown):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, voyage.ErrInvalidTimestamp):
		w.WriteHeader(http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
