package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/go-kit/kit/log"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"

	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"

	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Qalifah/voyagelog/inmem"
	"github.com/Qalifah/voyagelog/loader"
	"github.com/Qalifah/voyagelog/timeline"
)

const defaultAddr = ":8080"

func main() {
	// .env is optional, real environment wins
	_ = godotenv.Load()

	var (
		addr        = envString("ADDR", defaultAddr)
		serviceName = envString("SERVICE_NAME", "voyagelog")
		zipkinURL   = envString("ZIPKIN_URL", "")
		eventsCSV   = envString("EVENTS_CSV", "")
		strict      = envBool("STRICT")
	)

	var logger log.Logger
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	var zipkinTracer *stdzipkin.Tracer
	if zipkinURL != "" {
		reporter := zipkinhttp.NewReporter(zipkinURL)
		defer reporter.Close()
		endpoint, err := stdzipkin.NewEndpoint(serviceName, addr)
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		zipkinTracer, err = stdzipkin.NewTracer(reporter, stdzipkin.WithLocalEndpoint(endpoint))
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
	}
	otTracer := stdopentracing.GlobalTracer()

	events := inmem.NewEventRepository()
	if eventsCSV != "" {
		f, err := os.Open(eventsCSV)
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		loaded, allocated, err := loader.ReadEvents(f)
		f.Close()
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		for _, e := range loaded {
			events.Store(e)
		}
		logger.Log("loaded_events", len(loaded), "allocated_excluded", allocated, "source", eventsCSV)
	}

	fieldKeys := []string{"method"}
	requestCount := kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: "api",
		Subsystem: "timeline_service",
		Name:      "request_count",
		Help:      "Number of requests received.",
	}, fieldKeys)
	requestLatency := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace: "api",
		Subsystem: "timeline_service",
		Name:      "request_latency_microseconds",
		Help:      "Total duration of requests in microseconds.",
	}, fieldKeys)
	duration := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace: "api",
		Subsystem: "timeline_service",
		Name:      "request_duration_seconds",
		Help:      "Request duration in seconds.",
	}, fieldKeys)

	var ts timeline.Service
	ts = timeline.NewService(events, strict)
	ts = timeline.NewLoggingService(log.With(logger, "component", "timeline"), ts)
	ts = timeline.NewInstrumentingService(requestCount, requestLatency, ts)

	set := timeline.NewSet(ts, logger, duration, otTracer, zipkinTracer)

	httpLogger := log.With(logger, "component", "http")
	mux := http.NewServeMux()
	mux.Handle("/timeline/v1/", timeline.MakeHandler(set, httpLogger))
	mux.Handle("/metrics", promhttp.Handler())

	errs := make(chan error, 2)
	go func() {
		logger.Log("transport", "http", "address", addr, "msg", "listening")
		errs <- http.ListenAndServe(addr, mux)
	}()
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	logger.Log("terminated", <-errs)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	switch os.Getenv(key) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
