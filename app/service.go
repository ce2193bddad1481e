package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	apialerts "github.com/vigilstack/vigil/api/alerts"
	"github.com/vigilstack/vigil/api/assessments"
	"github.com/vigilstack/vigil/api/servicecenters"
	"github.com/vigilstack/vigil/config"
	"github.com/vigilstack/vigil/core/alert"
	"github.com/vigilstack/vigil/core/location"
	coremetrics "github.com/vigilstack/vigil/core/metrics"
	"github.com/vigilstack/vigil/core/prediction"
	"github.com/vigilstack/vigil/infra/inference"
	"github.com/vigilstack/vigil/infra/logger"
	"github.com/vigilstack/vigil/infra/metrics"
	"github.com/vigilstack/vigil/infra/places"
	"github.com/vigilstack/vigil/infra/twilio"
	"github.com/vigilstack/vigil/internal/eventbus"
)

// Service wires the assessment pipeline, alert gate and HTTP surface.
type Service struct {
	Assessor *prediction.Assessor
	Gate     *alert.Gate
	Ranker   *location.Ranker

	cfg           *config.Config
	log           logger.Logger
	sink          coremetrics.MetricsSink
	assessmentBus *eventbus.TypedBus[coremetrics.AssessmentEvent]
	alertBus      *eventbus.TypedBus[coremetrics.AlertEvent]
}

// New creates a Service from the configuration. Absent collaborators are a
// normal state: the predictor falls back to the heuristic model, delivery and
// lookup report their absence per call.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics.Influx))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	assessmentBus := eventbus.NewTyped[coremetrics.AssessmentEvent]()
	alertBus := eventbus.NewTyped[coremetrics.AlertEvent]()

	var predictor prediction.Predictor = prediction.HeuristicPredictor{}
	if cfg.Predictor.URL != "" {
		predictor = inference.NewClient(cfg.Predictor.URL, time.Duration(cfg.Predictor.TimeoutSeconds)*time.Second)
		logg.Infof("using remote inference at %s", cfg.Predictor.URL)
	} else {
		logg.Warnf("no inference endpoint configured, using heuristic predictor")
	}
	timeout := time.Duration(cfg.Predictor.TimeoutSeconds) * time.Second
	assessor := prediction.NewAssessor(predictor, logger.New("assessor"), timeout, assessmentBus)

	var notifier alert.Notifier
	if cfg.Alerts.Twilio.Configured() {
		client := twilio.NewClient(cfg.Alerts.Twilio)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(pingCtx); err != nil {
			logg.Warnf("twilio credentials check failed: %v", err)
		} else {
			logg.Infof("twilio client initialized")
		}
		cancel()
		notifier = client
	} else {
		logg.Warnf("twilio not configured, SMS alerts disabled")
	}
	cooldown := time.Duration(cfg.Alerts.RateLimitSeconds) * time.Second
	gate := alert.NewGate(notifier, cooldown, logger.New("alert-gate"), alertBus)

	var lookup location.Lookup
	if cfg.Location.GoogleAPIKey != "" {
		lookup = places.NewClient(cfg.Location.GoogleAPIKey)
		logg.Infof("places client initialized")
	} else {
		logg.Warnf("places API key not provided, using mock service centers")
	}
	ranker := location.NewRanker(lookup, logger.New("location"))

	return &Service{
		Assessor:      assessor,
		Gate:          gate,
		Ranker:        ranker,
		cfg:           cfg,
		log:           logg,
		sink:          sink,
		assessmentBus: assessmentBus,
		alertBus:      alertBus,
	}, nil
}

// Run starts the HTTP API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	go s.consumeEvents(ctx)
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    s.cfg.Server.Address,
		Handler: s.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("server shutdown: %v", err)
		}
	}()
	s.log.Infof("listening on %s", s.cfg.Server.Address)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Handler assembles the API routes with the shared middleware.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","message":"vehicle health API is running"}`))
	})
	mux.Handle("/api/predict", assessments.NewHandler(s.Assessor))
	mux.Handle("/api/alerts/send", apialerts.NewHandler(s.Gate))
	mux.Handle("/api/alerts/test", apialerts.NewTestHandler(s.Gate))
	mux.Handle("/api/service-centers", servicecenters.NewHandler(s.Ranker, s.cfg.Location.DefaultRadiusM, s.cfg.Location.MaxResults))
	return s.withCORS(s.withRequestLog(mux))
}

// consumeEvents drains the buses into the metrics sink until ctx is done.
func (s *Service) consumeEvents(ctx context.Context) {
	assessEvents := s.assessmentBus.Subscribe()
	alertEvents := s.alertBus.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-assessEvents:
			if !ok {
				return
			}
			if err := s.sink.RecordAssessment(ev); err != nil {
				s.log.Errorf("record assessment: %v", err)
			}
		case ev, ok := <-alertEvents:
			if !ok {
				return
			}
			if err := s.sink.RecordAlert(ev); err != nil {
				s.log.Errorf("record alert: %v", err)
			}
		}
	}
}

func (s *Service) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debugw("request", map[string]any{
			"request_id": reqID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(start).String(),
		})
	})
}

func (s *Service) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, allowed := range s.cfg.Server.CORSOrigins {
			if origin == allowed || allowed == "*" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				break
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.assessmentBus.Close()
	s.alertBus.Close()
	return nil
}
