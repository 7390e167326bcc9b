// README: Plan service; request -> prompt -> model -> sanitized, validated itinerary.
package itinerary

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"planai/internal/ai"
	"planai/internal/modules/genlog"
)

// ResponseCache stores validated itineraries by prompt key.
type ResponseCache interface {
	Get(ctx context.Context, promptKey string) (TripResponse, bool, error)
	Set(ctx context.Context, promptKey string, resp TripResponse) error
}

// Recorder receives one audit entry per generation attempt.
type Recorder interface {
	Record(ctx context.Context, e genlog.Entry) error
}

// Geocoder resolves a street address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

// Options carries the optional collaborators of Service. Nil members are skipped.
type Options struct {
	Provider string
	// Strict turns on CheckConsistency for every generated itinerary.
	Strict   bool
	Cache    ResponseCache
	Recorder Recorder
	Geocoder Geocoder
	Logger   *zap.Logger
}

// Service plans trips. It keeps no per-request state and is safe for concurrent use.
type Service struct {
	gen      ai.Generator
	provider string
	strict   bool
	cache    ResponseCache
	recorder Recorder
	geocoder Geocoder
	log      *zap.Logger
}

func NewService(gen ai.Generator, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		gen:      gen,
		provider: opts.Provider,
		strict:   opts.Strict,
		cache:    opts.Cache,
		recorder: opts.Recorder,
		geocoder: opts.Geocoder,
		log:      log,
	}
}

// PlanJSON validates a raw request body and plans it. An invalid body returns
// *RequestValidationError without contacting the model.
func (s *Service) PlanJSON(ctx context.Context, body []byte) (TripResponse, error) {
	req, err := ValidateRequest(body)
	if err != nil {
		return TripResponse{}, err
	}
	return s.Plan(ctx, req)
}

// Plan generates an itinerary for an already validated request.
func (s *Service) Plan(ctx context.Context, req TripRequest) (TripResponse, error) {
	req = s.resolveAccommodation(ctx, req)

	prompt := BuildPrompt(req)
	key := PromptKey(prompt)
	log := s.log.With(zap.String("prompt_key", key), zap.String("provider", s.provider))

	if s.cache != nil {
		resp, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn("itinerary cache read failed", zap.Error(err))
		case ok:
			log.Info("itinerary served from cache")
			s.record(ctx, log, genlog.Entry{PromptKey: key, Provider: s.provider, Outcome: genlog.OutcomeCached})
			return resp, nil
		}
	}

	start := time.Now()
	raw, err := s.gen.Generate(ctx, prompt)
	latency := time.Since(start)
	if err != nil {
		s.fail(ctx, log, key, raw, latency, err)
		return TripResponse{}, fmt.Errorf("generate itinerary: %w", err)
	}

	resp, err := ParseResponse(raw)
	if err == nil && s.strict {
		if vs := CheckConsistency(req, resp); len(vs) > 0 {
			err = &ResponseValidationError{Raw: raw, Violations: vs}
		}
	}
	if err != nil {
		s.fail(ctx, log, key, raw, latency, err)
		return TripResponse{}, fmt.Errorf("process model output: %w", err)
	}

	log.Info("itinerary generated", zap.Int("days", len(resp.Plan)), zap.Duration("latency", latency))
	s.record(ctx, log, genlog.Entry{
		PromptKey: key,
		Provider:  s.provider,
		Outcome:   genlog.OutcomeSuccess,
		RawOutput: raw,
		Latency:   latency,
	})
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp); err != nil {
			log.Warn("itinerary cache write failed", zap.Error(err))
		}
	}
	return resp, nil
}

func (s *Service) resolveAccommodation(ctx context.Context, req TripRequest) TripRequest {
	if s.geocoder == nil || !req.Accommodation.CoordinatesDefaulted() {
		return req
	}
	lat, lng, err := s.geocoder.Geocode(ctx, req.Accommodation.AddressName)
	if err != nil {
		s.log.Warn("accommodation geocoding failed, keeping default coordinates",
			zap.String("address", req.Accommodation.AddressName),
			zap.Error(err),
		)
		return req
	}
	return req.WithCoordinates(lat, lng)
}

func (s *Service) fail(ctx context.Context, log *zap.Logger, key, raw string, latency time.Duration, err error) {
	kind := Kind(err)
	if r, ok := RawOutput(err); ok {
		raw = r
	}
	log.Error("itinerary generation failed",
		zap.String("kind", kind),
		zap.Duration("latency", latency),
		zap.String("raw_output", raw),
		zap.Error(err),
	)
	s.record(ctx, log, genlog.Entry{
		PromptKey: key,
		Provider:  s.provider,
		Outcome:   kind,
		RawOutput: raw,
		Detail:    err.Error(),
		Latency:   latency,
	})
}

func (s *Service) record(ctx context.Context, log *zap.Logger, e genlog.Entry) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(context.WithoutCancel(ctx), e); err != nil {
		log.Warn("generation log write failed", zap.Error(err))
	}
}
