package server

import (
	"context"
	"time"

	"github.com/msto63/scaliger/internal/scaliger/service"
	"google.golang.org/protobuf/types/known/structpb"
)

const healthTimeout = 5 * time.Second

// Resolve implements CalendarServer.Resolve
func (s *Server) Resolve(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := DecodeRequest("Resolve", in)
	if err != nil {
		return nil, err
	}

	result, err := s.service.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	return encode(result.Map())
}

// Validate implements CalendarServer.Validate
func (s *Server) Validate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := DecodeRequest("Validate", in)
	if err != nil {
		return nil, err
	}

	v, err := s.service.Validate(ctx, req)
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{"valid": v.Valid}
	if v.Valid {
		out["jd"] = float64(v.JD)
	} else {
		out["reason"] = v.Reason
	}
	return encode(out)
}

// Shift implements CalendarServer.Shift
func (s *Server) Shift(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := DecodeShift(in)
	if err != nil {
		return nil, err
	}

	result, err := s.service.Shift(ctx, req)
	if err != nil {
		return nil, err
	}
	return encode(result.Map())
}

// Diff implements CalendarServer.Diff
func (s *Server) Diff(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	from, to, err := DecodeDiff(in)
	if err != nil {
		return nil, err
	}

	days, err := s.service.Diff(ctx, from, to)
	if err != nil {
		return nil, err
	}

	approx, _ := days.Float64()
	return encode(map[string]interface{}{
		"days":        days.RatString(),
		"days_approx": approx,
	})
}

// Health implements CalendarServer.Health
func (s *Server) Health(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	report := s.health.Check(ctx)
	if !report.Healthy() {
		s.logger.Warn("Health check failed", "status", string(report.Status))
	}
	return encode(report.Map())
}

// Step implements CalendarServer.Step
func (s *Server) Step(in *structpb.Struct, stream CalendarStepServer) error {
	req, err := DecodeStep(in)
	if err != nil {
		return err
	}

	_, err = s.service.Step(stream.Context(), req, func(r *service.Result) error {
		msg, err := encode(r.Map())
		if err != nil {
			return err
		}
		return stream.Send(msg)
	})
	return err
}
