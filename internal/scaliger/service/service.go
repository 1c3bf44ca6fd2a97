package service

import (
	"context"
	"errors"
	"math/big"
	"strconv"

	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	"github.com/msto63/scaliger/foundation/calendar"
	"github.com/msto63/scaliger/pkg/core/cache"
	"github.com/msto63/scaliger/pkg/core/config"
	"github.com/msto63/scaliger/pkg/core/logging"
)

// Request describes a date by decomposed fields
type Request struct {
	Fields   calendar.Fields
	Reform   string // empty for the service default
	WithTime bool
}

// ShiftRequest moves a resolved date by months and days
type ShiftRequest struct {
	Request
	Years  int
	Months int
	Days   *big.Rat
}

// StepRequest describes an inclusive walk between two dates
type StepRequest struct {
	From   Request
	To     Request
	Stride *big.Rat // nil walks one day towards To
}

// Validation is the outcome of checking a request
type Validation struct {
	Valid  bool
	JD     int
	Reason string
}

// Config holds service configuration
type Config struct {
	Reform           calendar.Reform
	Offset           int // seconds east of UTC, applied to date-times without one
	WeekStartsMonday bool
	MaxStepItems     int
	Clock            calendar.Clock
	Cache            *cache.Cache[calendar.Date]
	Logger           *logging.Logger
}

// Service is the calendar service
type Service struct {
	config Config
	logger *logging.Logger
	cache  *cache.Cache[calendar.Date]
}

// NewService creates a new calendar service
func NewService(cfg Config) (*Service, error) {
	if cfg.MaxStepItems <= 0 {
		return nil, mdwerror.New("max step items must be positive").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("service.NewService").
			WithDetail("max_step_items", cfg.MaxStepItems)
	}
	if cfg.Clock == nil {
		cfg.Clock = calendar.SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("calendar")
	}

	return &Service{
		config: cfg,
		logger: logger,
		cache:  cfg.Cache,
	}, nil
}

// FromConfig creates a service from the loaded configuration, with a result
// cache when enabled
func FromConfig(cfg *config.Config, clock calendar.Clock, logger *logging.Logger) (*Service, error) {
	svcCfg := Config{
		Reform:           cfg.Calendar.Reform,
		Offset:           cfg.Calendar.OffsetSeconds(),
		WeekStartsMonday: cfg.Calendar.WeekStartsMonday,
		MaxStepItems:     cfg.Server.MaxStepItems,
		Clock:            clock,
		Logger:           logger,
	}
	if cfg.Cache.Enabled {
		cacheCfg := cache.DefaultConfig()
		cacheCfg.MaxItems = cfg.Cache.MaxItems
		cacheCfg.TTL = cfg.Cache.TTL.Duration
		svcCfg.Cache = cache.New[calendar.Date](cacheCfg)
	}

	svc, err := NewService(svcCfg)
	if err != nil && svcCfg.Cache != nil {
		svcCfg.Cache.Close()
	}
	return svc, err
}

// Close releases the result cache
func (s *Service) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

// CacheStats returns the result cache counters; ok is false without a cache
func (s *Service) CacheStats() (hits, misses int64, size int, ok bool) {
	if s.cache == nil {
		return 0, 0, 0, false
	}
	hits, misses, _ = s.cache.Stats()
	return hits, misses, s.cache.Size(), true
}

// Logger returns the service logger
func (s *Service) Logger() *logging.Logger {
	return s.logger
}

// DefaultReform returns the reform used when a request names none
func (s *Service) DefaultReform() calendar.Reform {
	return s.config.Reform
}

// WeekStartsMonday reports whether month layouts start on Monday
func (s *Service) WeekStartsMonday() bool {
	return s.config.WeekStartsMonday
}

// Today returns the current date of the service clock
func (s *Service) Today(reform string) (calendar.Date, error) {
	sg, err := s.reform(reform)
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.Today(s.config.Clock, sg), nil
}

func (s *Service) reform(name string) (calendar.Reform, error) {
	if name == "" {
		return s.config.Reform, nil
	}
	return calendar.ParseReform(name)
}

// fields returns the request fields with the default offset applied
func (s *Service) fields(req *Request) calendar.Fields {
	fs := req.Fields.Clone()
	if req.WithTime && s.config.Offset != 0 &&
		!fs.Has(calendar.FieldOffset) && !fs.Has(calendar.FieldSeconds) {
		fs.SetInt(calendar.FieldOffset, s.config.Offset)
	}
	return fs
}

// Resolve completes the request fields and returns the date they name
func (s *Service) Resolve(ctx context.Context, req *Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, mdwerror.New("request is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("service.Resolve")
	}

	sg, err := s.reform(req.Reform)
	if err != nil {
		return nil, err
	}
	fs := s.fields(req)

	resolve := func() (calendar.Date, error) {
		return calendar.FromFields(fs, sg, s.config.Clock, req.WithTime)
	}

	var d calendar.Date
	if s.cache != nil {
		// Completion reads today, so the key carries it.
		today := calendar.Today(s.config.Clock, calendar.Gregorian).JD()
		key := cache.Key(sg.String(), fs.String(), strconv.FormatBool(req.WithTime), strconv.Itoa(today))
		d, err = s.cache.GetOrSet(key, resolve)
	} else {
		d, err = resolve()
	}
	if err != nil {
		s.logger.Debug("Resolve failed", "fields", fs.String(), "reform", sg.String(), "error", err)
		return nil, err
	}

	s.logger.Debug("Resolved date", "fields", fs.String(), "jd", d.JD())
	return NewResult(d), nil
}

// Validate reports whether the request names a date. Invalid field
// combinations are not errors.
func (s *Service) Validate(ctx context.Context, req *Request) (*Validation, error) {
	result, err := s.Resolve(ctx, req)
	if err != nil {
		if calendar.IsInvalidDate(err) {
			return &Validation{Valid: false, Reason: reason(err)}, nil
		}
		return nil, err
	}
	return &Validation{Valid: true, JD: result.Date.JD()}, nil
}

func reason(err error) string {
	var e *mdwerror.Error
	if errors.As(err, &e) {
		return e.Message()
	}
	return err.Error()
}

// Shift resolves the request and moves it by whole years and months, then
// by days
func (s *Service) Shift(ctx context.Context, req *ShiftRequest) (*Result, error) {
	if req == nil {
		return nil, mdwerror.New("request is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("service.Shift")
	}

	base, err := s.Resolve(ctx, &req.Request)
	if err != nil {
		return nil, err
	}

	if !within(req.Years, calendar.MaxYear) || !within(req.Months, 12*calendar.MaxYear) {
		return nil, mdwerror.New("shift out of range").
			WithCode(mdwerror.CodeInvalidDate).
			WithOperation("service.Shift")
	}

	d := base.Date
	if months := 12*req.Years + req.Months; months != 0 {
		if d, err = d.PlusMonths(months); err != nil {
			return nil, err
		}
	}
	if req.Days != nil {
		if d, err = d.Plus(req.Days); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("Shifted date", "from", base.Date.String(), "to", d.String())
	return NewResult(d), nil
}

// Diff returns to - from in days
func (s *Service) Diff(ctx context.Context, from, to *Request) (*big.Rat, error) {
	a, err := s.Resolve(ctx, from)
	if err != nil {
		return nil, err
	}
	b, err := s.Resolve(ctx, to)
	if err != nil {
		return nil, err
	}
	return b.Date.Diff(a.Date), nil
}

// Step resolves both limits and yields every date of the walk. A walk
// longer than the configured maximum fails before anything is yielded.
func (s *Service) Step(ctx context.Context, req *StepRequest, yield func(*Result) error) (int, error) {
	if req == nil {
		return 0, mdwerror.New("request is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("service.Step")
	}

	from, err := s.Resolve(ctx, &req.From)
	if err != nil {
		return 0, err
	}
	to, err := s.Resolve(ctx, &req.To)
	if err != nil {
		return 0, err
	}

	stride := req.Stride
	if stride == nil {
		stride = big.NewRat(1, 1)
		if to.Date.Before(from.Date) {
			stride = big.NewRat(-1, 1)
		}
	}

	if n := stepCount(from.Date, to.Date, stride); n > int64(s.config.MaxStepItems) {
		return 0, mdwerror.New("step sequence too long").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("service.Step").
			WithDetail("items", n).
			WithDetail("max_items", s.config.MaxStepItems)
	}

	timer := s.logger.StartTimer("service.Step").
		WithField("from", from.Date.String()).
		WithField("to", to.Date.String()).
		WithField("stride", stride.RatString())
	count := 0
	for d := range from.Date.Step(to.Date, stride) {
		if err := ctx.Err(); err != nil {
			timer.WithField("items", count).StopWithError(err)
			return count, err
		}
		if err := yield(NewResult(d)); err != nil {
			timer.WithField("items", count).StopWithError(err)
			return count, err
		}
		count++
	}

	timer.WithField("items", count).Stop()
	return count, nil
}

// stepCount returns the number of dates Step yields
func stepCount(from, to calendar.Date, stride *big.Rat) int64 {
	if stride.Sign() == 0 {
		return 0
	}
	q := new(big.Rat).Quo(to.Diff(from), stride)
	if q.Sign() < 0 {
		return 0
	}
	n := new(big.Int).Quo(q.Num(), q.Denom())
	if !n.IsInt64() {
		return 1<<63 - 1
	}
	return n.Int64() + 1
}

func within(n, limit int) bool {
	return n >= -limit && n <= limit
}
