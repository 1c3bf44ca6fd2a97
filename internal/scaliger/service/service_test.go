package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"math/big"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	"github.com/msto63/scaliger/foundation/calendar"
	"github.com/msto63/scaliger/pkg/core/cache"
	"github.com/msto63/scaliger/pkg/core/config"
	"github.com/msto63/scaliger/pkg/core/logging"
)

var testClock = calendar.FixedClock(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))

func newTestService(t *testing.T, mutate ...func(*Config)) *Service {
	t.Helper()
	cfg := Config{
		Reform:       calendar.Italy,
		MaxStepItems: 100,
		Clock:        testClock,
		Logger:       quietLogger(),
	}
	for _, fn := range mutate {
		fn(&cfg)
	}
	svc, err := NewService(cfg)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(svc.Close)
	return svc
}

func civil(y, m, d int) Request {
	fs := calendar.Fields{}
	fs.SetInt(calendar.FieldYear, y)
	fs.SetInt(calendar.FieldMon, m)
	fs.SetInt(calendar.FieldMDay, d)
	return Request{Fields: fs}
}

func TestNewService(t *testing.T) {
	if _, err := NewService(Config{}); !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("NewService(Config{}) error = %v, want %s", err, mdwerror.CodeInvalidConfig)
	}

	svc := newTestService(t)
	if !svc.DefaultReform().Equal(calendar.Italy) {
		t.Errorf("DefaultReform() = %v, want italy", svc.DefaultReform())
	}
	today, err := svc.Today("")
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}
	if today.JD() != 2461330 {
		t.Errorf("Today().JD() = %d, want 2461330", today.JD())
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Calendar.Offset = "+02:00"
	cfg.Calendar.WeekStartsMonday = true

	svc, err := FromConfig(cfg, testClock, nil)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	defer svc.Close()

	if svc.cache == nil {
		t.Error("cache should be enabled by default")
	}
	if svc.config.Offset != 7200 {
		t.Errorf("Offset = %d, want 7200", svc.config.Offset)
	}
	if !svc.WeekStartsMonday() {
		t.Error("WeekStartsMonday() = false, want true")
	}

	cfg.Cache.Enabled = false
	svc2, err := FromConfig(cfg, testClock, nil)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	if svc2.cache != nil {
		t.Error("cache should be disabled")
	}
}

func TestResolve(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		req    Request
		reform string
		wantJD int
		want   string
	}{
		{"leap day", civil(2000, 2, 29), "", 2451604, "2000-02-29"},
		{"julian leap day", civil(1900, 2, 29), "julian", 2415092, "1900-02-29"},
		{"last day of month", civil(2000, 12, -1), "", 2451910, "2000-12-31"},
		{"italian reform", civil(1582, 10, 15), "italy", 2299161, "1582-10-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Reform = tt.reform
			got, err := svc.Resolve(ctx, &req)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.Date.JD() != tt.wantJD {
				t.Errorf("Resolve(%v).JD() = %d, want %d", req.Fields, got.Date.JD(), tt.wantJD)
			}
			if got.Date.String() != tt.want {
				t.Errorf("Resolve(%v) = %s, want %s", req.Fields, got.Date, tt.want)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := civil(1900, 2, 29)
	if _, err := svc.Resolve(ctx, &req); !calendar.IsInvalidDate(err) {
		t.Errorf("Resolve(1900-02-29) error = %v, want invalid date", err)
	}

	req = civil(2000, 1, 1)
	req.Reform = "mars"
	if _, err := svc.Resolve(ctx, &req); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Resolve(reform=mars) error = %v, want %s", err, mdwerror.CodeInvalidInput)
	}

	if _, err := svc.Resolve(ctx, nil); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Resolve(nil) error = %v, want %s", err, mdwerror.CodeInvalidInput)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	req = civil(2000, 1, 1)
	if _, err := svc.Resolve(canceled, &req); !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve(canceled) error = %v, want context.Canceled", err)
	}
}

func TestResolveCompletesFromToday(t *testing.T) {
	svc := newTestService(t)

	fs := calendar.Fields{}
	fs.SetInt(calendar.FieldMDay, 3)
	got, err := svc.Resolve(context.Background(), &Request{Fields: fs})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Date.String() != "2026-10-03" {
		t.Errorf("Resolve(mday=3) = %s, want 2026-10-03", got.Date)
	}
}

func TestResolveDefaultOffset(t *testing.T) {
	svc := newTestService(t, func(c *Config) { c.Offset = 3600 })

	req := civil(2000, 1, 1)
	req.Fields.SetInt(calendar.FieldHour, 12)
	req.WithTime = true
	got, err := svc.Resolve(context.Background(), &req)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Date.String() != "2000-01-01T12:00:00+01:00" {
		t.Errorf("Resolve() = %s, want 2000-01-01T12:00:00+01:00", got.Date)
	}

	// An explicit offset wins.
	req.Fields.SetInt(calendar.FieldOffset, 0)
	got, err = svc.Resolve(context.Background(), &req)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Date.Zone() != "+00:00" {
		t.Errorf("Zone() = %s, want +00:00", got.Date.Zone())
	}
}

func TestResolveUsesCache(t *testing.T) {
	c := cache.New[calendar.Date](cache.DefaultConfig())
	svc := newTestService(t, func(cfg *Config) { cfg.Cache = c })
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		req := civil(2000, 2, 29)
		if _, err := svc.Resolve(ctx, &req); err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
	}
	hits, misses, _ := c.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("cache hits/misses = %d/%d, want 2/1", hits, misses)
	}

	// Invalid dates are not cached.
	for i := 0; i < 2; i++ {
		req := civil(1900, 2, 29)
		if _, err := svc.Resolve(ctx, &req); err == nil {
			t.Fatal("Resolve(1900-02-29) should fail")
		}
	}
	if c.Size() != 1 {
		t.Errorf("cache size = %d, want 1", c.Size())
	}
}

func TestValidate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		req    Request
		valid  bool
		wantJD int
	}{
		{"valid", civil(2000, 2, 29), true, 2451604},
		{"not a leap year", civil(1900, 2, 29), false, 0},
		{"reform gap", civil(1582, 10, 10), false, 0},
		{"no month 13", civil(2000, 13, 1), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Validate(ctx, &tt.req)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if got.Valid != tt.valid || got.JD != tt.wantJD {
				t.Errorf("Validate(%v) = %v/%d, want %v/%d", tt.req.Fields, got.Valid, got.JD, tt.valid, tt.wantJD)
			}
			if !got.Valid && got.Reason == "" {
				t.Error("invalid result should carry a reason")
			}
		})
	}

	req := civil(2000, 1, 1)
	req.Reform = "nowhere"
	if _, err := svc.Validate(ctx, &req); err == nil {
		t.Error("Validate() with a bad reform should fail")
	}
}

func TestShift(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		from   Request
		years  int
		months int
		days   *big.Rat
		want   string
	}{
		{"month clamps", civil(2001, 1, 31), 0, 1, nil, "2001-02-28"},
		{"leap month", civil(2000, 1, 31), 0, 1, nil, "2000-02-29"},
		{"days", civil(2000, 1, 1), 0, 0, big.NewRat(60, 1), "2000-03-01"},
		{"back", civil(2000, 3, 1), 0, 0, big.NewRat(-1, 1), "2000-02-29"},
		{"year from leap day", civil(2000, 2, 29), 1, 0, nil, "2001-02-28"},
		{"months then days", civil(2000, 1, 31), 0, 1, big.NewRat(1, 1), "2000-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Shift(ctx, &ShiftRequest{Request: tt.from, Years: tt.years, Months: tt.months, Days: tt.days})
			if err != nil {
				t.Fatalf("Shift() error = %v", err)
			}
			if got.Date.String() != tt.want {
				t.Errorf("Shift(%v) = %s, want %s", tt.from.Fields, got.Date, tt.want)
			}
		})
	}

	if _, err := svc.Shift(ctx, nil); err == nil {
		t.Error("Shift(nil) should fail")
	}
}

func TestShiftOutOfRange(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  ShiftRequest
	}{
		{"years", ShiftRequest{Request: civil(2000, 1, 1), Years: calendar.MaxYear}},
		{"years overflow", ShiftRequest{Request: civil(2000, 1, 1), Years: math.MaxInt64 / 6}},
		{"months", ShiftRequest{Request: civil(2000, 1, 1), Months: math.MinInt64}},
		{"days", ShiftRequest{Request: civil(2000, 1, 1), Days: big.NewRat(2*calendar.MaxJD, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Shift(ctx, &tt.req)
			if !mdwerror.HasCode(err, mdwerror.CodeInvalidDate) {
				t.Errorf("Shift() error = %v, want %s", err, mdwerror.CodeInvalidDate)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	from, to := civil(2000, 1, 1), civil(2000, 3, 1)
	got, err := svc.Diff(ctx, &from, &to)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if got.Cmp(big.NewRat(60, 1)) != 0 {
		t.Errorf("Diff(2000-01-01, 2000-03-01) = %s, want 60", got.RatString())
	}

	got, _ = svc.Diff(ctx, &to, &from)
	if got.Cmp(big.NewRat(-60, 1)) != 0 {
		t.Errorf("Diff(2000-03-01, 2000-01-01) = %s, want -60", got.RatString())
	}

	// Across the Italian gap only one day passes.
	from, to = civil(1582, 10, 4), civil(1582, 10, 15)
	got, _ = svc.Diff(ctx, &from, &to)
	if got.Cmp(big.NewRat(1, 1)) != 0 {
		t.Errorf("Diff(1582-10-04, 1582-10-15) = %s, want 1", got.RatString())
	}

	bad := civil(1900, 2, 29)
	if _, err := svc.Diff(ctx, &from, &bad); err == nil {
		t.Error("Diff() with an invalid date should fail")
	}
}

func stepJDs(t *testing.T, svc *Service, req *StepRequest) ([]int, error) {
	t.Helper()
	var jds []int
	n, err := svc.Step(context.Background(), req, func(r *Result) error {
		jds = append(jds, r.Date.JD())
		return nil
	})
	if err == nil && n != len(jds) {
		t.Errorf("Step() count = %d, yielded %d", n, len(jds))
	}
	return jds, err
}

func TestStep(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name   string
		from   Request
		to     Request
		stride *big.Rat
		want   []int
	}{
		{"forward by three", civil(2000, 1, 1), civil(2000, 1, 10), big.NewRat(3, 1),
			[]int{2451545, 2451548, 2451551, 2451554}},
		{"default forward", civil(2000, 1, 1), civil(2000, 1, 3), nil,
			[]int{2451545, 2451546, 2451547}},
		{"default backward", civil(2000, 1, 3), civil(2000, 1, 1), nil,
			[]int{2451547, 2451546, 2451545}},
		{"single day", civil(2000, 1, 1), civil(2000, 1, 1), nil,
			[]int{2451545}},
		{"wrong direction", civil(2000, 1, 1), civil(2000, 1, 3), big.NewRat(-1, 1), nil},
		{"zero stride", civil(2000, 1, 1), civil(2000, 1, 3), new(big.Rat), nil},
		{"across the gap", civil(1582, 10, 3), civil(1582, 10, 16), nil,
			[]int{2299159, 2299160, 2299161, 2299162}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stepJDs(t, svc, &StepRequest{From: tt.from, To: tt.to, Stride: tt.stride})
			if err != nil {
				t.Fatalf("Step() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Step() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Step()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStepLogsCompletion(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(t, func(c *Config) {
		c.Logger = logging.NewWithConfig(logging.LoggerConfig{
			ServiceName: "test",
			Level:       "debug",
			Format:      "json",
			Output:      &buf,
		})
	})

	lastEntry := func() map[string]interface{} {
		t.Helper()
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
			t.Fatalf("log line %q: %v", lines[len(lines)-1], err)
		}
		return entry
	}

	if _, err := stepJDs(t, svc, &StepRequest{From: civil(2000, 1, 1), To: civil(2000, 1, 3)}); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	entry := lastEntry()
	if entry["message"] != "service.Step completed" || entry["level"] != "debug" {
		t.Errorf("log entry = %v, want debug service.Step completed", entry)
	}
	if entry["items"] != float64(3) || entry["from"] != "2000-01-01" || entry["stride"] != "1" {
		t.Errorf("log fields = %v, want items 3 from 2000-01-01 stride 1", entry)
	}

	stop := errors.New("client gone")
	_, err := svc.Step(context.Background(), &StepRequest{From: civil(2000, 1, 1), To: civil(2000, 1, 3)},
		func(*Result) error { return stop })
	if !errors.Is(err, stop) {
		t.Fatalf("Step() error = %v, want %v", err, stop)
	}
	entry = lastEntry()
	if entry["message"] != "service.Step failed" || entry["level"] != "error" || entry["error"] != "client gone" {
		t.Errorf("log entry = %v, want error service.Step failed", entry)
	}
	if entry["items"] != float64(0) {
		t.Errorf("items = %v, want 0", entry["items"])
	}
}

func TestStepLimit(t *testing.T) {
	svc := newTestService(t, func(c *Config) { c.MaxStepItems = 5 })

	got, err := stepJDs(t, svc, &StepRequest{From: civil(2000, 1, 1), To: civil(2000, 1, 31)})
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Step() error = %v, want %s", err, mdwerror.CodeInvalidInput)
	}
	if len(got) != 0 {
		t.Errorf("Step() yielded %d items before failing", len(got))
	}

	// Exactly at the limit is fine.
	got, err = stepJDs(t, svc, &StepRequest{From: civil(2000, 1, 1), To: civil(2000, 1, 5)})
	if err != nil || len(got) != 5 {
		t.Errorf("Step() = %v, %v, want 5 items", got, err)
	}
}

func TestStepYieldError(t *testing.T) {
	svc := newTestService(t)
	stop := errors.New("stop")

	calls := 0
	n, err := svc.Step(context.Background(), &StepRequest{From: civil(2000, 1, 1), To: civil(2000, 1, 10)},
		func(*Result) error {
			calls++
			if calls == 2 {
				return stop
			}
			return nil
		})
	if !errors.Is(err, stop) {
		t.Errorf("Step() error = %v, want %v", err, stop)
	}
	if n != 1 {
		t.Errorf("Step() count = %d, want 1", n)
	}
}

func TestStepCount(t *testing.T) {
	a := calendar.JD(2451545, calendar.Italy)
	tests := []struct {
		to     int
		stride *big.Rat
		want   int64
	}{
		{2451554, big.NewRat(1, 1), 10},
		{2451554, big.NewRat(3, 1), 4},
		{2451554, big.NewRat(-1, 1), 0},
		{2451545, big.NewRat(1, 1), 1},
		{2451546, big.NewRat(1, 2), 3},
		{2451544, big.NewRat(-1, 1), 2},
		{2451554, new(big.Rat), 0},
	}

	for _, tt := range tests {
		b := calendar.JD(tt.to, calendar.Italy)
		if got := stepCount(a, b, tt.stride); got != tt.want {
			t.Errorf("stepCount(%d, %d, %s) = %d, want %d", a.JD(), tt.to, tt.stride.RatString(), got, tt.want)
		}
	}
}

func TestResultMap(t *testing.T) {
	r := NewResult(calendar.JD(2461330, calendar.Italy))
	m := r.Map()

	want := map[string]interface{}{
		"date":   "2026-10-16",
		"reform": "italy",
		"jd":     float64(2461330),
		"year":   float64(2026),
		"mon":    float64(10),
		"mday":   float64(16),
		"yday":   float64(289),
		"cwyear": float64(2026),
		"cweek":  float64(42),
		"cwday":  float64(5),
		"wday":   float64(5),
		"julian": false,
		"leap":   false,
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("Map()[%q] = %v, want %v", k, m[k], v)
		}
	}
	if _, ok := m["hour"]; ok {
		t.Error("date-only result should not carry time fields")
	}

	dt, err := calendar.CivilTime(2000, 1, 1, calendar.TimeOfDay{Hour: 6, Offset: big.NewRat(1, 24)}, calendar.Italy)
	if err != nil {
		t.Fatalf("CivilTime() error = %v", err)
	}
	m = NewResult(dt).Map()
	if m["hour"] != float64(6) || m["zone"] != "+01:00" || m["offset"] != float64(3600) {
		t.Errorf("Map() time fields = %v/%v/%v, want 6/+01:00/3600", m["hour"], m["zone"], m["offset"])
	}
}

func quietLogger() *logging.Logger {
	return logging.NewWithConfig(logging.LoggerConfig{
		ServiceName: "test",
		Level:       "error",
		Output:      io.Discard,
	})
}
