package server

import (
	"math"
	"math/big"
	"strconv"

	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	"github.com/msto63/scaliger/foundation/calendar"
	"github.com/msto63/scaliger/internal/scaliger/service"
	"google.golang.org/protobuf/types/known/structpb"
)

// A date request travels as
//
//	{"fields": {"year": 2000, "mon": 2, "mday": 29}, "reform": "italy", "with_time": false}
//
// Field values are numbers or exact rationals written as strings ("1/3").

func badRequest(op, format string, args ...interface{}) error {
	return mdwerror.Newf(format, args...).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation(op)
}

// ratValue converts a number or rational string to an exact rational. A
// number is read as the shortest decimal that round-trips its float64, so
// 0.1 is 1/10; values a float64 cannot carry must be sent as "p/q".
func ratValue(op, name string, v *structpb.Value) (*big.Rat, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		if math.IsNaN(k.NumberValue) || math.IsInf(k.NumberValue, 0) {
			return nil, badRequest(op, "%s is not finite", name)
		}
		r, _ := new(big.Rat).SetString(strconv.FormatFloat(k.NumberValue, 'g', -1, 64))
		return r, nil
	case *structpb.Value_StringValue:
		r, ok := new(big.Rat).SetString(k.StringValue)
		if !ok {
			return nil, badRequest(op, "%s: %q is not a number", name, k.StringValue)
		}
		return r, nil
	default:
		return nil, mdwerror.Newf("%s must be a number or a rational string", name).
			WithCode(mdwerror.CodeInvalidArgumentType).
			WithOperation(op)
	}
}

// DecodeRequest reads a date request from s. Field values are numbers or
// rational strings; see ratValue for how numbers are read.
func DecodeRequest(op string, s *structpb.Struct) (*service.Request, error) {
	if s == nil {
		return nil, badRequest(op, "request is required")
	}
	m := s.GetFields()
	req := &service.Request{Fields: calendar.Fields{}}

	if v, ok := m["fields"]; ok {
		fs := v.GetStructValue()
		if fs == nil {
			return nil, badRequest(op, "fields must be an object")
		}
		for name, value := range fs.GetFields() {
			f, ok := calendar.ParseField(name)
			if !ok {
				return nil, badRequest(op, "unknown field %q", name)
			}
			r, err := ratValue(op, name, value)
			if err != nil {
				return nil, err
			}
			req.Fields.Set(f, r)
		}
	}
	if v, ok := m["reform"]; ok {
		if _, isString := v.GetKind().(*structpb.Value_StringValue); !isString {
			return nil, badRequest(op, "reform must be a string")
		}
		req.Reform = v.GetStringValue()
	}
	if v, ok := m["with_time"]; ok {
		if _, isBool := v.GetKind().(*structpb.Value_BoolValue); !isBool {
			return nil, badRequest(op, "with_time must be a boolean")
		}
		req.WithTime = v.GetBoolValue()
	}
	return req, nil
}

func nested(op string, s *structpb.Struct, key string) (*service.Request, error) {
	v, ok := s.GetFields()[key]
	if !ok || v.GetStructValue() == nil {
		return nil, badRequest(op, "%s is required", key)
	}
	return DecodeRequest(op, v.GetStructValue())
}

func intValue(op string, s *structpb.Struct, key string) (int, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, nil
	}
	r, err := ratValue(op, key, v)
	if err != nil {
		return 0, err
	}
	if !r.IsInt() || !r.Num().IsInt64() {
		return 0, badRequest(op, "%s must be a whole number", key)
	}
	return int(r.Num().Int64()), nil
}

func optionalRat(op string, s *structpb.Struct, key string) (*big.Rat, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, nil
	}
	return ratValue(op, key, v)
}

// DecodeShift reads {"date": request, "years": n, "months": n, "days": n}
func DecodeShift(s *structpb.Struct) (*service.ShiftRequest, error) {
	const op = "Shift"
	base, err := nested(op, s, "date")
	if err != nil {
		return nil, err
	}
	req := &service.ShiftRequest{Request: *base}
	if req.Years, err = intValue(op, s, "years"); err != nil {
		return nil, err
	}
	if req.Months, err = intValue(op, s, "months"); err != nil {
		return nil, err
	}
	if req.Days, err = optionalRat(op, s, "days"); err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeDiff reads {"from": request, "to": request}
func DecodeDiff(s *structpb.Struct) (from, to *service.Request, err error) {
	if from, err = nested("Diff", s, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = nested("Diff", s, "to"); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// DecodeStep reads {"from": request, "to": request, "stride": n}
func DecodeStep(s *structpb.Struct) (*service.StepRequest, error) {
	const op = "Step"
	from, to, err := DecodeDiff(s)
	if err != nil {
		return nil, err
	}
	req := &service.StepRequest{From: *from, To: *to}
	if req.Stride, err = optionalRat(op, s, "stride"); err != nil {
		return nil, err
	}
	return req, nil
}

// EncodeRequest is the inverse of DecodeRequest
func EncodeRequest(req *service.Request) map[string]interface{} {
	fields := make(map[string]interface{}, len(req.Fields))
	for f, r := range req.Fields {
		if r != nil {
			fields[string(f)] = r.RatString()
		}
	}

	m := map[string]interface{}{
		"fields":    fields,
		"with_time": req.WithTime,
	}
	if req.Reform != "" {
		m["reform"] = req.Reform
	}
	return m
}

func encode(m map[string]interface{}) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to encode response").
			WithCode(mdwerror.CodeInternal)
	}
	return s, nil
}
