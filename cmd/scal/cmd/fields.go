package cmd

import (
	"math/big"
	"strings"

	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	"github.com/msto63/scaliger/foundation/calendar"
	"github.com/msto63/scaliger/internal/scaliger/service"
	"github.com/msto63/scaliger/pkg/core/config"
)

// parseFields reads field=value pairs. Pairs may also be joined by commas
// inside one argument, as in "year=2000,mon=1,mday=1".
func parseFields(args []string) (calendar.Fields, error) {
	fs := calendar.Fields{}
	for _, arg := range args {
		for _, pair := range strings.Split(arg, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, invalidArg("expected field=value, got %q", pair)
			}
			f, ok := calendar.ParseField(name)
			if !ok {
				return nil, invalidArg("unknown field %q", name)
			}
			r, err := parseValue(f, strings.TrimSpace(value))
			if err != nil {
				return nil, err
			}
			fs.Set(f, r)
		}
	}
	return fs, nil
}

func parseValue(f calendar.Field, value string) (*big.Rat, error) {
	if r, ok := new(big.Rat).SetString(value); ok {
		return r, nil
	}
	if f == calendar.FieldOffset {
		secs, err := config.ParseOffset(value)
		if err != nil {
			return nil, invalidArg("invalid offset %q", value)
		}
		return big.NewRat(int64(secs), 1), nil
	}
	return nil, invalidArg("%s: %q is not a number", f, value)
}

func parseRat(name, value string) (*big.Rat, error) {
	if value == "" {
		return nil, nil
	}
	r, ok := new(big.Rat).SetString(value)
	if !ok {
		return nil, invalidArg("--%s: %q is not a number", name, value)
	}
	return r, nil
}

func invalidArg(format string, args ...interface{}) error {
	return mdwerror.Newf(format, args...).WithCode(mdwerror.CodeInvalidInput)
}

func request(args []string, withTime bool) (*service.Request, error) {
	fs, err := parseFields(args)
	if err != nil {
		return nil, err
	}
	return &service.Request{Fields: fs, WithTime: withTime}, nil
}
