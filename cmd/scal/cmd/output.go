package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
)

// resultOrder is the print order of result keys; unknown keys follow sorted
var resultOrder = []string{
	"date", "jd", "ajd", "amjd", "mjd", "ld",
	"year", "mon", "mday", "yday",
	"cwyear", "cweek", "cwday", "wnum0", "wnum1", "wday",
	"hour", "min", "sec", "sec_fraction", "day_fraction", "zone", "offset",
	"julian", "leap", "reform",
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// printResult writes one "key value" line per entry of m
func printResult(w io.Writer, m map[string]interface{}) {
	seen := make(map[string]bool, len(m))
	for _, k := range resultOrder {
		if v, ok := m[k]; ok {
			fmt.Fprintf(w, "%-13s %s\n", k, formatValue(v))
			seen[k] = true
		}
	}

	var rest []string
	for k := range m {
		if !seen[k] && k != "with_time" {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		fmt.Fprintf(w, "%-13s %s\n", k, formatValue(m[k]))
	}
}
