package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Front matter arrives untyped. These accessors turn whatever is present into
// the requested Go type and fall back to a zero value when the key is absent
// or the value has the wrong shape.

func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		case int, int64, float64, bool:
			return fmt.Sprint(t)
		}
	}
	return ""
}

func strList(m map[string]any, key string) []string {
	out := []string{}
	switch t := m[key].(type) {
	case []any:
		for _, v := range t {
			if v == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case string:
		// "Go, SQLite, HTMX"
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// integer reads a whole number. ok is false when the key is absent or the
// value is not numeric.
func integer(m map[string]any, key string) (int, bool) {
	switch t := m[key].(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case uint64:
		if t > math.MaxInt32 {
			return math.MaxInt32, true
		}
		return int(t), true
	case float64:
		if math.IsNaN(t) {
			return 0, false
		}
		if t > math.MaxInt32 {
			return math.MaxInt32, true
		}
		if t < math.MinInt32 {
			return math.MinInt32, true
		}
		return int(math.Round(t)), true
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(t), "%")
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return integer(map[string]any{key: f}, key)
		}
	}
	return 0, false
}

// stringMap flattens a mapping into string values. A nested {value, label}
// mapping becomes "value label"; other non-scalar values are dropped.
func stringMap(v any) map[string]string {
	out := map[string]string{}
	switch t := v.(type) {
	case map[string]string:
		for k, val := range t {
			out[k] = val
		}
		return out
	}
	m, ok := mapping(v)
	if !ok {
		return out
	}
	for k, val := range m {
		if s, ok := flat(val); ok && s != "" {
			out[k] = s
		}
	}
	return out
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(t), true
	case time.Time:
		return t.Format("2006-01-02"), true
	}
	return "", false
}

func flat(v any) (string, bool) {
	if s, ok := scalar(v); ok {
		return s, true
	}
	m, ok := mapping(v)
	if !ok {
		return "", false
	}
	var parts []string
	for _, k := range []string{"value", "label"} {
		if s, ok := scalar(m[k]); ok && s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}

func mapping(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// list returns the mapping elements of a list field, dropping anything that
// is not a mapping.
func list(m map[string]any, key string) []map[string]any {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if el, ok := mapping(v); ok {
			out = append(out, el)
		}
	}
	return out
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func timestamp(m map[string]any, keys ...string) (time.Time, bool) {
	for _, k := range keys {
		switch t := m[k].(type) {
		case time.Time:
			return t, true
		case string:
			for _, layout := range dateLayouts {
				if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
					return parsed, true
				}
			}
		}
	}
	return time.Time{}, false
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// RawProgress reports the progress value as written, before clamping.
func RawProgress(fm map[string]any) (n int, present, numeric bool) {
	v, ok := fm["progress"]
	if !ok || v == nil {
		return 0, false, false
	}
	n, numeric = integer(fm, "progress")
	return n, true, numeric
}
