package command

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/listwiz/internal/listing"
)

// args reads typed values out of a loosely typed argument map. Numbers may be
// any Go integer or float64. Every key read is remembered so unknown keys can
// be reported.
type args struct {
	raw  map[string]any
	seen map[string]bool
	errs []error
}

func newArgs(raw map[string]any) *args {
	return &args{raw: raw, seen: make(map[string]bool, len(raw))}
}

func (a *args) lookup(key string) (any, bool) {
	a.seen[key] = true
	v, ok := a.raw[key]
	return v, ok
}

func (a *args) failf(format string, v ...any) {
	a.errs = append(a.errs, fmt.Errorf(format, v...))
}

// err reports type errors and unknown keys.
func (a *args) err() error {
	var unknown []string
	for key := range a.raw {
		if !a.seen[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	errs := a.errs
	for _, key := range unknown {
		errs = append(errs, fmt.Errorf("unknown argument %q", key))
	}
	return errors.Join(errs...)
}

func (a *args) text(key string) (string, bool) {
	v, ok := a.lookup(key)
	if !ok {
		return "", false
	}
	s, ok := asString(v)
	if !ok {
		a.failf("%s: expected text, got %s", key, describe(v))
	}
	return s, ok
}

// require records an error when key is absent.
func (a *args) require(key string) {
	if _, ok := a.raw[key]; !ok {
		a.failf("%s is required", key)
	}
}

func (a *args) requireText(key string) string {
	a.require(key)
	s, ok := a.text(key)
	if !ok {
		return ""
	}
	if strings.TrimSpace(s) == "" {
		a.failf("%s must not be empty", key)
	}
	return s
}

func (a *args) boolean(key string) (bool, bool) {
	v, ok := a.lookup(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	if !ok {
		a.failf("%s: expected true or false, got %s", key, describe(v))
	}
	return b, ok
}

func (a *args) integer(key string) (int, bool) {
	v, ok := a.lookup(key)
	if !ok {
		return 0, false
	}
	n, ok := asInt(v)
	if !ok {
		a.failf("%s: expected a whole number, got %s", key, describe(v))
	}
	return n, ok
}

func (a *args) number(key string) (float64, bool) {
	v, ok := a.lookup(key)
	if !ok {
		return 0, false
	}
	f, ok := asFloat(v)
	if !ok {
		a.failf("%s: expected a number, got %s", key, describe(v))
	}
	return f, ok
}

func (a *args) list(key string) ([]string, bool) {
	v, ok := a.lookup(key)
	if !ok {
		return nil, false
	}
	s, ok := asStrings(v)
	if !ok {
		a.failf("%s: expected a list of text, got %s", key, describe(v))
	}
	return s, ok
}

// isNull reports whether key is present with a null value.
func (a *args) isNull(key string) bool {
	v, ok := a.lookup(key)
	return ok && v == nil
}

// Patch field setters. An absent key leaves dst untouched.

func setText[T ~string](a *args, key string, dst *listing.Value[T]) {
	if s, ok := a.text(key); ok {
		*dst = listing.Some(T(s))
	}
}

func setBool(a *args, key string, dst *listing.Value[bool]) {
	if b, ok := a.boolean(key); ok {
		*dst = listing.Some(b)
	}
}

func setInt(a *args, key string, dst *listing.Value[int]) {
	if n, ok := a.integer(key); ok {
		*dst = listing.Some(n)
	}
}

// Nullable setters accept null to clear the field.

func setTextPtr(a *args, key string, dst *listing.Value[*string]) {
	if a.isNull(key) {
		*dst = listing.Some[*string](nil)
		return
	}
	if s, ok := a.text(key); ok {
		*dst = listing.Some(&s)
	}
}

func setIntPtr(a *args, key string, dst *listing.Value[*int]) {
	if a.isNull(key) {
		*dst = listing.Some[*int](nil)
		return
	}
	if n, ok := a.integer(key); ok {
		*dst = listing.Some(&n)
	}
}

func setFloatPtr(a *args, key string, dst *listing.Value[*float64]) {
	if a.isNull(key) {
		*dst = listing.Some[*float64](nil)
		return
	}
	if f, ok := a.number(key); ok {
		*dst = listing.Some(&f)
	}
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case int, int64, uint64, float64:
		// Reference and unit numbers typed without quotes.
		return fmt.Sprint(s), true
	case time.Time:
		// Unquoted dates decode as YAML timestamps.
		if s.Equal(s.Truncate(24 * time.Hour)) {
			return s.Format(time.DateOnly), true
		}
		return s.Format(time.RFC3339), true
	default:
		return "", false
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n >= math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// asStrings accepts a list or a comma separated string.
func asStrings(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case string:
		if strings.TrimSpace(s) == "" {
			return []string{}, true
		}
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, true
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := asString(item)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
