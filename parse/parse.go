// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/stacklok/pageenv-core/enverr"
	"github.com/stacklok/pageenv-core/resolve"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// truthy is the token set the boolean parser accepts as true,
// case-insensitively. Everything else, including unparseable garbage, is
// false: flags never hard-fail.
var truthy = map[string]bool{
	"true": true,
	"1":    true,
	"yes":  true,
	"on":   true,
}

// Bool resolves key as a flag. Absent resolves to false; a present value
// is true iff it matches the truthy token set case-insensitively. The only
// possible failure is the resolver's own (AccessDenied on the client).
func Bool(r *resolve.Resolver, key string) (bool, error) {
	return BoolOr(r, key, false)
}

// BoolOr is Bool with an explicit default for the absent case.
func BoolOr(r *resolve.Resolver, key string, fallback bool) (bool, error) {
	raw, ok, err := r.Lookup(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return fallback, nil
	}
	return truthy[strings.ToLower(raw)], nil
}

// Number resolves key as a finite number. Absent resolves to 0; a present
// value that does not parse as a finite number fails with
// enverr.KindNotANumber. Integers, floats and negatives are accepted.
func Number(r *resolve.Resolver, key string) (float64, error) {
	return NumberOr(r, key, 0)
}

// NumberOr is Number with an explicit default for the absent case. A
// present invalid value still fails; the default never masks it.
func NumberOr(r *resolve.Resolver, key string, fallback float64) (float64, error) {
	raw, ok, err := r.Lookup(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, enverr.NotANumber(key, raw)
	}
	return n, nil
}

// Array resolves key as a comma-separated list: segments are trimmed,
// empty segments dropped, order and duplicates preserved. Absent resolves
// to an empty list; no present value is invalid.
func Array(r *resolve.Resolver, key string) ([]string, error) {
	return ArrayOr(r, key, []string{})
}

// ArrayOr is Array with an explicit default for the absent case.
func ArrayOr(r *resolve.Resolver, key string, fallback []string) ([]string, error) {
	raw, ok, err := r.Lookup(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return fallback, nil
	}
	segments := strings.Split(raw, ",")
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}

// JSON resolves key as a JSON document decoded into T. Absent fails with
// enverr.KindMissingRequired; a value that does not decode into T fails
// with enverr.KindInvalidJSON carrying the raw value. Beyond what decoding
// into T itself implies, no shape validation is performed.
func JSON[T any](r *resolve.Resolver, key string) (T, error) {
	var zero T
	raw, ok, err := r.Lookup(key)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, enverr.MissingRequired(key)
	}
	return decodeJSON[T](key, raw)
}

// JSONOr is JSON with an explicit default for the absent case. A present
// invalid value still fails.
func JSONOr[T any](r *resolve.Resolver, key string, fallback T) (T, error) {
	raw, ok, err := r.Lookup(key)
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		return fallback, nil
	}
	return decodeJSON[T](key, raw)
}

func decodeJSON[T any](key, raw string) (T, error) {
	var v T
	if err := json.UnmarshalFromString(raw, &v); err != nil {
		var zero T
		return zero, enverr.InvalidJSON(key, raw, err)
	}
	return v, nil
}

// URL resolves key as a structurally valid absolute URL and returns the
// original string unchanged. Absent fails with enverr.KindMissingRequired;
// a value that does not parse as an absolute URL fails with
// enverr.KindInvalidURL carrying the raw value.
func URL(r *resolve.Resolver, key string) (string, error) {
	raw, ok, err := r.Lookup(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", enverr.MissingRequired(key)
	}
	return validateURL(key, raw)
}

// URLOr is URL with an explicit default for the absent case. A present
// invalid value still fails.
func URLOr(r *resolve.Resolver, key, fallback string) (string, error) {
	raw, ok, err := r.Lookup(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return fallback, nil
	}
	return validateURL(key, raw)
}

func validateURL(key, raw string) (string, error) {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return "", enverr.InvalidURL(key, raw, err)
	}
	if parsed.Scheme == "" {
		return "", enverr.InvalidURL(key, raw, nil)
	}
	return raw, nil
}

// Enum resolves key as a member of the allowed set and returns the
// original string. Absent fails with enverr.KindMissingRequired listing
// the allowed values; a value outside the set fails with
// enverr.KindInvalidEnumValue listing them too. Matching is exact and
// case-sensitive.
func Enum(r *resolve.Resolver, key string, allowed []string) (string, error) {
	raw, ok, err := r.Lookup(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", enverr.MissingEnum(key, allowed)
	}
	return validateEnum(key, raw, allowed)
}

// EnumOr is Enum with an explicit default for the absent case. The default
// is returned as given, without membership validation, since the call site
// chose it deliberately. A present invalid value still fails.
func EnumOr(r *resolve.Resolver, key, fallback string, allowed []string) (string, error) {
	raw, ok, err := r.Lookup(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return fallback, nil
	}
	return validateEnum(key, raw, allowed)
}

func validateEnum(key, raw string, allowed []string) (string, error) {
	for _, a := range allowed {
		if raw == a {
			return raw, nil
		}
	}
	return "", enverr.InvalidEnumValue(key, raw, allowed)
}
