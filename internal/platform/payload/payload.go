// Package payload reads scalar values out of decoded JSON objects.
//
// Stat files and API responses are decoded into map[string]any. Numbers arrive
// as float64 or as strings carrying thousands separators ("1,722"), so every
// numeric reader accepts both and reports malformed text as *rioerr.ParseError.
package payload

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
)

// Object returns obj[key] as a nested object.
func Object(obj map[string]any, key string) (map[string]any, bool) {
	if obj == nil {
		return nil, false
	}
	value, ok := obj[key].(map[string]any)
	return value, ok
}

// Array returns obj[key] as a list.
func Array(obj map[string]any, key string) ([]any, bool) {
	if obj == nil {
		return nil, false
	}
	value, ok := obj[key].([]any)
	return value, ok
}

// Has reports whether key exists with a non-null value.
func Has(obj map[string]any, key string) bool {
	if obj == nil {
		return false
	}
	value, ok := obj[key]
	return ok && value != nil
}

// Text returns scalar values in their textual form; objects and lists are not text.
func Text(obj map[string]any, key string) (string, bool) {
	if !Has(obj, key) {
		return "", false
	}
	return AsText(obj[key])
}

func AsText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// Int returns obj[key] as an integer. ok is false when the key is absent.
func Int(obj map[string]any, key string) (int, bool, error) {
	if !Has(obj, key) {
		return 0, false, nil
	}
	value, err := AsInt(key, obj[key])
	if err != nil {
		return 0, true, err
	}
	return value, true, nil
}

// Float returns obj[key] as a float. ok is false when the key is absent.
func Float(obj map[string]any, key string) (float64, bool, error) {
	if !Has(obj, key) {
		return 0, false, nil
	}
	value, err := AsFloat(key, obj[key])
	if err != nil {
		return 0, true, err
	}
	return value, true, nil
}

// RequireInt is Int for keys whose absence is a missing-key error.
func RequireInt(obj map[string]any, key, path string) (int, error) {
	value, ok, err := Int(obj, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, rioerr.MissingKey(joinPath(path, key))
	}
	return value, nil
}

func RequireText(obj map[string]any, key, path string) (string, error) {
	if !Has(obj, key) {
		return "", rioerr.MissingKey(joinPath(path, key))
	}
	value, ok := AsText(obj[key])
	if !ok {
		return "", rioerr.NewParseError(key, obj[key], nil)
	}
	return value, nil
}

func RequireObject(obj map[string]any, key, path string) (map[string]any, error) {
	if !Has(obj, key) {
		return nil, rioerr.MissingKey(joinPath(path, key))
	}
	value, ok := obj[key].(map[string]any)
	if !ok {
		return nil, rioerr.NewParseError(joinPath(path, key), obj[key], nil)
	}
	return value, nil
}

func AsInt(field string, value any) (int, error) {
	switch v := value.(type) {
	case float64:
		if !integral(v) {
			return 0, rioerr.NewParseError(field, v, nil)
		}
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		return ParseInt(field, v.String())
	case string:
		return ParseInt(field, v)
	default:
		return 0, rioerr.NewParseError(field, value, nil)
	}
}

func AsFloat(field string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		return ParseFloat(field, v.String())
	case string:
		return ParseFloat(field, v)
	default:
		return 0, rioerr.NewParseError(field, value, nil)
	}
}

// ParseInt accepts "1,722" style grouping separators.
func ParseInt(field, raw string) (int, error) {
	cleaned, ok := normalizeNumeric(raw)
	if !ok {
		return 0, rioerr.NewParseError(field, raw, nil)
	}
	value, err := strconv.Atoi(cleaned)
	if err == nil {
		return value, nil
	}
	// "12.0" is still an integer.
	f, ferr := strconv.ParseFloat(cleaned, 64)
	if ferr != nil || !integral(f) {
		return 0, rioerr.NewParseError(field, raw, err)
	}
	return int(f), nil
}

func ParseFloat(field, raw string) (float64, error) {
	cleaned, ok := normalizeNumeric(raw)
	if !ok {
		return 0, rioerr.NewParseError(field, raw, nil)
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, rioerr.NewParseError(field, raw, err)
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, rioerr.NewParseError(field, raw, nil)
	}
	return value, nil
}

// integral reports whether f is a whole number that int can hold exactly.
// float64(math.MaxInt) rounds up to 2^63, hence the strict upper bound.
func integral(f float64) bool {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return false
	}
	return f >= math.MinInt && f < math.MaxInt
}

// ParseHexID parses game ids written as hex with grouping separators.
func ParseHexID(field, raw string) (uint64, error) {
	cleaned := strings.TrimPrefix(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), ",", "")), "0x")
	if cleaned == "" {
		return 0, rioerr.NewParseError(field, raw, nil)
	}
	value, err := strconv.ParseUint(cleaned, 16, 64)
	if err != nil {
		return 0, rioerr.NewParseError(field, raw, err)
	}
	return value, nil
}

// normalizeNumeric drops thousands separators from decimal text. Separators
// are only valid between the groups of the integer part: the leading group has
// one to three digits and every later group exactly three.
func normalizeNumeric(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}
	if !strings.Contains(text, ",") {
		return text, true
	}

	sign := ""
	if text[0] == '+' || text[0] == '-' {
		sign, text = text[:1], text[1:]
	}
	intPart, frac, hasFrac := strings.Cut(text, ".")
	if strings.Contains(frac, ",") {
		return "", false
	}
	groups := strings.Split(intPart, ",")
	for i, group := range groups {
		if !allDigits(group) {
			return "", false
		}
		if (i == 0 && len(group) > 3) || (i > 0 && len(group) != 3) {
			return "", false
		}
	}

	cleaned := sign + strings.Join(groups, "")
	if hasFrac {
		cleaned += "." + frac
	}
	return cleaned, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "/" + key
}
