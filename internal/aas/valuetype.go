package aas

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ValueType is one of the XSD value types a Property may declare.
type ValueType string

const (
	TypeString       ValueType = "xs:string"
	TypeInteger      ValueType = "xs:integer"
	TypeLong         ValueType = "xs:long"
	TypeUnsignedLong ValueType = "xs:unsignedLong"
	TypeDouble       ValueType = "xs:double"
	TypeFloat        ValueType = "xs:float"
	TypeBoolean      ValueType = "xs:boolean"
	TypeDate         ValueType = "xs:date"
	TypeDateTime     ValueType = "xs:dateTime"
	TypeAnyURI       ValueType = "xs:anyURI"
)

// ValueTypes lists the supported enumeration in display order.
var ValueTypes = []ValueType{
	TypeString, TypeInteger, TypeLong, TypeUnsignedLong,
	TypeDouble, TypeFloat, TypeBoolean, TypeDate, TypeDateTime, TypeAnyURI,
}

// Accepted date layouts, in the order they are tried. The first layout is
// the canonical form used when normalizing.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01/02/2006",
	"02/01/2006",
}

// Accepted dateTime layouts. RFC3339 first so timezone-aware inputs keep
// their offset through normalization.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02-01-2006 15:04:05",
}

// ValidationResult reports whether a pending value is acceptable for a
// declared value type.
type ValidationResult struct {
	OK      bool
	Message string
}

func valid() ValidationResult                 { return ValidationResult{OK: true} }
func invalid(msg string) ValidationResult     { return ValidationResult{OK: false, Message: msg} }
func invalidf(f string, a ...any) ValidationResult { return invalid(fmt.Sprintf(f, a...)) }

// isEmpty reports whether a pending value means "clear the field".
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// Validate checks a pending value against a declared value type. Empty
// input is always valid: it signals clearing the field. Values may arrive
// as strings (from inputs) or as native JSON scalars.
func Validate(value any, vt ValueType) ValidationResult {
	if isEmpty(value) {
		return valid()
	}

	switch vt {
	case TypeString, "":
		return valid()

	case TypeInteger, TypeLong, TypeUnsignedLong:
		n, err := toInt(value)
		if err != nil {
			return invalidf("%v is not a valid integer", value)
		}
		if vt == TypeUnsignedLong && n < 0 {
			return invalidf("%v is negative; %s must be >= 0", value, vt)
		}
		return valid()

	case TypeDouble, TypeFloat:
		f, err := toFloat(value)
		if err != nil {
			return invalidf("%v is not a valid number", value)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return invalidf("%v is not a finite number", value)
		}
		return valid()

	case TypeBoolean:
		if _, err := toBool(value); err != nil {
			return invalidf("%v is not a boolean (use true or false)", value)
		}
		return valid()

	case TypeDate:
		if _, err := parseDate(value); err != nil {
			return invalidf("%v is not a valid date (expected YYYY-MM-DD)", value)
		}
		return valid()

	case TypeDateTime:
		if _, err := parseDateTime(value); err != nil {
			return invalidf("%v is not a valid dateTime (expected YYYY-MM-DDTHH:MM:SS)", value)
		}
		return valid()

	case TypeAnyURI:
		if err := checkURI(value); err != nil {
			return invalidf("%v is not an absolute http(s) URL", value)
		}
		return valid()

	default:
		// Unrecognized declared type: do not block the save on it.
		return valid()
	}
}

// Format coerces a pending value into the normalized form sent in the
// update patch. Empty input formats to nil, an explicit unset, never an
// empty string. The error mirrors the Validate message for the same input.
func Format(value any, vt ValueType) (any, error) {
	if isEmpty(value) {
		return nil, nil
	}

	switch vt {
	case TypeString, "":
		return fmt.Sprintf("%v", value), nil

	case TypeInteger, TypeLong, TypeUnsignedLong:
		n, err := toInt(value)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %v to %s", value, vt)
		}
		if vt == TypeUnsignedLong && n < 0 {
			return nil, fmt.Errorf("cannot convert %v to %s: negative", value, vt)
		}
		return n, nil

	case TypeDouble, TypeFloat:
		f, err := toFloat(value)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("cannot convert %v to %s", value, vt)
		}
		return f, nil

	case TypeBoolean:
		b, err := toBool(value)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %v to %s", value, vt)
		}
		return b, nil

	case TypeDate:
		t, err := parseDate(value)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %v to %s", value, vt)
		}
		return t.Format("2006-01-02"), nil

	case TypeDateTime:
		t, err := parseDateTime(value)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %v to %s", value, vt)
		}
		return t.Format(time.RFC3339), nil

	case TypeAnyURI:
		if err := checkURI(value); err != nil {
			return nil, fmt.Errorf("cannot convert %v to %s", value, vt)
		}
		return fmt.Sprintf("%v", value), nil

	default:
		return value, nil
	}
}

func toInt(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not an integer: %v", v)
		}
		return int64(v), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return 0, fmt.Errorf("not an integer: %v", value)
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("not a number: %v", value)
	}
}

// toBool accepts native booleans and the literals "true"/"false" plus
// "1"/"0". Anything else (including "yes"/"no") is rejected.
func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
	}
	return false, fmt.Errorf("not a boolean: %v", value)
}

func parseDate(value any) (time.Time, error) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("not a date: %v", value)
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a date: %q", s)
}

func parseDateTime(value any) (time.Time, error) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("not a dateTime: %v", value)
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a dateTime: %q", s)
}

func checkURI(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("not a URL: %v", value)
	}
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("not an absolute http(s) URL: %q", s)
	}
	return nil
}
