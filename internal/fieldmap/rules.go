package fieldmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Enum accepts only one of the listed string values.
func Enum(values ...string) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("must be one of %s", strings.Join(values, "|"))
		}
		for _, v := range values {
			if s == v {
				return s, nil
			}
		}
		return nil, fmt.Errorf("must be one of %s", strings.Join(values, "|"))
	}
}

// Float parses a numeric value; nil and empty strings fail.
func Float(value any) (any, error) {
	f, err := toFloat(value)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// FloatOrZero treats nil and empty string as 0.
func FloatOrZero(value any) (any, error) {
	if value == nil || value == "" {
		return float64(0), nil
	}
	return Float(value)
}

// IntOrNil parses an integer; nil and empty string persist as NULL.
func IntOrNil(value any) (any, error) {
	if value == nil || value == "" {
		return nil, nil
	}
	f, err := toFloat(value)
	if err != nil {
		return nil, errors.New("must be integer")
	}
	return int(f), nil
}

// Bool normalizes truthy/falsy inputs: JSON booleans, numbers (non-zero is
// true) and the usual string spellings.
func Bool(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case float64:
		return v != 0, nil
	case int:
		return v != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true, nil
		case "0", "false", "no", "off", "":
			return false, nil
		}
		return nil, errors.New("must be boolean")
	case nil:
		return false, nil
	}
	return nil, errors.New("must be boolean")
}

// TrimmedString trims string values and passes nil through.
func TrimmedString(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, errors.New("must be string")
	}
	return strings.TrimSpace(s), nil
}

// RequiredString trims and rejects empty results.
func RequiredString(value any) (any, error) {
	v, err := TrimmedString(value)
	if err != nil {
		return nil, err
	}
	s, _ := v.(string)
	if s == "" {
		return nil, errors.New("required")
	}
	return s, nil
}

// StringList accepts a native list or a delimited string and always persists
// the canonical serialized form: a JSON array.
func StringList(value any) (any, error) {
	items, err := toStringList(value)
	if err != nil {
		return nil, err
	}
	b, _ := json.Marshal(items)
	return string(b), nil
}

func toStringList(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	case string:
		if v == "" {
			return []string{}, nil
		}
		var items []string
		if err := json.Unmarshal([]byte(v), &items); err == nil {
			return items, nil
		}
		var out []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	}
	return nil, errors.New("must be a list")
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, errors.New("must be number")
		}
		return f, nil
	}
	return 0, errors.New("must be number")
}
