package fieldmap

import (
	"strings"
)

// Payload is a decoded JSON body. Creation endpoints accept legacy alias keys
// (studentId/student_id/dishId and the like), so getters take a key chain and
// use the first present, non-empty value.
type Payload map[string]any

// Raw returns the first present, non-nil value among the keys. Empty strings
// count as absent, matching how the old front-end sent cleared fields.
func (p Payload) Raw(keys ...string) (any, bool) {
	for _, k := range keys {
		v, ok := p[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// Has reports literal key presence, regardless of value.
func (p Payload) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := p[k]; ok {
			return true
		}
	}
	return false
}

// String returns the first value as a trimmed string, or "" if absent.
func (p Payload) String(keys ...string) string {
	v, ok := p.Raw(keys...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// Float parses the first value as a number.
func (p Payload) Float(keys ...string) (float64, bool, error) {
	v, ok := p.Raw(keys...)
	if !ok {
		return 0, false, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, true, err
	}
	return f, true, nil
}

// Int parses the first value as an integer.
func (p Payload) Int(keys ...string) (int, bool, error) {
	f, ok, err := p.Float(keys...)
	return int(f), ok, err
}

// Bool normalizes the first value with the shared truthy rules.
func (p Payload) Bool(keys ...string) (bool, bool, error) {
	v, ok := p.Raw(keys...)
	if !ok {
		return false, false, nil
	}
	b, err := Bool(v)
	if err != nil {
		return false, true, err
	}
	return b.(bool), true, nil
}

// List normalizes the first value into the canonical serialized list form.
func (p Payload) List(keys ...string) (string, bool) {
	v, ok := p.Raw(keys...)
	if !ok {
		return "", false
	}
	s, err := StringList(v)
	if err != nil {
		return "", false
	}
	return s.(string), true
}
