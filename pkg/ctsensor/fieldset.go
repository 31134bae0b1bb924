package ctsensor

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldSet offers typed helpers over the flattened JSON form of a record.
// Keys are dotted paths such as "header.batteryVoltage", "body.tow" or
// "body.satellites.0.codePhase".
type FieldSet struct {
	data map[string]any
}

// FieldSet flattens the result's record. Absent optional fields have no key.
func (r Result) FieldSet() FieldSet {
	raw, err := json.Marshal(r.Payload)
	if err != nil {
		return FieldSet{}
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return FieldSet{}
	}
	flat := make(map[string]any)
	flatten("", tree, flat)
	return FieldSet{data: flat}
}

func flatten(prefix string, v any, out map[string]any) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			flatten(join(k), child, out)
		}
	case []any:
		for i, child := range n {
			flatten(join(strconv.Itoa(i)), child, out)
		}
	default:
		out[prefix] = v
	}
}

// Map exposes the underlying map for callers that still need raw access.
func (fs FieldSet) Map() map[string]any {
	return fs.data
}

// Raw returns the stored value without conversions.
func (fs FieldSet) Raw(key string) (any, bool) {
	if fs.data == nil {
		return nil, false
	}
	v, ok := fs.data[key]
	return v, ok
}

// Float returns the field coerced to float64.
func (fs FieldSet) Float(key string) (float64, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q is not numeric: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
}

// Int returns the field coerced to int64. Decimal strings such as the level
// sensor readings are parsed.
func (fs FieldSet) Int(key string) (int64, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q is not integer: %w", key, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
}

// Hex parses a hex-rendered field such as "header.messageId" or "body.tow".
func (fs FieldSet) Hex(key string) (uint64, error) {
	s, err := fs.String(key)
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q is not hex: %w", key, err)
	}
	return u, nil
}

// String returns the field as a string.
func (fs FieldSet) String(key string) (string, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return "", fmt.Errorf("field %q missing", key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// Bool returns the field coerced to bool. "header.statusBeaconless" is
// rendered as a string and parses here.
func (fs FieldSet) Bool(key string) (bool, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return false, fmt.Errorf("field %q missing", key)
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, fmt.Errorf("field %q is not bool: %w", key, err)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
}
