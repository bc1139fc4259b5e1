package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Field carries one optional patch value and whether it was present.
type Field[T any] struct {
	Set   bool
	Value T
}

func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

var ErrInvalidPatchBody = errors.New("invalid request body")

// FieldError reports a present, well-typed field whose value is rejected.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ParseAttendancePatch reads a sparse status-row patch. Fields of the wrong
// JSON type are ignored rather than rejected.
func ParseAttendancePatch(body []byte) (AttendancePatch, error) {
	var patch AttendancePatch
	raw, err := decodeObject(body)
	if err != nil {
		return patch, err
	}

	if s, ok := stringField(raw, "status"); ok {
		if !IsValidStatus(s) {
			return patch, &FieldError{Field: "status", Message: "must be one of entered, exited, present, late, absent"}
		}
		patch.Status = Some(s)
	}
	if s, ok := stringField(raw, "time_in"); ok {
		t, err := parseTimestamp(s)
		if err != nil {
			return patch, &FieldError{Field: "time_in", Message: "must be an RFC 3339 timestamp"}
		}
		patch.TimeIn = Some(t)
	}
	if v, ok := raw["time_out"]; ok {
		if isNull(v) {
			patch.TimeOut = Some[*time.Time](nil)
		} else if s, ok := stringField(raw, "time_out"); ok {
			t, err := parseTimestamp(s)
			if err != nil {
				return patch, &FieldError{Field: "time_out", Message: "must be an RFC 3339 timestamp or null"}
			}
			patch.TimeOut = Some(&t)
		}
	}
	if f, ok := numberField(raw, "confidence_score"); ok {
		if f < 0 || f > 1 {
			return patch, &FieldError{Field: "confidence_score", Message: "must be between 0 and 1"}
		}
		patch.ConfidenceScore = Some(f)
	}
	return patch, nil
}

// ParseAttendanceLogPatch reads a sparse event-log patch.
func ParseAttendanceLogPatch(body []byte) (AttendanceLogPatch, error) {
	var patch AttendanceLogPatch
	raw, err := decodeObject(body)
	if err != nil {
		return patch, err
	}

	if s, ok := stringField(raw, "action"); ok {
		if !IsValidAction(s) {
			return patch, &FieldError{Field: "action", Message: "must be enter or exit"}
		}
		patch.Action = Some(s)
	}
	if f, ok := numberField(raw, "confidence_score"); ok {
		if f < 0 || f > 1 {
			return patch, &FieldError{Field: "confidence_score", Message: "must be between 0 and 1"}
		}
		patch.ConfidenceScore = Some(f)
	}
	if s, ok := stringField(raw, "timestamp"); ok {
		t, err := parseTimestamp(s)
		if err != nil {
			return patch, &FieldError{Field: "timestamp", Message: "must be an RFC 3339 timestamp"}
		}
		patch.Timestamp = Some(t)
	}
	return patch, nil
}

func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, ErrInvalidPatchBody
	}
	return raw, nil
}

func stringField(raw map[string]json.RawMessage, key string) (string, bool) {
	v, ok := raw[key]
	if !ok || isNull(v) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

func numberField(raw map[string]json.RawMessage, key string) (float64, bool) {
	v, ok := raw[key]
	if !ok || isNull(v) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		return 0, false
	}
	return f, true
}

func isNull(v json.RawMessage) bool {
	return string(v) == "null"
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
