package dto

import (
	"encoding/json"
	"reflect"
	"time"
)

// dateTimeLayouts are tried in order. Layouts without an offset are read as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// DateTime is a timestamp accepted as RFC 3339 or as ISO 8601 without a zone.
type DateTime time.Time

func ParseDateTime(s string) (DateTime, error) {
	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return DateTime(t), nil
		}
		lastErr = err
	}
	return DateTime{}, lastErr
}

func (d DateTime) Time() time.Time {
	return time.Time(d)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d))
}

// UnmarshalJSON reports bad input as *json.UnmarshalTypeError so the decoder
// attaches the field name.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(DateTime{})}
	}

	parsed, err := ParseDateTime(raw)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + raw, Type: reflect.TypeOf(DateTime{})}
	}
	*d = parsed
	return nil
}
