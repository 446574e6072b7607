package osuapi

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// The v1 api quotes every number and flag, and sends null or "" for values it doesn't have.

// TimeLayout is the api's timestamp format, always UTC
const TimeLayout = "2006-01-02 15:04:05"

func unquote(data []byte) ([]byte, bool) {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil, false
	}
	data = bytes.Trim(data, `"`)
	return data, len(data) > 0
}

type apiInt int64

func (i *apiInt) UnmarshalJSON(data []byte) error {
	raw, ok := unquote(data)
	if !ok {
		*i = 0
		return nil
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("integer %s: %w", data, err)
	}
	*i = apiInt(v)
	return nil
}

type apiFloat float64

func (f *apiFloat) UnmarshalJSON(data []byte) error {
	raw, ok := unquote(data)
	if !ok {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return fmt.Errorf("float %s: %w", data, err)
	}
	*f = apiFloat(v)
	return nil
}

type apiBool bool

func (b *apiBool) UnmarshalJSON(data []byte) error {
	raw, _ := unquote(data)
	switch string(raw) {
	case "1", "true":
		*b = true
	default:
		*b = false
	}
	return nil
}

type apiTime struct {
	time.Time
	Valid bool
}

func (t *apiTime) UnmarshalJSON(data []byte) error {
	raw, ok := unquote(data)
	if !ok {
		*t = apiTime{}
		return nil
	}
	parsed, err := time.ParseInLocation(TimeLayout, string(raw), time.UTC)
	if err != nil {
		return fmt.Errorf("timestamp %s: %w", data, err)
	}
	*t = apiTime{Time: parsed, Valid: true}
	return nil
}

func (t apiTime) ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
