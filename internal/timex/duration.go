// Package timex provides a time.Duration wrapper that can be read from JSON
// config files, environment variables and flags in a human friendly form.
package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// Duration accepts "90s", "15m", "7d", "1w2d" or an integer number of
// nanoseconds when unmarshalled from JSON.
type Duration struct {
	time.Duration
}

// Parse converts s to a time.Duration. Day and week units are supported.
func Parse(s string) (time.Duration, error) {
	d, err := str2duration.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return d, nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(str2duration.String(d.Duration))
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := Parse(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// Set implements flag.Value.
func (d *Duration) Set(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d *Duration) String() string {
	if d == nil {
		return "0s"
	}
	return str2duration.String(d.Duration)
}
