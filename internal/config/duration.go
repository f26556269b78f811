package config

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Duration wraps time.Duration so operators can write "30m" or "168h" in
// the TOML file and the JSON env override instead of raw nanoseconds.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(err, "invalid duration")
	}

	d.Duration = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler so DumpConfig renders the
// same string form that is accepted on input.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalJSON accepts the string form and, for backwards compatibility
// with raw overrides, integer nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw interface{}

	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "invalid duration")
	}

	switch v := raw.(type) {
	case string:
		return d.UnmarshalText([]byte(v))
	case float64:
		d.Duration = time.Duration(v)
		return nil
	default:
		return errors.New("duration must be a string like \"30m\" or integer nanoseconds")
	}
}

// MarshalJSON renders the string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}
