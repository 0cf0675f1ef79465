package piggybank

import (
	"encoding/json"
	"time"

	"github.com/iov-one/piggybank/errors"
)

// UnixTime is a POSIX timestamp with seconds precision. Goal deadlines and
// vault unlock times use it.
type UnixTime int64

// AsUnixTime drops the sub second part of t.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add shifts the time by d, truncated to whole seconds.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// Remaining returns how long it takes from now until t. It is never
// negative.
func (t UnixTime) Remaining(now UnixTime) time.Duration {
	if t <= now {
		return 0
	}
	return time.Duration(t-now) * time.Second
}

func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().UTC().String()
}

// UnmarshalJSON accepts seconds since epoch as well as an RFC 3339 string.
// Genesis files tend to use the latter.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	parsed, err := parseUnixTime(raw)
	if err != nil {
		return err
	}
	if parsed < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = parsed
	return nil
}

func parseUnixTime(raw []byte) (UnixTime, error) {
	var seconds int64
	if err := json.Unmarshal(raw, &seconds); err == nil {
		return UnixTime(seconds), nil
	}
	var stamp time.Time
	if err := json.Unmarshal(raw, &stamp); err == nil {
		return AsUnixTime(stamp), nil
	}
	return 0, errors.Wrap(errors.ErrInput, "invalid time format")
}
