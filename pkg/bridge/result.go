package bridge

import (
	"encoding/json"
	"errors"
)

// Result is either a success value or a categorized error, never both.
type Result struct {
	value interface{}
	err   *Error
}

// OK returns a successful Result.
func OK(value interface{}) Result {
	return Result{value: value}
}

// Fail returns a failed Result.
func Fail(err *Error) Result {
	if err == nil {
		err = Errorf(CodeSetWallpaper, "unknown error")
	}
	return Result{err: err}
}

// Ok reports whether the Result is a success.
func (r Result) Ok() bool { return r.err == nil }

// Value returns the success value, nil for failures.
func (r Result) Value() interface{} { return r.value }

// Err returns the failure, nil for successes.
func (r Result) Err() *Error { return r.err }

type resultJSON struct {
	Ok    bool            `json:"ok"`
	Value json.RawMessage `json:"value,omitempty"`
	Error *Error          `json:"error,omitempty"`
}

// MarshalJSON encodes {"ok":true,"value":…} or {"ok":false,"error":{…}}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return json.Marshal(resultJSON{Ok: false, Error: r.err})
	}
	raw, err := json.Marshal(r.value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resultJSON{Ok: true, Value: raw})
}

// UnmarshalJSON decodes the tagged form. Success values decode as generic JSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var rj resultJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return err
	}
	if !rj.Ok {
		if rj.Error == nil {
			return errors.New("failed result without error")
		}
		*r = Result{err: rj.Error}
		return nil
	}
	var v interface{}
	if len(rj.Value) > 0 {
		if err := json.Unmarshal(rj.Value, &v); err != nil {
			return err
		}
	}
	*r = Result{value: v}
	return nil
}
