package epw

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Number is the set of types a decoded field can hold.
type Number interface {
	~int | ~float64
}

// Optional holds a numeric field that is either present or missing.
// The zero value is missing.
type Optional[T Number] struct {
	value T
	valid bool
}

// Some returns a present value.
func Some[T Number](v T) Optional[T] {
	return Optional[T]{value: v, valid: true}
}

// None returns a missing value.
func None[T Number]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.valid
}

// Valid reports whether the value is present.
func (o Optional[T]) Valid() bool {
	return o.valid
}

// Or returns the value, or fallback when missing.
func (o Optional[T]) Or(fallback T) T {
	if !o.valid {
		return fallback
	}
	return o.value
}

func (o Optional[T]) String() string {
	if !o.valid {
		return "missing"
	}
	return strconv.FormatFloat(float64(o.value), 'g', -1, 64)
}

// MarshalJSON encodes a missing value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as a missing value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Any returns the value, or nil when missing.
func (o Optional[T]) Any() any {
	if !o.valid {
		return nil
	}
	return o.value
}
