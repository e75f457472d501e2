package validation

import "encoding/json"

// Optional tracks whether a field was present in a JSON payload separately
// from its value. A key sent as null is Set with the zero value of T, which
// for pointer types means an explicit nil.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get returns the value and whether it was present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// IsZero reports an absent field so `json:",omitzero"` drops it.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// UnmarshalJSON is only invoked for keys present in the document.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Set = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}
