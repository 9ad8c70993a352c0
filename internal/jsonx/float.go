// Package jsonx normalizes numeric edge cases at the JSON boundary.
//
// The source dataset carries NaN in optional numeric columns; JSON has no
// representation for NaN or infinities, so every float that can reach a
// response body is typed as Float64 and serializes those values as null.
package jsonx

import (
	"encoding/json"
	"fmt"
	"math"
)

// Float64 is a float64 that marshals NaN and ±Inf to JSON null.
type Float64 float64

// MarshalJSON implements json.Marshaler.
func (f Float64) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal float: %w", err)
	}
	return b, nil
}

// UnmarshalJSON implements json.Unmarshaler. JSON null decodes to NaN so a
// round trip re-serializes as null.
func (f *Float64) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float64(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal float: %w", err)
	}
	*f = Float64(v)
	return nil
}
