package jsonx

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFloat64_MarshalNaN(t *testing.T) {
	b, err := json.Marshal(Float64(math.NaN()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "null" {
		t.Errorf("expected null, got %s", b)
	}
}

func TestFloat64_MarshalInf(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1)} {
		b, err := json.Marshal(Float64(v))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(b) != "null" {
			t.Errorf("%v: expected null, got %s", v, b)
		}
	}
}

func TestFloat64_MarshalFinite(t *testing.T) {
	b, err := json.Marshal(Float64(-118.2437))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "-118.2437" {
		t.Errorf("expected -118.2437, got %s", b)
	}
}

func TestFloat64_UnmarshalNullRoundTrip(t *testing.T) {
	var f Float64
	if err := json.Unmarshal([]byte("null"), &f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(float64(f)) {
		t.Errorf("expected NaN after null, got %v", float64(f))
	}

	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "null" {
		t.Errorf("expected null after round trip, got %s", b)
	}
}

func TestFloat64_UnmarshalNumber(t *testing.T) {
	var f Float64
	if err := json.Unmarshal([]byte("34.05"), &f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if float64(f) != 34.05 {
		t.Errorf("expected 34.05, got %v", float64(f))
	}
}

func TestFloat64_InsideStruct(t *testing.T) {
	type point struct {
		Coordinates []Float64 `json:"coordinates"`
	}

	b, err := json.Marshal(point{Coordinates: []Float64{Float64(math.NaN()), 34.05}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `{"coordinates":[null,34.05]}` {
		t.Errorf("unexpected output: %s", b)
	}
}
