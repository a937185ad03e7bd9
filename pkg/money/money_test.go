package money

import (
	"encoding/json"
	"testing"
)

func TestFromFloat_Rounding(t *testing.T) {
	tests := []struct {
		amount float64
		want   Cents
	}{
		{0, 0},
		{749.50, 74950},
		{0.005, 1},    // rounds half away from zero
		{-0.005, -1},
		{19.999, 2000},
	}

	for _, tt := range tests {
		if got := FromFloat(tt.amount); got != tt.want {
			t.Errorf("FromFloat(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		cents Cents
		want  string
	}{
		{0, "0.00"},
		{74950, "749.50"},
		{5, "0.05"},
		{-1250, "-12.50"},
	}

	for _, tt := range tests {
		if got := tt.cents.String(); got != tt.want {
			t.Errorf("Cents(%d).String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMul(t *testing.T) {
	if got := Cents(60000).Mul(3); got != 180000 {
		t.Errorf("Mul(3) = %d, want 180000", got)
	}
}

func TestUnmarshalJSON_NumberAndString(t *testing.T) {
	// Catalog files carry amounts both ways
	var fromNumber Cents
	if err := json.Unmarshal([]byte(`101.11`), &fromNumber); err != nil {
		t.Fatalf("Unmarshal number: %v", err)
	}
	if fromNumber != 10111 {
		t.Errorf("Unmarshal number = %d, want 10111", fromNumber)
	}

	var fromString Cents
	if err := json.Unmarshal([]byte(`"101.11"`), &fromString); err != nil {
		t.Fatalf("Unmarshal string: %v", err)
	}
	if fromString != 10111 {
		t.Errorf("Unmarshal string = %d, want 10111", fromString)
	}

	var fromNull Cents
	if err := json.Unmarshal([]byte(`null`), &fromNull); err != nil {
		t.Fatalf("Unmarshal null: %v", err)
	}
	if fromNull != 0 {
		t.Errorf("Unmarshal null = %d, want 0", fromNull)
	}

	var bad Cents
	if err := json.Unmarshal([]byte(`"abc"`), &bad); err == nil {
		t.Error("Expected error for non-numeric string, got nil")
	}
}

func TestMarshalJSON_RoundTrip(t *testing.T) {
	data, err := json.Marshal(Cents(74950))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "749.50" {
		t.Errorf("Marshal = %s, want 749.50", data)
	}

	var back Cents
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != 74950 {
		t.Errorf("Round trip = %d, want 74950", back)
	}
}
