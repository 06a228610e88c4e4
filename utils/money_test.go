package utils

import (
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1000.00", 1000},
		{"0.01", 0.01},
		{"50", 50},
		{"-10.50", -10.5},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"+Inf", 0},
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1000, "1000.00"},
		{1050.5, "1050.50"},
		{0, "0.00"},
		{0.005, "0.01"},
		{799.999, "800.00"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(1.005); got != 1.0 && got != 1.01 {
		// 1.005 is not exactly representable; either neighbour is acceptable
		t.Errorf("Round2(1.005) = %v", got)
	}
	if got := Round2(2.675); got != 2.67 && got != 2.68 {
		t.Errorf("Round2(2.675) = %v", got)
	}
	if got := Round2(10.123); got != 10.12 {
		t.Errorf("Round2(10.123) = %v, want 10.12", got)
	}
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		price, percent float64
		want           float64
	}{
		{1000, 0, 1000},
		{1000, 20, 800},
		{1000, -5, 1000},
		{1000, 100, 0},
		{1000, 150, 0},
		{999.99, 10, 899.99},
		{0, 50, 0},
	}
	for _, tt := range tests {
		if got := EffectivePrice(tt.price, tt.percent); got != tt.want {
			t.Errorf("EffectivePrice(%v, %v) = %v, want %v", tt.price, tt.percent, got, tt.want)
		}
	}
}

func TestLineTotal(t *testing.T) {
	if got := LineTotal("500.00", 2); got != 1000 {
		t.Errorf("LineTotal(500.00, 2) = %v, want 1000", got)
	}
	if got := LineTotal("33.33", 3); math.Abs(got-99.99) > 1e-9 {
		t.Errorf("LineTotal(33.33, 3) = %v, want 99.99", got)
	}
	if got := LineTotal("junk", 5); got != 0 {
		t.Errorf("LineTotal(junk, 5) = %v, want 0", got)
	}
}

func TestToPaise(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"100.00", 10000},
		// 19.99 and 0.29 sit just below their 2-dp value in binary;
		// truncation would lose a paise on each.
		{"19.99", 1999},
		{"0.29", 29},
		{"1050.00", 105000},
		{"0.01", 1},
		{"0.00", 0},
		{"junk", 0},
	}
	for _, tt := range tests {
		if got := ToPaise(tt.in); got != tt.want {
			t.Errorf("ToPaise(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCoerceShipping(t *testing.T) {
	if got := CoerceShipping(50); got != 50 {
		t.Errorf("CoerceShipping(50) = %v", got)
	}
	if got := CoerceShipping(-25); got != 0 {
		t.Errorf("CoerceShipping(-25) = %v, want 0", got)
	}
	if got := CoerceShipping(math.NaN()); got != 0 {
		t.Errorf("CoerceShipping(NaN) = %v, want 0", got)
	}
	if got := CoerceShipping(math.Inf(1)); got != 0 {
		t.Errorf("CoerceShipping(+Inf) = %v, want 0", got)
	}
}
