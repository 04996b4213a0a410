package core

import "testing"

func TestMoneyFromDollars(t *testing.T) {
	tests := []struct {
		name    string
		dollars float64
		cents   int64
	}{
		{"whole", 25.0, 2500},
		{"two decimals", 12.34, 1234},
		{"half rounds away from zero", 0.125, 13},
		{"rounds drift", 19.999999999, 2000},
		{"zero", 0, 0},
		{"negative", -5.5, -550},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoneyFromDollars(tt.dollars).Cents; got != tt.cents {
				t.Errorf("MoneyFromDollars(%v) = %d cents, want %d", tt.dollars, got, tt.cents)
			}
		})
	}
}

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{2500, "$25.00"},
		{1250, "$12.50"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
		{-999, "-$9.99"},
		{5, "$0.05"},
	}
	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).Format(); got != tt.want {
			t.Errorf("Money{%d}.Format() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1204); got != "1,204" {
		t.Errorf("FormatCount(1204) = %q", got)
	}
	if got := FormatCount(42); got != "42" {
		t.Errorf("FormatCount(42) = %q", got)
	}
}
