package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.23", "1.23", true},
		{"-54.32", "-54.32", true},
		{"$123.45", "123.45", true},
		{"($123.45)", "-123.45", true},
		{"(54.32)", "-54.32", true},
		{"$1,234.56", "1234.56", true},
		{" 2.50 ", "2.5", true},
		{"0", "0", true},
		{"0.001", "0.001", true},
		{"", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"(12", "", false},
		{"$", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
			if !errors.Is(err, ErrInvalidAmount) || !errors.Is(err, ErrValidation) {
				t.Fatalf("%q expected ErrInvalidAmount wrapping ErrValidation, got %v", tc.in, err)
			}
		}
	}
}

func TestParseAmountExactness(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, not 0.30000000000000004.
	a, err := ParseAmount("0.1")
	if err != nil {
		t.Fatalf("parse 0.1: %v", err)
	}
	b, err := ParseAmount("0.2")
	if err != nil {
		t.Fatalf("parse 0.2: %v", err)
	}
	if got := a.Add(b).String(); got != "0.3" {
		t.Fatalf("0.1 + 0.2 = %s, want 0.3", got)
	}
}

func TestFormatAmount(t *testing.T) {
	d, err := ParseAmount("-4.3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := FormatAmount(d); got != "-4.30" {
		t.Fatalf("expected -4.30, got %s", got)
	}
}
