package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"1,234.50", "1234.5"},
		{"100", "100"},
		{"0.01", "0.01"},
		{" 2.50 ", "2.5"},
		{"12,34,567", "1234567"}, // lakh-style grouping
		{"", "0"},
		{"abc", "0"},
		{"1.2.3", "0"},
		{"-45.5", "-45.5"},
	}
	for _, tc := range cases {
		got := ParseAmount(tc.in)
		if got.String() != tc.out {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.out)
		}
	}
}
