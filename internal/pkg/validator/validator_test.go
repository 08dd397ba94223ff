package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	valid := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"13:30", 810},
		{"23:59", 1439},
	}
	invalid := []string{"24:00", "12:60", "9:00", "09:0", "0900", "ab:cd", "", "09:00:00", "-1:00"}
	for _, c := range valid {
		got, ok := ParseTimeOfDay(c.input)
		if !ok || got != c.want {
			t.Errorf("ParseTimeOfDay(%q) = (%d, %v), want (%d, true)", c.input, got, ok, c.want)
		}
	}
	for _, s := range invalid {
		if _, ok := ParseTimeOfDay(s); ok {
			t.Errorf("ParseTimeOfDay(%q) ok = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "01-01-2023", "2023/01/01", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsNonNegativeNumber(t *testing.T) {
	valid := []string{"0", "12.5", " 3 ", "0.00"}
	invalid := []string{"-1", "-0.01", "abc", ""}
	for _, s := range valid {
		if !IsNonNegativeNumber(s) {
			t.Errorf("IsNonNegativeNumber(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNonNegativeNumber(s) {
			t.Errorf("IsNonNegativeNumber(%q) = true, want false", s)
		}
	}
}
