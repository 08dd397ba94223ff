package payweek

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestContaining(t *testing.T) {
	cases := []struct {
		input    time.Time
		wantFrom time.Time
	}{
		// 2026-08-27 is a Thursday.
		{date(2026, time.August, 27), date(2026, time.August, 27)},
		{date(2026, time.August, 28), date(2026, time.August, 27)}, // Friday
		{date(2026, time.August, 31), date(2026, time.August, 27)}, // Monday
		{date(2026, time.September, 2), date(2026, time.August, 27)}, // Wednesday, last day
		{date(2026, time.September, 3), date(2026, time.September, 3)}, // next Thursday
	}
	for _, c := range cases {
		got := Containing(c.input)
		if !got.From.Equal(c.wantFrom) {
			t.Errorf("Containing(%s).From = %s, want %s", c.input.Format("2006-01-02"), got.From.Format("2006-01-02"), c.wantFrom.Format("2006-01-02"))
		}
		if !got.To.Equal(c.wantFrom.AddDate(0, 0, 6)) {
			t.Errorf("Containing(%s).To = %s, want %s", c.input.Format("2006-01-02"), got.To.Format("2006-01-02"), c.wantFrom.AddDate(0, 0, 6).Format("2006-01-02"))
		}
	}
}

func TestContains(t *testing.T) {
	w := Containing(date(2026, time.August, 27))
	if !w.Contains(date(2026, time.August, 27)) {
		t.Error("week should contain its own Thursday")
	}
	if !w.Contains(date(2026, time.September, 2)) {
		t.Error("week should contain its closing Wednesday")
	}
	if w.Contains(date(2026, time.September, 3)) {
		t.Error("week should not contain the next Thursday")
	}
	if w.Contains(date(2026, time.August, 26)) {
		t.Error("week should not contain the prior Wednesday")
	}
}

func TestContainingDropsTimeOfDay(t *testing.T) {
	w := Containing(time.Date(2026, time.August, 28, 17, 45, 3, 0, time.UTC))
	if !w.From.Equal(date(2026, time.August, 27)) {
		t.Errorf("From = %s, want 2026-08-27", w.From)
	}
}
