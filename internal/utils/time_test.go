package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone America/New_York",
			timezone: "America/New_York",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	got, err := ParseDateInLocation("2026-03-08", loc)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error = %v", err)
	}
	if got.Hour() != 0 || got.Day() != 8 || got.Location() != loc {
		t.Errorf("ParseDateInLocation() = %v, want midnight 2026-03-08 in %v", got, loc)
	}

	if _, err := ParseDateInLocation("03/08/2026", loc); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// 2026-03-08 is the spring-forward day in New York; only 23 hours elapse.
	before := time.Date(2026, 3, 7, 0, 0, 0, 0, loc)
	after := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)
	if got := DaysBetween(before, after); got != 2 {
		t.Errorf("DaysBetween() = %d, want 2", got)
	}
	if got := DaysBetween(after, before); got != -2 {
		t.Errorf("DaysBetween() reversed = %d, want -2", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 1, 8, 0, 0, 1, 0, time.UTC)
	b := time.Date(2026, 1, 8, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("expected same day")
	}
	if SameDay(b, c) {
		t.Error("expected different days")
	}
}

func TestStartOfWeek(t *testing.T) {
	// Wednesday 2026-01-07
	wed := time.Date(2026, 1, 7, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		first time.Weekday
		want  time.Time
	}{
		{"sunday start", time.Sunday, time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)},
		{"monday start", time.Monday, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"wednesday start", time.Wednesday, time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)},
		{"thursday start", time.Thursday, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(wed, tt.first); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays("mon, Wednesday,5")
	if err != nil {
		t.Fatalf("ParseWeekdays() error = %v", err)
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(got) != len(want) {
		t.Fatalf("ParseWeekdays() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseWeekdays()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := ParseWeekdays("mon,funday"); err == nil {
		t.Error("expected error for invalid weekday")
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") || !ValidateTimezone("") || !ValidateTimezone("UTC") {
		t.Error("expected valid timezones to pass")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("expected invalid timezone to fail")
	}
}
