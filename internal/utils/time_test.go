package utils

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/julianstephens/tinywins/internal/errors"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone America/New_York", timezone: "America/New_York", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
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

func TestParseLocalDateRoundTrip(t *testing.T) {
	zones := []string{"UTC", "America/Los_Angeles", "Pacific/Kiritimati", "Pacific/Pago_Pago", "Asia/Kolkata"}
	dates := []string{"2024-01-01", "2024-02-29", "2024-03-10", "2024-11-03", "2024-12-31", "1999-07-04"}

	for _, zone := range zones {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			t.Fatalf("LoadLocation(%q): %v", zone, err)
		}
		for _, s := range dates {
			d, err := ParseLocalDateIn(s, loc)
			if err != nil {
				t.Fatalf("ParseLocalDateIn(%q, %s) error: %v", s, zone, err)
			}
			if got := FormatLocalDate(d); got != s {
				t.Errorf("round trip in %s: got %q, want %q", zone, got, s)
			}
			if d.Hour() != 0 || d.Minute() != 0 {
				t.Errorf("ParseLocalDateIn(%q, %s) = %v, want local midnight", s, zone, d)
			}
		}
	}
}

func TestFormatThenParse(t *testing.T) {
	in := time.Date(2024, time.March, 5, 23, 30, 0, 0, time.Local)
	d, err := ParseLocalDate(FormatLocalDate(in))
	if err != nil {
		t.Fatalf("ParseLocalDate() error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.March || d.Day() != 5 {
		t.Errorf("got %v, want 2024-03-05", d)
	}
}

func TestParseLocalDateInvalid(t *testing.T) {
	tests := []string{
		"",
		"2024-3-5",
		"2024/03/05",
		"24-03-05",
		"2024-13-01",
		"2024-00-10",
		"2024-02-30",
		"2023-02-29",
		"2024-04-31",
		"2024-03-00",
		"2024-03-05T00:00:00Z",
		"abcd-ef-gh",
		"undefined",
	}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := ParseLocalDate(s)
			if !errors.Is(err, apperrors.ErrInvalidFormat) {
				t.Errorf("ParseLocalDate(%q) error = %v, want ErrInvalidFormat", s, err)
			}
		})
	}
}

func TestFormatLocalDatePadding(t *testing.T) {
	d := time.Date(987, time.January, 2, 0, 0, 0, 0, time.UTC)
	if got := FormatLocalDate(d); got != "0987-01-02" {
		t.Errorf("FormatLocalDate() = %q, want %q", got, "0987-01-02")
	}
}

func TestWeekRange(t *testing.T) {
	// Wednesday
	now := time.Date(2024, time.March, 6, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		offset    int
		wantStart string
		wantEnd   string
	}{
		{name: "this week", offset: 0, wantStart: "2024-03-03", wantEnd: "2024-03-09"},
		{name: "last week", offset: -1, wantStart: "2024-02-25", wantEnd: "2024-03-02"},
		{name: "next week", offset: 1, wantStart: "2024-03-10", wantEnd: "2024-03-16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekRange(now, tt.offset)
			if got := FormatLocalDate(start); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := FormatLocalDate(end); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
			if start.Weekday() != time.Sunday || end.Weekday() != time.Saturday {
				t.Errorf("range %v..%v is not Sunday..Saturday", start, end)
			}
			if start.Hour() != 0 || start.Nanosecond() != 0 {
				t.Errorf("start = %v, want 00:00:00.000", start)
			}
			if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 || end.Nanosecond() != int(999*time.Millisecond) {
				t.Errorf("end = %v, want 23:59:59.999", end)
			}
		})
	}
}

func TestWeekRangeOnSundayAndSaturday(t *testing.T) {
	sunday := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	start, _ := WeekRange(sunday, 0)
	if FormatLocalDate(start) != "2024-03-03" {
		t.Errorf("Sunday start = %s", FormatLocalDate(start))
	}

	saturday := time.Date(2024, time.March, 9, 23, 0, 0, 0, time.UTC)
	start, end := WeekRange(saturday, 0)
	if FormatLocalDate(start) != "2024-03-03" || FormatLocalDate(end) != "2024-03-09" {
		t.Errorf("Saturday range = %s..%s", FormatLocalDate(start), FormatLocalDate(end))
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2024, 0, 31},
		{2024, 1, 29},
		{2023, 1, 28},
		{1900, 1, 28},
		{2000, 1, 29},
		{2024, 3, 30},
		{2024, 11, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestFirstWeekdayOfMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2024, 1, 4},  // Feb 2024 starts on Thursday
		{2024, 8, 0},  // Sep 2024 starts on Sunday
		{2025, 1, 6},  // Feb 2025 starts on Saturday
		{2024, 11, 0}, // Dec 2024 starts on Sunday
	}
	for _, tt := range tests {
		if got := FirstWeekdayOfMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("FirstWeekdayOfMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("") || !ValidateTimezone("Europe/London") {
		t.Error("valid timezone rejected")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("invalid timezone accepted")
	}
}
