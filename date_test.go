package blog

import (
	"errors"
	"testing"
	"time"

	"github.com/fangdaidai/blog-a/internal/dateutil"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		format  string
		want    string
		wantErr error
	}{
		{"", "2024-03-05", nil},
		{"iso", "2024-03-05", nil},
		{"LONG", "March 5, 2024", nil},
		{"european", "05/03/2024", nil},
		{"us", "03/05/2024", nil},
		{"[Posted] MMM D", "Posted Mar 5", nil},
		{"[oops YYYY", "", ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		got, err := FormatDate(fixed, tt.format)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FormatDate(%q) error = %v, want %v", tt.format, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("FormatDate(%q) unexpected error: %v", tt.format, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	got, err := NormalizeDate(dateutil.Date(2023, 3, 9), "UTC-5:30")
	if err != nil {
		t.Fatalf("NormalizeDate() unexpected error: %v", err)
	}
	if _, off := got.Zone(); off != -330*60 {
		t.Errorf("offset = %d, want %d", off, -330*60)
	}
	if got.Hour() != 0 || got.Day() != 9 {
		t.Errorf("NormalizeDate() = %v, want midnight on the 9th", got)
	}

	again, err := NormalizeDate(dateutil.Aware(got), "UTC+8:00")
	if err != nil {
		t.Fatalf("NormalizeDate() unexpected error: %v", err)
	}
	if !again.Equal(got) {
		t.Errorf("NormalizeDate() not idempotent: %v != %v", again, got)
	}

	if _, err := NormalizeDate(dateutil.Date(2023, 3, 9), "bogus"); !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("NormalizeDate() error = %v, want ErrInvalidTimezone", err)
	}
}

func TestParseTimezoneOffset(t *testing.T) {
	t.Parallel()

	for spec, want := range map[string]int{"UTC+5:30": 330, "UTC-5:30": -330, "UTC-0:30": -30} {
		loc, err := ParseTimezoneOffset(spec)
		if err != nil {
			t.Fatalf("ParseTimezoneOffset(%q) unexpected error: %v", spec, err)
		}
		_, off := time.Date(2023, 1, 1, 0, 0, 0, 0, loc).Zone()
		if off != want*60 {
			t.Errorf("ParseTimezoneOffset(%q) offset = %d min, want %d", spec, off/60, want)
		}
	}
}
