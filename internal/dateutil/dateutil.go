// Package dateutil parses timezone offsets and repairs post dates that lack
// a time of day or an offset.
package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors for date handling.
var (
	ErrInvalidTimezone   = errors.New("invalid timezone offset")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// offsetPattern matches "UTC+8:00", "UTC-5:30", "UTC+10:00".
var offsetPattern = regexp.MustCompile(`^UTC([+-])(\d{1,2}):(\d{2})$`)

// ParseTimezoneOffset converts "UTC±H:MM" into a fixed zone.
// The minutes take the sign of the hours: "UTC-5:30" is five and a half hours
// behind UTC.
func ParseTimezoneOffset(spec string) (*time.Location, error) {
	m := offsetPattern.FindStringSubmatch(spec)
	if m == nil {
		return nil, fmt.Errorf("%w: %q (want UTC±H:MM)", ErrInvalidTimezone, spec)
	}

	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if hours > 23 {
		return nil, fmt.Errorf("%w: %q has %d hours", ErrInvalidTimezone, spec, hours)
	}
	if minutes > 59 {
		return nil, fmt.Errorf("%w: %q has %d minutes", ErrInvalidTimezone, spec, minutes)
	}

	offset := hours*3600 + minutes*60
	if m[1] == "-" {
		offset = -offset
	}
	return time.FixedZone(spec, offset), nil
}

// DateTime is a point in time that may be missing its clock or its zone.
// Go times always carry a location, so the two flags record what the source
// actually specified.
type DateTime struct {
	Time     time.Time
	HasClock bool
	HasZone  bool
}

// Date returns a calendar date with neither clock nor zone.
func Date(year int, month time.Month, day int) DateTime {
	return DateTime{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Aware wraps t as a complete, zoned value.
func Aware(t time.Time) DateTime {
	return DateTime{Time: t, HasClock: true, HasZone: true}
}

// Normalize expands a pure date to midnight and attaches the zone parsed from
// fallbackSpec when dt has none. Values that already carry a zone keep it.
// fallbackSpec is only parsed when it is needed.
func Normalize(dt DateTime, fallbackSpec string) (DateTime, error) {
	t := dt.Time
	if !dt.HasClock {
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	if !dt.HasZone {
		loc, err := ParseTimezoneOffset(fallbackSpec)
		if err != nil {
			return DateTime{}, err
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	}
	return Aware(t), nil
}

// timestampPattern is the YAML 1.1 timestamp grammar, loosened to accept
// 1-2 digit months and days, a missing seconds field and "+0800" offsets.
var timestampPattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})` +
	`(?:(?:[Tt]|[ \t]+)(\d{1,2}):(\d{2})(?::(\d{2})(?:\.(\d*))?)?` +
	`(?:[ \t]*(Z|([+-])(\d{1,2})(?::?(\d{2}))?))?)?$`)

// ParseValue converts a decoded header value into a DateTime.
// Strings are matched against the YAML timestamp layouts; time.Time values
// are taken as complete.
func ParseValue(v any) (DateTime, error) {
	switch val := v.(type) {
	case time.Time:
		return Aware(val), nil
	case *time.Time:
		if val == nil {
			return DateTime{}, fmt.Errorf("%w: nil time", ErrInvalidDate)
		}
		return Aware(*val), nil
	case string:
		return parseString(val)
	default:
		return DateTime{}, fmt.Errorf("%w: unsupported value %v (%T)", ErrInvalidDate, v, v)
	}
}

func parseString(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	m := timestampPattern.FindStringSubmatch(s)
	if m == nil {
		return DateTime{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	n := func(i int) int {
		v, _ := strconv.Atoi(m[i])
		return v
	}

	year, month, day := n(1), n(2), n(3)
	dt := DateTime{HasClock: m[4] != "", HasZone: m[8] != ""}
	hour, minute, sec := n(4), n(5), n(6)
	if hour > 23 || minute > 59 || sec > 59 {
		return DateTime{}, fmt.Errorf("%w: %q has an out of range time", ErrInvalidDate, s)
	}

	var nsec int
	if frac := m[7]; frac != "" {
		frac = (frac + "000000000")[:9]
		nsec, _ = strconv.Atoi(frac)
	}

	loc := time.UTC
	if dt.HasZone && m[8] != "Z" {
		zh, zm := n(10), n(11)
		if zh > 23 || zm > 59 {
			return DateTime{}, fmt.Errorf("%w: %q has an out of range offset", ErrInvalidDate, s)
		}
		offset := zh*3600 + zm*60
		if m[9] == "-" {
			offset = -offset
		}
		loc = time.FixedZone("", offset)
	}

	dt.Time = time.Date(year, time.Month(month), day, hour, minute, sec, nsec, loc)
	if dt.Time.Day() != day || int(dt.Time.Month()) != month {
		return DateTime{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidDate, s)
	}
	return dt, nil
}

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is the listing format when none is given.
const DefaultDateFormat = "YYYY-MM-DD"

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// dateTokens maps user-friendly tokens to Go layout fragments, longest first.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// ParseDateFormat turns a format such as "DD/MM/YYYY" into a Go layout.
// Text inside brackets is kept literally: "[Posted] YYYY".
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := 0
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				b.WriteString(t.goFmt)
				n = len(t.token)
				break
			}
		}
		if n == 0 {
			b.WriteByte(format[i])
			n = 1
		}
		i += n
	}
	return b.String(), nil
}
