package blog

import (
	"strings"
	"time"

	"github.com/fangdaidai/blog-a/internal/dateutil"
)

// DateTime is a date that may lack a time of day or an offset.
type DateTime = dateutil.DateTime

// ParseTimezoneOffset converts "UTC±H:MM" into a fixed zone. The minutes take
// the sign of the hours.
func ParseTimezoneOffset(spec string) (*time.Location, error) {
	return dateutil.ParseTimezoneOffset(spec)
}

// NormalizeDate expands a pure date to midnight and attaches the fallback
// zone when dt has none. It is idempotent.
func NormalizeDate(dt DateTime, fallbackSpec string) (time.Time, error) {
	n, err := dateutil.Normalize(dt, fallbackSpec)
	if err != nil {
		return time.Time{}, err
	}
	return n.Time, nil
}

// FormatDate renders t with a preset name (iso, european, us, long) or a
// token format such as "DD/MM/YYYY".
func FormatDate(t time.Time, format string) (string, error) {
	if format == "" {
		format = dateutil.DefaultDateFormat
	}
	if preset, ok := dateutil.DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	layout, err := dateutil.ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
