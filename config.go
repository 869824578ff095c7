package blog

import (
	"fmt"

	"github.com/fangdaidai/blog-a/internal/dateutil"
)

// Default values applied by DefaultConfig.
const (
	DefaultTimezone       = "UTC+0:00"
	DefaultEntriesPerPage = 10
	DefaultLayout         = "post"
)

// Config is the read-only site configuration a Parser works with.
// It is copied at construction and never mutated afterwards.
type Config struct {
	Author string
	Email  string

	// Timezone is the fallback offset for dates without one, as "UTC±H:MM".
	Timezone string

	// EntriesPerPage is the page size used by Paginator.Page.
	// Zero puts every post on page 1.
	EntriesPerPage int
}

// DefaultConfig returns a configuration with UTC dates and ten posts per page.
func DefaultConfig() Config {
	return Config{
		Timezone:       DefaultTimezone,
		EntriesPerPage: DefaultEntriesPerPage,
	}
}

// Validate checks the timezone syntax and the page size.
func (c Config) Validate() error {
	if _, err := dateutil.ParseTimezoneOffset(c.Timezone); err != nil {
		return fmt.Errorf("%w: timezone: %w", ErrInvalidConfig, err)
	}
	if c.EntriesPerPage < 0 {
		return fmt.Errorf("%w: entries per page must be >= 0, got %d", ErrInvalidConfig, c.EntriesPerPage)
	}
	return nil
}
