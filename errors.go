package blog

import (
	"errors"

	"github.com/fangdaidai/blog-a/internal/dateutil"
	"github.com/fangdaidai/blog-a/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Date errors, shared with internal/dateutil so callers can match either.
	ErrInvalidTimezone   = dateutil.ErrInvalidTimezone
	ErrInvalidDate       = dateutil.ErrInvalidDate
	ErrInvalidDateFormat = dateutil.ErrInvalidDateFormat

	// Post file errors.
	ErrInvalidFilename = errors.New("invalid post filename")
	ErrReadPostsDir    = errors.New("failed to read posts directory")
	ErrReadPost        = errors.New("failed to read post")

	// Parse errors.
	ErrMissingSeparator = errors.New("post has no blank line between header and body")
	ErrInvalidHeader    = errors.New("invalid post header")

	// Render errors.
	ErrRender          = errors.New("failed to render post body")
	ErrUnknownLanguage = pipeline.ErrUnknownLanguage

	// Argument errors.
	ErrInvalidRange  = errors.New("invalid range")
	ErrInvalidConfig = errors.New("invalid configuration")
)
