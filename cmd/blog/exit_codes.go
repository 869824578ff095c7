package main

import (
	"errors"
	"os"

	blog "github.com/fangdaidai/blog-a"
	"github.com/fangdaidai/blog-a/internal/config"
	"github.com/fangdaidai/blog-a/internal/feed"
	"github.com/fangdaidai/blog-a/internal/pipeline"
)

// Exit codes for the blog CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, arguments, or config
	ExitIO      = 3 // Posts directory or file unreadable, output not writable
	ExitContent = 4 // A post file failed to parse or render
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Content errors (exit 4)
	if errors.Is(err, blog.ErrInvalidFilename) ||
		errors.Is(err, blog.ErrMissingSeparator) ||
		errors.Is(err, blog.ErrInvalidHeader) ||
		errors.Is(err, blog.ErrInvalidDate) ||
		errors.Is(err, blog.ErrRender) ||
		errors.Is(err, blog.ErrUnknownLanguage) {
		return ExitContent
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, blog.ErrReadPostsDir) ||
		errors.Is(err, blog.ErrReadPost) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, blog.ErrInvalidConfig) ||
		errors.Is(err, blog.ErrInvalidTimezone) ||
		errors.Is(err, blog.ErrInvalidDateFormat) ||
		errors.Is(err, blog.ErrInvalidRange) ||
		errors.Is(err, pipeline.ErrUnknownStyle) ||
		errors.Is(err, feed.ErrInvalidSiteURL) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrInvalidArgs) {
		return ExitUsage
	}

	return ExitGeneral
}
