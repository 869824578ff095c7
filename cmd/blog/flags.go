package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	dir     string
	quiet   bool
	verbose bool
}

// renderFlags holds Markdown rendering flags.
type renderFlags struct {
	lenient bool
	style   string
}

// cmdFlags holds all flags for a command. Each command registers only the
// flags it reads.
type cmdFlags struct {
	common     commonFlags
	render     renderFlags
	output     string
	size       int
	sizeSet    bool // --size given; 0 is a valid size
	workers    int
	limit      int
	dateFormat string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.dir, "dir", "d", "", "posts directory")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addRenderFlags adds Markdown rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.lenient, "lenient", false, "render code in unknown languages as plain text")
	fs.StringVar(&f.style, "style", "", "chroma style for highlighted code")
}

// newFlagSet registers the flags of cmd; --help prints to usage.
func newFlagSet(cmd string, usage io.Writer) (*flag.FlagSet, *cmdFlags, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &cmdFlags{}

	addCommonFlags(fs, &f.common)

	switch cmd {
	case "list":
		fs.IntVarP(&f.limit, "limit", "n", 0, "newest posts to list (0 = all)")
		fs.StringVar(&f.dateFormat, "date-format", "", "date format or preset: iso, european, us, long")
	case "post":
		addRenderFlags(fs, &f.render)
		fs.StringVarP(&f.output, "output", "o", "", "write JSON to file")
	case "page":
		addRenderFlags(fs, &f.render)
		fs.IntVar(&f.size, "size", 0, "posts per page (0 = all on page 1)")
		fs.StringVarP(&f.output, "output", "o", "", "write JSON to file")
	case "pages":
		addRenderFlags(fs, &f.render)
		fs.IntVar(&f.size, "size", 0, "posts per page (0 = all on page 1)")
		fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
		fs.StringVarP(&f.output, "output", "o", "", "write JSON to file")
	case "feed":
		addRenderFlags(fs, &f.render)
		fs.IntVarP(&f.limit, "limit", "n", 0, "newest posts in the feed (0 = config)")
		fs.StringVarP(&f.output, "output", "o", "", "write Atom XML to file")
	case "css":
		fs.StringVar(&f.render.style, "style", "", "chroma style name")
		fs.StringVarP(&f.output, "output", "o", "", "write CSS to file")
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	fs.Usage = func() { printCommandUsage(usage, cmd) }
	return fs, f, nil
}

// parseFlags parses the flags of cmd and returns positional args.
func parseFlags(cmd string, args []string, usage io.Writer) (*cmdFlags, []string, error) {
	fs, f, err := newFlagSet(cmd, usage)
	if err != nil {
		return nil, nil, err
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.sizeSet = fs.Changed("size")

	return f, fs.Args(), nil
}

// validateFlags rejects out-of-range numeric flags.
func validateFlags(f *cmdFlags) error {
	if f.size < 0 {
		return fmt.Errorf("%w: --size must be >= 0, got %d", ErrInvalidFlag, f.size)
	}
	if f.workers < 0 {
		return fmt.Errorf("%w: --workers must be >= 0, got %d", ErrInvalidFlag, f.workers)
	}
	if f.limit < 0 {
		return fmt.Errorf("%w: --limit must be >= 0, got %d", ErrInvalidFlag, f.limit)
	}
	if f.common.quiet && f.common.verbose {
		return fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrInvalidFlag)
	}
	return nil
}
