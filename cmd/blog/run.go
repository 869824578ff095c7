package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	flag "github.com/spf13/pflag"

	blog "github.com/fangdaidai/blog-a"
	"github.com/fangdaidai/blog-a/internal/config"
	"github.com/fangdaidai/blog-a/internal/feed"
	"github.com/fangdaidai/blog-a/internal/hints"
	"github.com/fangdaidai/blog-a/internal/pipeline"
)

// Sentinel errors for CLI operations.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidFlag    = errors.New("invalid flag value")
	ErrInvalidArgs    = errors.New("invalid arguments")
	ErrWriteOutput    = errors.New("failed to write output")
)

// commands lists the commands that take flags.
var commands = []string{"list", "post", "page", "pages", "feed", "css"}

// isCommand reports whether arg names a command.
func isCommand(arg string) bool {
	return arg == "version" || arg == "help" || slices.Contains(commands, arg)
}

// runMain dispatches args to a command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "help", "-h", "--help":
		return runHelp(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "blog-a %s\n", Version)
		return ExitSuccess
	}

	if !isCommand(cmd) {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	flags, positional, err := parseFlags(cmd, rest, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	if err := run(ctx, cmd, flags, positional, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, configName(flags)))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// run loads the configuration and executes cmd.
func run(ctx context.Context, cmd string, flags *cmdFlags, args []string, env *Environment) error {
	if err := validateFlags(flags); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	logger := newLogger(env, flags.common, envCfg)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(configName(flags), envCfg)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	env.Config = cfg
	logger.Debug("config resolved",
		"postsDir", cfg.PostsDir, "timezone", cfg.Timezone, "entriesPerPage", cfg.EntriesPerPage())

	if cmd == "css" {
		return runCSS(flags, args, env)
	}

	parser, err := newParser(cfg, logger)
	if err != nil {
		return err
	}

	switch cmd {
	case "list":
		return runList(ctx, parser, flags, args, env)
	case "post":
		return runPost(parser, flags, args, env)
	case "page":
		return runPage(parser, flags, args, env)
	case "pages":
		return runPages(ctx, parser, flags, args, env, logger, resolvePoolSize(flags.workers, envCfg.Workers))
	case "feed":
		return runFeed(parser, flags, args, env, logger)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

// configName returns the config requested by --config or BLOG_CONFIG, or ""
// when neither is set.
func configName(flags *cmdFlags) string {
	if flags != nil && flags.common.config != "" {
		return flags.common.config
	}
	return os.Getenv("BLOG_CONFIG")
}

// loadConfig loads the named config and fills unset fields from the
// environment. Without a name, blog.yaml is optional.
func loadConfig(name string, envCfg *envConfig) (*config.Config, error) {
	explicit := name != ""
	if !explicit {
		name = config.DefaultConfigName
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if explicit || !errors.Is(err, config.ErrConfigNotFound) {
			return nil, err
		}
		cfg = config.DefaultConfig()
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags applies CLI flag values over config.
func mergeFlags(flags *cmdFlags, cfg *config.Config) {
	if flags.common.dir != "" {
		cfg.PostsDir = flags.common.dir
	}
	if flags.render.style != "" {
		cfg.Markdown.CodeStyle = flags.render.style
	}
	if flags.render.lenient {
		strict := false
		cfg.Markdown.StrictLanguages = &strict
	}
	if flags.sizeSet {
		n := flags.size
		cfg.EntryCountOnePage = &n
	}
}

// newLogger builds the stderr logger. Flags win over BLOG_LOG_LEVEL.
func newLogger(env *Environment, f commonFlags, envCfg *envConfig) *slog.Logger {
	level := slog.LevelInfo
	if envCfg.LogLevelSet {
		level = envCfg.LogLevel
	}
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level}))
}

// newParser builds the post parser for cfg.
func newParser(cfg *config.Config, logger *slog.Logger) (*blog.Parser, error) {
	opts := []blog.Option{
		blog.WithLogger(logger),
		blog.WithCodeStyle(cfg.Markdown.CodeStyle),
	}
	if !cfg.StrictLanguages() {
		opts = append(opts, blog.WithLenientHighlighting())
	}
	return blog.NewParser(cfg.Blog(), opts...)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		if configName == "" {
			configName = config.DefaultConfigName
		}
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, blog.ErrInvalidTimezone):
		return hints.ForTimezone()
	case errors.Is(err, blog.ErrMissingSeparator):
		return hints.ForMissingSeparator()
	case errors.Is(err, blog.ErrUnknownLanguage):
		return hints.ForUnknownLanguage()
	case errors.Is(err, blog.ErrReadPostsDir):
		return hints.ForPostsDir()
	case errors.Is(err, pipeline.ErrUnknownStyle):
		return hints.ForCodeStyleNotFound(pipeline.StyleNames())
	case errors.Is(err, feed.ErrInvalidSiteURL):
		return hints.ForSiteURL()
	}
	return ""
}
