package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	blog "github.com/fangdaidai/blog-a"
	"github.com/fangdaidai/blog-a/internal/feed"
	"github.com/fangdaidai/blog-a/internal/fileutil"
	"github.com/fangdaidai/blog-a/internal/pipeline"
)

// runList prints one line per post: date, URL, title.
func runList(ctx context.Context, p *blog.Parser, flags *cmdFlags, args []string, env *Environment) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: list takes no arguments, got %q", ErrInvalidArgs, args)
	}
	// Reject a bad format before touching the posts directory.
	if _, err := blog.FormatDate(env.Now(), flags.dateFormat); err != nil {
		return err
	}

	dir := env.Config.PostsDir
	files, err := blog.ListPostFiles(dir)
	if err != nil {
		return err
	}
	if flags.limit > 0 {
		files = files[:min(flags.limit, len(files))]
	}

	var b bytes.Buffer
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		post, err := p.ParseHeader(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		date, err := blog.FormatDate(post.Date, flags.dateFormat)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\n", date, post.URL, post.Title)
	}
	_, err = b.WriteTo(env.Stdout)
	return err
}

// runPost parses one post file and emits it as JSON.
func runPost(p *blog.Parser, flags *cmdFlags, args []string, env *Environment) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: post takes exactly one file, got %d", ErrInvalidArgs, len(args))
	}
	post, err := p.ParseFile(args[0])
	if err != nil {
		return err
	}
	return emitJSON(env, flags.output, post)
}

// runPage emits one listing page as JSON.
func runPage(p *blog.Parser, flags *cmdFlags, args []string, env *Environment) error {
	pageID := 1
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: page number must be an integer, got %q", ErrInvalidArgs, args[0])
		}
		pageID = n
	default:
		return fmt.Errorf("%w: page takes at most one page number, got %d", ErrInvalidArgs, len(args))
	}

	w, err := blog.NewPaginator(p, env.Config.PostsDir).Page(pageID)
	if err != nil {
		return err
	}
	return emitJSON(env, flags.output, w)
}

// runPages emits every listing page as a JSON array.
func runPages(ctx context.Context, p *blog.Parser, flags *cmdFlags, args []string, env *Environment, logger *slog.Logger, workers int) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: pages takes no arguments, got %q", ErrInvalidArgs, args)
	}

	pg := blog.NewPaginator(p, env.Config.PostsDir)
	start := env.Now()
	docs, err := buildPages(ctx, pg, p.Config().EntriesPerPage, workers)
	if err != nil {
		return err
	}
	logger.Info("built pages", "pages", len(docs), "workers", workers, "elapsed", env.Now().Sub(start))
	return emitJSON(env, flags.output, docs)
}

// runFeed emits an Atom feed of the newest posts.
func runFeed(p *blog.Parser, flags *cmdFlags, args []string, env *Environment, logger *slog.Logger) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: feed takes no arguments, got %q", ErrInvalidArgs, args)
	}
	cfg := env.Config
	// Fail on a bad site URL before rendering any post.
	if _, err := feed.ParseSiteURL(cfg.Site.URL); err != nil {
		return err
	}

	limit := cfg.Feed.Entries
	if flags.limit > 0 {
		limit = flags.limit
	}
	files, err := blog.ListPostFiles(cfg.PostsDir)
	if err != nil {
		return err
	}
	posts, err := p.ParsePostFiles(cfg.PostsDir, files[:min(limit, len(files))])
	if err != nil {
		return err
	}

	f, err := feed.Build(feed.Meta{
		Title:     cfg.Site.Title,
		SiteURL:   cfg.Site.URL,
		Author:    cfg.Author,
		Email:     cfg.Email,
		Generated: env.Now(),
	}, posts)
	if err != nil {
		return err
	}

	var b bytes.Buffer
	if _, err := f.WriteTo(&b); err != nil {
		return err
	}
	logger.Debug("built feed", "entries", len(posts))
	return emit(env, flags.output, b.Bytes())
}

// runCSS emits the stylesheet for the configured code style.
func runCSS(flags *cmdFlags, args []string, env *Environment) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: css takes no arguments, got %q", ErrInvalidArgs, args)
	}
	css, err := pipeline.StyleCSS(env.Config.Markdown.CodeStyle)
	if err != nil {
		return err
	}
	return emit(env, flags.output, []byte(css))
}

// emitJSON encodes v as indented JSON and emits it.
// HTML in post bodies is left unescaped.
func emitJSON(env *Environment, output string, v any) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return emit(env, output, b.Bytes())
}

// emit writes data to stdout, or atomically to output when set.
func emit(env *Environment, output string, data []byte) error {
	if output == "" {
		_, err := env.Stdout.Write(data)
		return err
	}
	if err := fileutil.WriteFileAtomic(output, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, output, err)
	}
	return nil
}
