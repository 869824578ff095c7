package main

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	blog "github.com/fangdaidai/blog-a"
)

// maxWorkers caps the automatic pool size.
const maxWorkers = 8

// pageDoc is one listing page in the pages output.
type pageDoc struct {
	Page int    `json:"page"`
	URL  string `json:"url"`
	*blog.PageWindow
}

// buildPages paginates every page with at most workers pages in flight.
// The first failure cancels the pages not yet started.
func buildPages(ctx context.Context, pg *blog.Paginator, pageSize, workers int) ([]pageDoc, error) {
	count, err := pg.PageCount(pageSize)
	if err != nil {
		return nil, err
	}

	docs := make([]pageDoc, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n := i + 1
			w, err := pg.Paginate(n, pageSize)
			if err != nil {
				return fmt.Errorf("page %d: %w", n, err)
			}
			docs[i] = pageDoc{Page: n, URL: blog.PageURL(n), PageWindow: w}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// resolvePoolSize determines the optimal pool size.
// Priority: explicit flag > BLOG_WORKERS > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return envWorkers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0)

	// Minimum 1, maximum 8
	if n < 1 {
		return 1
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}
