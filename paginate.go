package blog

import (
	"fmt"
	"strconv"
)

// PageWindow is one page of a post listing plus links to its neighbours.
type PageWindow struct {
	HasNewer bool    `json:"has_newer"`
	NewerURL string  `json:"newer_url"`
	HasOlder bool    `json:"has_older"`
	OlderURL string  `json:"older_url"`
	Entries  []*Post `json:"entries"`
}

// Paginator splits the posts of a directory into numbered pages.
// Every call rescans the directory.
type Paginator struct {
	parser *Parser
	dir    string
}

// NewPaginator returns a paginator over the posts in dir.
func NewPaginator(p *Parser, dir string) *Paginator {
	return &Paginator{parser: p, dir: dir}
}

// Page returns page pageID using the configured entries per page.
func (pg *Paginator) Page(pageID int) (*PageWindow, error) {
	return pg.Paginate(pageID, pg.parser.cfg.EntriesPerPage)
}

// Paginate returns page pageID (1-based) of pageSize posts.
//
// A zero pageSize puts every post on page 1; any other page is empty and has
// no links. A page past the end is empty but still links to the newer page.
func (pg *Paginator) Paginate(pageID, pageSize int) (*PageWindow, error) {
	if pageID < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidRange, pageID)
	}
	if pageSize < 0 {
		return nil, fmt.Errorf("%w: page size must be >= 0, got %d", ErrInvalidRange, pageSize)
	}

	w := &PageWindow{Entries: []*Post{}}
	if pageSize == 0 && pageID != 1 {
		return w, nil
	}

	files, err := ListPostFiles(pg.dir)
	if err != nil {
		return nil, err
	}
	total := len(files)

	// Pages past the end are empty; skip the multiplication so huge page
	// numbers cannot overflow.
	start, end := total, total
	if pageSize == 0 || pageID-1 <= total/pageSize {
		start = (pageID - 1) * pageSize
		end = min(start+pageSize, total)
	}

	if pageID > 1 {
		w.HasNewer = true
		w.NewerURL = PageURL(pageID - 1)
	}
	if end < total && end != 0 {
		w.HasOlder = true
		w.OlderURL = PageURL(pageID + 1)
	}

	if pageSize == 0 {
		end = total
	}
	w.Entries, err = pg.parser.ParsePostFiles(pg.dir, window(files, start, end))
	if err != nil {
		return nil, err
	}

	pg.parser.logger.Debug("paginated posts",
		"page", pageID, "size", pageSize, "entries", len(w.Entries), "total", total)
	return w, nil
}

// PageCount returns the number of non-empty pages for pageSize, at least 1.
func (pg *Paginator) PageCount(pageSize int) (int, error) {
	if pageSize < 0 {
		return 0, fmt.Errorf("%w: page size must be >= 0, got %d", ErrInvalidRange, pageSize)
	}
	files, err := ListPostFiles(pg.dir)
	if err != nil {
		return 0, err
	}
	if pageSize == 0 || len(files) == 0 {
		return 1, nil
	}
	return (len(files) + pageSize - 1) / pageSize, nil
}

// PageURL returns the path of listing page n: "/" for the first page and
// "/page/{n}" for the others.
func PageURL(n int) string {
	if n == 1 {
		return "/"
	}
	return "/page/" + strconv.Itoa(n)
}
