// Package blog parses the posts of a static blog and pages through them.
//
// # Post Files
//
// A post lives in a file named after its date and slug:
//
//	2023-03-09-my-post.md
//	23-3-9-my-post.markdown
//
// Months and days may drop their leading zero, but listings are sorted by
// name, so mixing padded and unpadded names breaks chronological order.
//
// The file holds a YAML header, a blank line and a Markdown body:
//
//	title: Hello, World
//	date: 2023-03-09 08:30
//	tags: [go, blog]
//
//	Body text with `code`.
//
// The header may be empty but the blank line is required. Header keys
// override the defaults taken from the file name; unknown keys end up in
// Post.Extra.
//
// # Quick Start
//
//	cfg := blog.DefaultConfig()
//	cfg.Author = "Jane"
//	cfg.Timezone = "UTC+8:00"
//
//	p, err := blog.NewParser(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := blog.NewPaginator(p, "posts").Page(1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, post := range page.Entries {
//	    fmt.Println(post.Title, post.URL)
//	}
//
// # Dates
//
// Every Post.Date (and Post.Updated when set) carries an offset. A header
// date without a time of day means midnight; a date without an offset gets
// the Config.Timezone offset, written "UTC+8:00" or "UTC-5:30".
//
// # Errors
//
// Parsing is fail-fast: the first bad file aborts a batch. Match errors with
// errors.Is against the sentinels in this package, such as
// ErrMissingSeparator, ErrInvalidHeader and ErrUnknownLanguage.
package blog
