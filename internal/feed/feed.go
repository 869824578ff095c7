// Package feed writes an Atom 1.0 document for the newest posts.
package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	blog "github.com/fangdaidai/blog-a"
)

// ErrInvalidSiteURL indicates the site URL is missing or not absolute.
var ErrInvalidSiteURL = errors.New("site URL must be an absolute http(s) URL")

const atomNS = "http://www.w3.org/2005/Atom"

// Meta describes the feed as a whole.
type Meta struct {
	Title   string
	SiteURL string // "https://example.com/"
	Author  string
	Email   string

	// Generated is the feed's updated time when there are no posts.
	Generated time.Time
}

// Feed is an Atom feed document.
type Feed struct {
	XMLName xml.Name `xml:"feed"`
	Xmlns   string   `xml:"xmlns,attr"`
	ID      string   `xml:"id"`
	Title   string   `xml:"title"`
	Updated string   `xml:"updated"`
	Author  *Person  `xml:"author,omitempty"`
	Link    []Link   `xml:"link"`
	Entry   []Entry  `xml:"entry"`
}

// Entry is one post.
type Entry struct {
	ID        string  `xml:"id"`
	Title     string  `xml:"title"`
	Published string  `xml:"published"`
	Updated   string  `xml:"updated"`
	Author    *Person `xml:"author,omitempty"`
	Link      []Link  `xml:"link"`
	Content   CDATA   `xml:"content"`
}

// Person is an author element.
type Person struct {
	Name  string `xml:"name"`
	Email string `xml:"email,omitempty"`
}

// Link is a link element.
type Link struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr,omitempty"`
}

// CDATA is typed element content written as a CDATA section. The encoder
// splits any "]]>" inside Content.
type CDATA struct {
	Type    string `xml:"type,attr"`
	Content string `xml:",cdata"`
}

// ParseSiteURL parses an absolute http(s) site URL.
func ParseSiteURL(s string) (*url.URL, error) {
	base, err := url.Parse(s)
	if err != nil || !base.IsAbs() || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSiteURL, s)
	}
	return base, nil
}

// Build assembles a feed from posts, which should be newest first.
// Post URLs are resolved against meta.SiteURL.
func Build(meta Meta, posts []*blog.Post) (*Feed, error) {
	base, err := ParseSiteURL(meta.SiteURL)
	if err != nil {
		return nil, err
	}

	updated := meta.Generated
	f := &Feed{
		Xmlns: atomNS,
		ID:    base.String(),
		Title: meta.Title,
		Link: []Link{
			{Href: resolve(base, "feed.atom"), Rel: "self", Type: "application/atom+xml"},
			{Href: base.String(), Rel: "alternate", Type: "text/html"},
		},
		Entry: make([]Entry, 0, len(posts)),
	}
	if meta.Author != "" {
		f.Author = &Person{Name: meta.Author, Email: meta.Email}
	}

	for i, post := range posts {
		link := resolve(base, post.URL)
		entry := Entry{
			ID:        link,
			Title:     post.Title,
			Published: formatTime(post.Date),
			Updated:   formatTime(post.LastModified()),
			Link:      []Link{{Href: link, Rel: "alternate", Type: "text/html"}},
			Content: CDATA{
				Type:    "html",
				Content: post.Body,
			},
		}
		if post.Author != "" && post.Author != meta.Author {
			entry.Author = &Person{Name: post.Author, Email: post.Email}
		}
		f.Entry = append(f.Entry, entry)

		if i == 0 || post.LastModified().After(updated) {
			updated = post.LastModified()
		}
	}
	f.Updated = formatTime(updated)
	return f, nil
}

// WriteTo writes the XML declaration and the indented feed.
func (f *Feed) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(f); err != nil {
		return 0, fmt.Errorf("encoding feed: %w", err)
	}
	buf.WriteByte('\n')
	return buf.WriteTo(w)
}

func resolve(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return base.String()
	}
	return base.ResolveReference(u).String()
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
