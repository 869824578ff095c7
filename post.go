package blog

import (
	"bytes"
	"encoding/json"
	"maps"
	"time"
)

// Post is one parsed post, ready for a template.
type Post struct {
	Layout string
	Author string
	Email  string
	Title  string
	URL    string

	// Date is always zoned. It comes from the file name unless the header
	// sets it.
	Date time.Time

	// Updated is nil unless the header sets it.
	Updated *time.Time

	// Body is the rendered HTML. A header "body" key never reaches it.
	Body string

	// Extra holds header keys the parser does not recognize, verbatim.
	Extra map[string]any

	// Filename is the base name of the source file.
	Filename string
}

// Map returns the post as a flat template entry: extra header keys first,
// then the recognized keys, which win on collision. "updated" is present
// only when set.
func (p *Post) Map() map[string]any {
	m := make(map[string]any, len(p.Extra)+8)
	maps.Copy(m, p.Extra)

	m["layout"] = p.Layout
	m["author"] = p.Author
	m["email"] = p.Email
	m["title"] = p.Title
	m["url"] = p.URL
	m["date"] = p.Date
	m["body"] = p.Body
	if p.Updated != nil {
		m["updated"] = *p.Updated
	}
	return m
}

// MarshalJSON encodes the template entry returned by Map. The HTML body is
// not escaped.
func (p *Post) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p.Map()); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}

// LastModified returns Updated when set, Date otherwise.
func (p *Post) LastModified() time.Time {
	if p.Updated != nil {
		return *p.Updated
	}
	return p.Date
}
