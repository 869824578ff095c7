package blog

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fangdaidai/blog-a/internal/dateutil"
)

// postFilePattern matches "{YYYY|YY}-{M|MM}-{D|DD}-{slug}.md|.markdown".
var postFilePattern = regexp.MustCompile(
	`^(\d{4}|\d{2})-(1[0-2]|0?[1-9])-([12][0-9]|3[01]|0?[1-9])-([\p{L}\p{N}_-]+)\.(md|markdown)$`,
)

// PostFilename holds the parts of a post file name, as written.
type PostFilename struct {
	Name  string
	Year  string
	Month string
	Day   string
	Slug  string
	Ext   string
}

// ParsePostFilename splits a post file name into its date, slug and extension.
func ParsePostFilename(name string) (PostFilename, error) {
	m := postFilePattern.FindStringSubmatch(name)
	if m == nil {
		return PostFilename{}, fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return PostFilename{
		Name:  name,
		Year:  m[1],
		Month: m[2],
		Day:   m[3],
		Slug:  m[4],
		Ext:   m[5],
	}, nil
}

// IsPostFilename reports whether name follows the post naming convention.
func IsPostFilename(name string) bool {
	return postFilePattern.MatchString(name)
}

// Date returns the calendar date in the name. Two-digit years are taken as
// 20YY. Days past the end of the month (2023-02-30) are rejected.
func (f PostFilename) Date() (DateTime, error) {
	year, _ := strconv.Atoi(f.Year)
	// "23" dates to 2023; URL keeps the written "23".
	if len(f.Year) == 2 {
		year += 2000
	}
	month, _ := strconv.Atoi(f.Month)
	day, _ := strconv.Atoi(f.Day)

	d := dateutil.Date(year, time.Month(month), day)
	if d.Time.Day() != day || int(d.Time.Month()) != month {
		return DateTime{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidFilename, f.Name)
	}
	return d, nil
}

// Title capitalizes each dash-separated word of the slug: the first rune is
// title-cased and the rest lower-cased, so "2nd" stays "2nd".
func (f PostFilename) Title() string {
	lower := cases.Lower(language.Und)
	words := strings.Split(f.Slug, "-")
	for i, w := range words {
		words[i] = capitalize(w, lower)
	}
	return strings.Join(words, " ")
}

func capitalize(word string, lower cases.Caser) string {
	r, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return word
	}
	return string(unicode.ToTitle(r)) + lower.String(word[size:])
}

// URL returns "/post/{year}/{month}/{day}/{slug}" using the name's own text.
func (f PostFilename) URL() string {
	return strings.Join([]string{"/post", f.Year, f.Month, f.Day, f.Slug}, "/")
}

// ListPostFiles returns the post file names in dir, newest first.
//
// Names are sorted in descending lexicographic order, which is chronological
// only when authors zero-pad months and days consistently. Files are not
// opened. Directories and non-matching names are skipped.
func ListPostFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadPostsDir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsPostFilename(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	slices.Sort(files)
	slices.Reverse(files)
	return files, nil
}
