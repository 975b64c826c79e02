package crawler

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kailas-cloud/coursedex/internal/domain/course"
)

// Entry is one course block found on a catalog page.
// Title and Description are lowercased.
type Entry struct {
	ID          course.ID
	Title       string
	Description string
	URL         string
}

// HasID reports whether a course identifier was parsed from the title.
func (e Entry) HasID() bool { return e.ID.Dept != "" && e.ID.Num != "" }

var titleIDPattern = regexp.MustCompile(`^([a-zA-Z]{2,5})[\s\x{00a0}]+(\d{3,5})\b`)

// ParseCourseID extracts the department and number from a course block
// title such as "CMSC 15100. Introduction to Computer Science I".
func ParseCourseID(title string) (course.ID, bool) {
	m := titleIDPattern.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return course.ID{}, false
	}
	return course.NewID(strings.ToUpper(m[1]), m[2]), true
}

// extractEntries collects the course blocks of a page. Titles and
// descriptions inside a main block, nested sequences included, are paired in
// document order; a block without both is skipped.
func extractEntries(doc *goquery.Document, pageURL string) []Entry {
	var out []Entry
	doc.Find("div.courseblock.main").Each(func(_ int, block *goquery.Selection) {
		titles := texts(block.Find("p.courseblocktitle"))
		descs := texts(block.Find("p.courseblockdesc"))
		n := min(len(titles), len(descs))
		for i := 0; i < n; i++ {
			e := Entry{Title: titles[i], Description: descs[i], URL: pageURL}
			if id, ok := ParseCourseID(titles[i]); ok {
				e.ID = id
			}
			out = append(out, e)
		}
	})
	return out
}

func texts(sel *goquery.Selection) []string {
	out := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.ToLower(strings.TrimSpace(s.Text())))
	})
	return out
}

// extractLinks returns the href of every anchor on the page, in document order.
func extractLinks(doc *goquery.Document) []string {
	var out []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			out = append(out, href)
		}
	})
	return out
}
