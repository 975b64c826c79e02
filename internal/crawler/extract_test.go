package crawler

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/coursedex/internal/domain/course"
)

func TestParseCourseID(t *testing.T) {
	tests := []struct {
		title string
		want  course.ID
		ok    bool
	}{
		{"CMSC 15100. Introduction to Computer Science I.", course.NewID("CMSC", "15100"), true},
		{"cmsc 15100. introduction", course.NewID("CMSC", "15100"), true},
		{"MATH 19500. Methods", course.NewID("MATH", "19500"), true},
		{"Introduction to Computer Science", course.ID{}, false},
		{"", course.ID{}, false},
	}
	for _, tc := range tests {
		got, ok := ParseCourseID(tc.title)
		assert.Equal(t, tc.ok, ok, tc.title)
		assert.Equal(t, tc.want, got, tc.title)
	}
}

func TestExtractEntries_SkipsIncompleteBlocks(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
<div class="courseblock main"><p class="courseblocktitle">CMSC 10000. Lonely.</p></div>
<div class="courseblock"><p class="courseblocktitle">CMSC 10100. Not main.</p><p class="courseblockdesc">x</p></div>`))
	require.NoError(t, err)

	assert.Empty(t, extractEntries(doc, "http://example.org/"))
}

func TestResolveAndFollowable(t *testing.T) {
	base, err := url.Parse("http://www.cs.uchicago.edu/catalog/index.html")
	require.NoError(t, err)

	tests := []struct {
		href   string
		want   string
		follow bool
	}{
		{"math.html#sec", "http://www.cs.uchicago.edu/catalog/math.html", true},
		{"../people/", "http://www.cs.uchicago.edu/people/", true},
		{"http://cs.uchicago.edu/a.htm", "http://cs.uchicago.edu/a.htm", true},
		{"https://evil-cs.uchicago.edu.example.com/", "https://evil-cs.uchicago.edu.example.com/", false},
		{"mailto:someone@cs.uchicago.edu", "mailto:someone@cs.uchicago.edu", false},
		{"/files/syllabus.pdf", "http://www.cs.uchicago.edu/files/syllabus.pdf", false},
	}
	for _, tc := range tests {
		u, ok := resolve(base, tc.href)
		require.True(t, ok, tc.href)
		assert.Equal(t, tc.want, u.String(), tc.href)
		assert.Equal(t, tc.follow, followable(u, "cs.uchicago.edu"), tc.href)
	}

	_, ok := resolve(base, "   ")
	assert.False(t, ok)
}
