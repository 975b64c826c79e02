package discovery

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/coursedex/internal/domain"
	"github.com/kailas-cloud/coursedex/internal/domain/course"
)

func TestTextSearch_Conjunctive(t *testing.T) {
	src := newIndexSource(map[string][]course.ID{
		"programming": {id("CMSC", "151"), id("CMSC", "221"), id("MATH", "195")},
		"languages":   {id("CMSC", "221"), id("LING", "201"), id("MATH", "195")},
	})
	ts := NewTextSearch(src)

	got, err := ts.Search(context.Background(), "programming languages")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []course.ID{id("CMSC", "221"), id("MATH", "195")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTextSearch_UnknownWordMatchesNothing(t *testing.T) {
	src := newIndexSource(map[string][]course.ID{
		"programming": {id("CMSC", "151")},
	})
	got, err := NewTextSearch(src).Search(context.Background(), "programming quantum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestTextSearch_NoTokensSkipsIndex(t *testing.T) {
	src := newIndexSource(nil)
	got, err := NewTextSearch(src).Search(context.Background(), "42 !!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
	if src.calls != 0 {
		t.Errorf("index consulted %d times", src.calls)
	}
}

func TestTextSearch_CaseInsensitiveAndRepeated(t *testing.T) {
	src := newIndexSource(map[string][]course.ID{
		"intro": {id("CMSC", "151")},
	})
	got, err := NewTextSearch(src).Search(context.Background(), "INTRO intro Intro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []course.ID{id("CMSC", "151")}) {
		t.Errorf("got %v", got)
	}
}

func TestTextSearch_SourceError(t *testing.T) {
	src := &indexSource{err: domain.ErrIndexUnavailable}
	_, err := NewTextSearch(src).Search(context.Background(), "intro")
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}
