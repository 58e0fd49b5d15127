package jobsearch

import (
	"reflect"
	"testing"
)

func TestInterleaveRoundRobin(t *testing.T) {
	t.Parallel()

	a := []Listing{{Link: "a1"}, {Link: "a2"}, {Link: "a3"}}
	b := []Listing{{Link: "b1"}, {Link: "b2"}}

	got := Interleave([][]Listing{a, b})

	var links []string
	for _, l := range got {
		links = append(links, l.Link)
	}
	want := []string{"a1", "b1", "a2", "b2", "a3"}
	if !reflect.DeepEqual(links, want) {
		t.Fatalf("expected %v, got %v", want, links)
	}
}

func TestInterleaveHandlesEmptyGroups(t *testing.T) {
	t.Parallel()

	got := Interleave([][]Listing{nil, {{Link: "x"}}, nil})
	if len(got) != 1 || got[0].Link != "x" {
		t.Fatalf("unexpected result: %v", got)
	}

	if got := Interleave(nil); len(got) != 0 {
		t.Fatalf("expected no listings, got %v", got)
	}
}
