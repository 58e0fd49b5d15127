package jobsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

const adzunaFixture = `{
  "count": 2,
  "results": [
    {
      "title": "Platform Engineer",
      "company": {"display_name": "Initech"},
      "location": {"display_name": "Sao Paulo, Brazil"},
      "redirect_url": "https://adzuna.example.com/jobs/10"
    },
    {
      "title": "SRE",
      "company": {"display_name": "Hooli"},
      "location": {"display_name": "Remote"},
      "redirect_url": "https://adzuna.example.com/jobs/11"
    },
    {
      "title": "",
      "redirect_url": ""
    }
  ]
}`

func TestAdzunaSearchParsesResults(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("what"); got != "Platform Engineer" {
			t.Errorf("unexpected what param: %q", got)
		}
		if got := r.URL.Query().Get("app_id"); got != "id" {
			t.Errorf("unexpected app_id: %q", got)
		}
		fmt.Fprint(w, adzunaFixture)
	}))
	defer ts.Close()

	src := NewAdzuna("id", "key", "br", zap.NewNop())
	src.BaseURL = ts.URL

	listings, err := src.Search(context.Background(), "Platform Engineer", "Sao Paulo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings (the empty item is skipped), got %d", len(listings))
	}
	if listings[0].Company != "Initech" || listings[0].Source != "adzuna" {
		t.Fatalf("unexpected listing: %+v", listings[0])
	}
	if listings[1].Link != "https://adzuna.example.com/jobs/11" {
		t.Fatalf("unexpected link: %q", listings[1].Link)
	}
}

func TestAdzunaSearchSkipsWithoutCredentials(t *testing.T) {
	t.Parallel()

	src := NewAdzuna("", "", "br", zap.NewNop())

	listings, err := src.Search(context.Background(), "QA", "Remote")
	if err != nil {
		t.Fatalf("missing credentials must not be an error: %v", err)
	}
	if listings != nil {
		t.Fatalf("expected no listings, got %v", listings)
	}
}

func TestAdzunaSearchBadStatus(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	src := NewAdzuna("id", "key", "br", zap.NewNop())
	src.BaseURL = ts.URL

	if _, err := src.Search(context.Background(), "QA", "Remote"); err == nil {
		t.Fatal("expected an error on non-200 status")
	}
}
