package jobsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

const linkedInFixture = `<!DOCTYPE html>
<html><body>
<div class="base-card">
  <h3 class="base-search-card__title"> Backend Developer </h3>
  <h4 class="base-search-card__subtitle"> Acme Corp </h4>
  <span class="job-search-card__location"> Remote </span>
  <a class="base-card__full-link" href="https://jobs.example.com/1"></a>
</div>
<div class="base-card">
  <h3 class="base-search-card__title">Go Engineer</h3>
  <h4 class="base-search-card__subtitle">Globex</h4>
  <span class="job-search-card__location">Sao Paulo</span>
  <a class="base-card__full-link" href="https://jobs.example.com/2"></a>
</div>
<div class="base-card">
  <!-- promo card without a title or link: must be skipped -->
  <span class="job-search-card__location">Nowhere</span>
</div>
</body></html>`

func TestLinkedInSearchParsesCards(t *testing.T) {
	t.Parallel()

	var gotQuery map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"keywords": r.URL.Query().Get("keywords"),
			"location": r.URL.Query().Get("location"),
		}
		w.Write([]byte(linkedInFixture))
	}))
	defer ts.Close()

	src := NewLinkedIn(ts.URL, zap.NewNop())

	listings, err := src.Search(context.Background(), "Backend Developer", "Remote")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery["keywords"] != "Backend Developer" || gotQuery["location"] != "Remote" {
		t.Fatalf("unexpected query params: %v", gotQuery)
	}

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.Title != "Backend Developer" || first.Company != "Acme Corp" ||
		first.Location != "Remote" || first.Link != "https://jobs.example.com/1" {
		t.Fatalf("unexpected first listing: %+v", first)
	}
	if first.Source != "linkedin" {
		t.Fatalf("listings must be tagged with their source, got %q", first.Source)
	}
}

func TestLinkedInSearchBadStatus(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	src := NewLinkedIn(ts.URL, zap.NewNop())

	if _, err := src.Search(context.Background(), "QA", "Remote"); err == nil {
		t.Fatal("expected an error on non-200 status")
	}
}

func TestLinkedInSearchRequiresBaseURL(t *testing.T) {
	t.Parallel()

	src := NewLinkedIn("", zap.NewNop())
	if _, err := src.Search(context.Background(), "QA", "Remote"); err == nil {
		t.Fatal("expected an error when the base url is missing")
	}
}
