package jobsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	linkedInSourceName  = "linkedin"
	linkedInHTTPTimeout = 15 * time.Second

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
)

// LinkedIn scrapes the public guest job-search page. The selectors follow the
// markup of the guest search results (base-card blocks).
type LinkedIn struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	logger     *zap.Logger
}

func NewLinkedIn(baseURL string, logger *zap.Logger) *LinkedIn {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkedIn{
		BaseURL:    baseURL,
		UserAgent:  defaultUserAgent,
		HTTPClient: &http.Client{Timeout: linkedInHTTPTimeout},
		logger:     logger,
	}
}

func (l *LinkedIn) Name() string { return linkedInSourceName }

func (l *LinkedIn) Search(ctx context.Context, role, location string) ([]Listing, error) {
	if strings.TrimSpace(l.BaseURL) == "" {
		return nil, fmt.Errorf("linkedin base url is not configured")
	}

	q := url.Values{}
	q.Set("keywords", role)
	q.Set("location", location)
	q.Set("trk", "public_jobs_jobs-search-bar_search-submit")
	q.Set("position", "1")
	q.Set("pageNum", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", l.UserAgent)
	req.URL.RawQuery = q.Encode()

	l.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var listings []Listing
	doc.Find("div.base-card").Each(func(_ int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find("h3.base-search-card__title").Text())
		company := strings.TrimSpace(card.Find("h4.base-search-card__subtitle").Text())
		place := strings.TrimSpace(card.Find("span.job-search-card__location").Text())
		link, _ := card.Find("a.base-card__full-link").Attr("href")

		// Cards without a title or link are promos or broken markup.
		if title == "" || link == "" {
			return
		}

		listings = append(listings, Listing{
			Title:    title,
			Company:  company,
			Location: place,
			Link:     strings.TrimSpace(link),
			Source:   linkedInSourceName,
		})
	})

	return listings, nil
}
