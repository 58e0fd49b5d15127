package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	adzunaSourceName  = "adzuna"
	adzunaBaseURL     = "https://api.adzuna.com/v1/api/jobs"
	adzunaPageSize    = 25
	adzunaMaxPages    = 2
	adzunaHTTPTimeout = 15 * time.Second
)

// Adzuna queries the Adzuna public search API. When no credentials are
// configured the source is a silent no-op so deployments without an Adzuna
// account still work with the remaining sources.
type Adzuna struct {
	AppID      string
	AppKey     string
	Country    string
	BaseURL    string
	HTTPClient *http.Client
	logger     *zap.Logger
}

func NewAdzuna(appID, appKey, country string, logger *zap.Logger) *Adzuna {
	if logger == nil {
		logger = zap.NewNop()
	}
	if country == "" {
		country = "br"
	}
	return &Adzuna{
		AppID:      appID,
		AppKey:     appKey,
		Country:    country,
		BaseURL:    adzunaBaseURL,
		HTTPClient: &http.Client{Timeout: adzunaHTTPTimeout},
		logger:     logger,
	}
}

func (a *Adzuna) Name() string { return adzunaSourceName }

// adzunaItem mirrors the fields of one Adzuna result we care about.
type adzunaItem struct {
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	RedirectURL string `json:"redirect_url"`
}

func (a *Adzuna) Search(ctx context.Context, role, location string) ([]Listing, error) {
	if a.AppID == "" || a.AppKey == "" {
		a.logger.Debug("adzuna credentials are not set, skipping source")
		return nil, nil
	}

	var listings []Listing
	for page := 1; page <= adzunaMaxPages; page++ {
		batch, err := a.searchPage(ctx, role, location, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break
		}
		listings = append(listings, batch...)
		if len(batch) < adzunaPageSize {
			break
		}
	}

	return listings, nil
}

func (a *Adzuna) searchPage(ctx context.Context, role, location string, page int) ([]Listing, error) {
	endpoint := fmt.Sprintf("%s/%s/search/%d", a.BaseURL, a.Country, page)

	q := url.Values{}
	q.Set("app_id", a.AppID)
	q.Set("app_key", a.AppKey)
	q.Set("what", role)
	q.Set("where", location)
	q.Set("results_per_page", strconv.Itoa(adzunaPageSize))
	q.Set("content-type", "application/json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = q.Encode()

	a.logger.Debug("make request", zap.String("url", req.URL.Redacted()))

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var payload struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var items []adzunaItem
	cfg := &mapstructure.DecoderConfig{
		Result:  &items,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(payload.Results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}

	listings := make([]Listing, 0, len(items))
	for _, item := range items {
		if item.Title == "" || item.RedirectURL == "" {
			continue
		}
		listings = append(listings, Listing{
			Title:    item.Title,
			Company:  item.Company.DisplayName,
			Location: item.Location.DisplayName,
			Link:     item.RedirectURL,
			Source:   adzunaSourceName,
		})
	}

	return listings, nil
}
