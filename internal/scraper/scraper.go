package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/catalog"
)

// Scraper downloads store listing pages and extracts product cards
type Scraper struct {
	client    *http.Client
	userAgent string
	delay     time.Duration

	mu          sync.Mutex
	robotsCache map[string]*robotstxt.RobotsData
	lastRequest time.Time
}

// NewScraper creates a scraper with a polite inter-request delay
func NewScraper(timeout, delay time.Duration, userAgent string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:   userAgent,
		delay:       delay,
		robotsCache: make(map[string]*robotstxt.RobotsData),
	}
}

// Scrape fetches one listing page and returns the products found on it.
// The page's robots.txt is honored; a disallowed path is an error, not an
// empty catalog.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) ([]catalog.Product, error) {
	allowed, err := s.allowed(ctx, pageURL)
	if err == nil && !allowed {
		return nil, fmt.Errorf("url blocked by robots.txt: %s", pageURL)
	}

	s.waitPolitely(ctx)

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	return extractProducts(root), nil
}

// allowed checks robots.txt for the URL's host, caching per host. Fetch
// failures allow the request, matching common crawler behavior.
func (s *Scraper) allowed(ctx context.Context, rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("invalid url: %w", err)
	}

	s.mu.Lock()
	robots, cached := s.robotsCache[parsed.Host]
	s.mu.Unlock()

	if !cached {
		robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, parsed.Host)
		req, err := http.NewRequestWithContext(ctx, "GET", robotsURL, nil)
		if err != nil {
			return true, nil
		}
		req.Header.Set("User-Agent", s.userAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return true, nil
		}
		defer resp.Body.Close()

		robots, err = robotstxt.FromResponse(resp)
		if err != nil {
			return true, nil
		}
		s.mu.Lock()
		s.robotsCache[parsed.Host] = robots
		s.mu.Unlock()
	}

	if robots == nil {
		return true, nil
	}
	return robots.FindGroup(s.userAgent).Test(parsed.Path), nil
}

// waitPolitely spaces requests at least delay apart
func (s *Scraper) waitPolitely(ctx context.Context) {
	s.mu.Lock()
	elapsed := time.Since(s.lastRequest)
	s.lastRequest = time.Now()
	s.mu.Unlock()

	if remaining := s.delay - elapsed; remaining > 0 {
		select {
		case <-time.After(remaining):
		case <-ctx.Done():
		}
	}
}
