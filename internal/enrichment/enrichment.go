package enrichment

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/marketplace-backend/config"
	"github.com/dustin/marketplace-backend/pkg/logger"
	readability "github.com/go-shiori/go-readability"
)

// Extractor defines source page extraction capabilities
type Extractor interface {
	Extract(pageURL string) (*Result, error)
	Name() string
	IsHealthy() bool
}

// Result contains metadata pulled from a product source page
type Result struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Confidence  float64   `json:"confidence"`
	ProcessedAt time.Time `json:"processed_at"`
}

// ReadabilityExtractor pulls product metadata from a seller-supplied page
// using go-readability
type ReadabilityExtractor struct {
	httpTimeout time.Duration
	userAgent   string
	logger      *logger.Logger
	client      *http.Client
	isHealthy   bool
}

// NewReadabilityExtractor creates a source page extractor with validation and defaults
func NewReadabilityExtractor(cfg *config.EnrichmentConfig, log *logger.Logger) (*ReadabilityExtractor, error) {
	// Set defaults for nil or empty config values
	var httpTimeout time.Duration = 30 * time.Second
	if cfg != nil && cfg.HTTPTimeout != "" {
		timeout, err := time.ParseDuration(cfg.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP timeout '%s': %v", cfg.HTTPTimeout, err)
		}
		httpTimeout = timeout
	}

	userAgent := "Marketplace-Backend-Bot/1.0"
	if cfg != nil && cfg.UserAgent != "" {
		userAgent = cfg.UserAgent
	}

	return &ReadabilityExtractor{
		httpTimeout: httpTimeout,
		userAgent:   userAgent,
		logger:      log.WithComponent("readability-extractor"),
		client: &http.Client{
			Timeout: httpTimeout,
		},
		isHealthy: true,
	}, nil
}

func (e *ReadabilityExtractor) Name() string {
	return "readability"
}

func (e *ReadabilityExtractor) IsHealthy() bool {
	return e.isHealthy
}

// Extract fetches the page and parses its metadata
func (e *ReadabilityExtractor) Extract(pageURL string) (*Result, error) {
	e.logger.Info("Extracting metadata from: " + pageURL)

	parsedURL, err := url.ParseRequestURI(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL '%s': %v", pageURL, err)
	}

	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for '%s': %v", pageURL, err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		e.isHealthy = false
		return nil, fmt.Errorf("failed to fetch '%s': %v", pageURL, err)
	}
	defer resp.Body.Close()

	e.isHealthy = true

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching '%s'", resp.StatusCode, pageURL)
	}

	article, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse '%s': %v", pageURL, err)
	}

	result := &Result{
		Title:       strings.TrimSpace(article.Title),
		Description: strings.TrimSpace(article.Excerpt),
		Image:       article.Image,
		Confidence:  confidenceFor(article.Title, article.Excerpt),
		ProcessedAt: time.Now(),
	}

	e.logger.Info("Extracted metadata from " + pageURL + ": title '" + result.Title + "'")

	return result, nil
}

// confidenceFor is a crude signal for how usable the extraction was
func confidenceFor(title, excerpt string) float64 {
	confidence := 0.0
	if strings.TrimSpace(title) != "" {
		confidence += 0.5
	}
	if strings.TrimSpace(excerpt) != "" {
		confidence += 0.5
	}
	return confidence
}
