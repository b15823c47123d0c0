package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/vibe-gallery-backend/errs"
)

// DefaultMicrolinkURL is the public Microlink endpoint.
const DefaultMicrolinkURL = "https://api.microlink.io"

const microlinkService = "microlink"

// URLMetadata is what Microlink reports about a page.
type URLMetadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
}

// LinkPreview bundles a screenshot and the metadata of a submitted link.
// A part that could not be fetched is left empty.
type LinkPreview struct {
	ScreenshotURL string       `json:"screenshot_url,omitempty"`
	Metadata      *URLMetadata `json:"metadata,omitempty"`
}

type microlinkAsset struct {
	URL string `json:"url"`
}

type microlinkResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Publisher   string          `json:"publisher"`
		Image       *microlinkAsset `json:"image"`
		Logo        *microlinkAsset `json:"logo"`
		Screenshot  *microlinkAsset `json:"screenshot"`
	} `json:"data"`
}

// ScreenshotClient talks to Microlink to capture screenshots and metadata
// of deployed projects.
type ScreenshotClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewScreenshotClient(baseURL, apiKey string, timeout time.Duration) *ScreenshotClient {
	if baseURL == "" {
		baseURL = DefaultMicrolinkURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ScreenshotClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CaptureScreenshot returns the URL of a 1280x800 screenshot of pageURL.
func (c *ScreenshotClient) CaptureScreenshot(ctx context.Context, pageURL string) (string, error) {
	params := url.Values{}
	params.Set("url", pageURL)
	params.Set("screenshot", "true")
	params.Set("meta", "false")
	params.Set("waitForTimeout", "3000")
	params.Set("viewport", `{"width":1280,"height":800}`)

	resp, err := c.query(ctx, params)
	if err != nil {
		return "", err
	}
	if resp.Data.Screenshot == nil || resp.Data.Screenshot.URL == "" {
		return "", errs.NewUpstreamError(microlinkService, http.StatusOK, fmt.Errorf("no screenshot in response"))
	}
	return resp.Data.Screenshot.URL, nil
}

// FetchMetadata returns the title, description and icons of pageURL.
func (c *ScreenshotClient) FetchMetadata(ctx context.Context, pageURL string) (*URLMetadata, error) {
	params := url.Values{}
	params.Set("url", pageURL)

	resp, err := c.query(ctx, params)
	if err != nil {
		return nil, err
	}

	meta := &URLMetadata{
		Title:       resp.Data.Title,
		Description: resp.Data.Description,
		Publisher:   resp.Data.Publisher,
	}
	if resp.Data.Image != nil {
		meta.Image = resp.Data.Image.URL
	}
	if resp.Data.Logo != nil {
		meta.Logo = resp.Data.Logo.URL
	}
	return meta, nil
}

// Preview captures the screenshot and the metadata of pageURL concurrently.
// Failures are logged and leave the corresponding field empty.
func (c *ScreenshotClient) Preview(ctx context.Context, pageURL string) LinkPreview {
	var preview LinkPreview
	var g errgroup.Group

	g.Go(func() error {
		shot, err := c.CaptureScreenshot(ctx, pageURL)
		if err != nil {
			log.Warn().Err(err).Str("url", pageURL).Msg("Screenshot capture failed")
			return nil
		}
		preview.ScreenshotURL = shot
		return nil
	})
	g.Go(func() error {
		meta, err := c.FetchMetadata(ctx, pageURL)
		if err != nil {
			log.Warn().Err(err).Str("url", pageURL).Msg("Metadata fetch failed")
			return nil
		}
		preview.Metadata = meta
		return nil
	})
	_ = g.Wait()

	return preview
}

func (c *ScreenshotClient) query(ctx context.Context, params url.Values) (*microlinkResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Microlink request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errs.NewUpstreamTimeoutError(microlinkService, ctx.Err())
		}
		return nil, errs.NewUpstreamError(microlinkService, 0, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read Microlink response: %w", err)
	}

	var parsed microlinkResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errs.NewUpstreamError(microlinkService, res.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	if res.StatusCode != http.StatusOK || parsed.Status != "success" {
		return nil, errs.NewUpstreamError(microlinkService, res.StatusCode, fmt.Errorf("status %q: %s", parsed.Status, parsed.Message))
	}
	return &parsed, nil
}

// DefaultThumbnailURL is the placeholder image used when a project is
// submitted without a thumbnail.
func DefaultThumbnailURL(title string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/300", url.PathEscape(title))
}
