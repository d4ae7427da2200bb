package client

import (
	"context"
	"customerwizard/wizard/internal/config"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// CatalogClient downloads catalog documents over HTTP
type CatalogClient interface {
	FetchCatalog(ctx context.Context, url string) (*CatalogDocument, error)
}

// CatalogDocument is a fetched catalog body with the hints needed to decode it
type CatalogDocument struct {
	URL         string
	ContentType string
	Body        []byte
}

type catalogClient struct {
	httpClient *resty.Client
}

func NewCatalogClient(cfg config.CatalogConfig) CatalogClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	return &catalogClient{
		httpClient: client,
	}
}

func (c *catalogClient) FetchCatalog(ctx context.Context, url string) (*CatalogDocument, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	body := resp.String()
	log.Debugf("Fetched catalog from %s (%d bytes)", url, len(body))

	return &CatalogDocument{
		URL:         url,
		ContentType: resp.Header().Get("Content-Type"),
		Body:        []byte(body),
	}, nil
}
