package catalog

import (
	"context"
	"customerwizard/wizard/internal/client"
	"customerwizard/wizard/internal/repository"
	"fmt"
	"os"
)

// Source yields a raw catalog document and its format
type Source interface {
	Fetch(ctx context.Context) ([]byte, Format, error)
	String() string
}

type fileSource struct {
	path   string
	format Format
}

// NewFileSource reads the catalog from a local file. An empty format is
// detected from the file extension.
func NewFileSource(path string, format Format) Source {
	if format == "" {
		format = DetectFormat(path)
	}
	return &fileSource{path: path, format: format}
}

func (s *fileSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read catalog file: %w", err)
	}
	return data, s.format, nil
}

func (s *fileSource) String() string {
	return "file " + s.path
}

type httpSource struct {
	client client.CatalogClient
	url    string
	format Format
}

// NewHTTPSource downloads the catalog. An empty format is taken from the
// response Content-Type, then from the URL extension.
func NewHTTPSource(c client.CatalogClient, url string, format Format) Source {
	return &httpSource{client: c, url: url, format: format}
}

func (s *httpSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	doc, err := s.client.FetchCatalog(ctx, s.url)
	if err != nil {
		return nil, "", err
	}

	format := s.format
	if format == "" {
		if detected, ok := formatFromContentType(doc.ContentType); ok {
			format = detected
		} else {
			format = DetectFormat(s.url)
		}
	}

	return doc.Body, format, nil
}

func (s *httpSource) String() string {
	return "url " + s.url
}

type postgresSource struct {
	repo repository.CatalogRepository
	name string
}

// NewPostgresSource reads the named catalog row. Documents are stored as JSON.
func NewPostgresSource(repo repository.CatalogRepository, name string) Source {
	return &postgresSource{repo: repo, name: name}
}

func (s *postgresSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	data, err := s.repo.GetCatalogDocument(ctx, s.name)
	if err != nil {
		return nil, "", err
	}
	return data, FormatJSON, nil
}

func (s *postgresSource) String() string {
	return "postgres catalog " + s.name
}
