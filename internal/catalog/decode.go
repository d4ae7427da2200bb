package catalog

import (
	"customerwizard/wizard/internal/domain"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
)

// Format is the encoding of a catalog document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a configured format name to a Format. An empty name
// means "detect".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "":
		return "", nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown catalog format %q", name)
	}
}

// DetectFormat guesses the format from a file name or URL. JSON is the default.
func DetectFormat(name string) Format {
	if u, err := url.Parse(name); err == nil && u.Scheme != "" {
		name = u.Path
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func formatFromContentType(contentType string) (Format, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}

	switch {
	case strings.HasSuffix(mediaType, "json"):
		return FormatJSON, true
	case strings.HasSuffix(mediaType, "yaml"):
		return FormatYAML, true
	default:
		return "", false
	}
}

// Decode parses a catalog document. Shape violations are reported as
// *domain.MalformedCatalogError.
func Decode(data []byte, format Format) (*domain.Catalog, error) {
	switch format {
	case FormatJSON, "":
		return domain.ParseJSONCatalog(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}
}
