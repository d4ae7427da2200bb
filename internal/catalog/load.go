package catalog

import (
	"context"
	"customerwizard/wizard/internal/domain"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Load fetches and decodes the catalog once. Decoding failures keep their
// *domain.MalformedCatalogError type for errors.As.
func Load(ctx context.Context, source Source) (*domain.Catalog, error) {
	data, format, err := source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog from %s: %w", source, err)
	}

	catalog, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog from %s: %w", source, err)
	}

	types := catalog.CustomerTypes()
	if len(types) == 0 {
		log.Warnf("⚠️ Catalog from %s has no customer types", source)
	}

	stats := catalog.Root().Stats()
	log.Infof("📚 Loaded catalog from %s: %d customer types, %d leaves, %d options",
		source, len(types), stats.Leaves, stats.Options)

	return catalog, nil
}
