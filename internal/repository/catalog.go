package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrCatalogNotFound = errors.New("catalog not found")

var tableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Querier is the part of pgxpool.Pool the repository needs
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CatalogRepository interface {
	GetCatalogDocument(ctx context.Context, name string) ([]byte, error)
}

type catalogRepository struct {
	db    Querier
	query string
}

// NewCatalogRepository reads catalog documents from table, a column pair
// (name text, document json). The column must be json rather than jsonb:
// jsonb reorders object keys and the catalog order is significant.
func NewCatalogRepository(db *pgxpool.Pool, table string) (CatalogRepository, error) {
	repo, err := newCatalogRepository(db, table)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func newCatalogRepository(db Querier, table string) (*catalogRepository, error) {
	if !tableNameRegex.MatchString(table) {
		return nil, fmt.Errorf("invalid catalog table name %q", table)
	}

	ident := pgx.Identifier(strings.Split(table, ".")).Sanitize()

	return &catalogRepository{
		db:    db,
		query: fmt.Sprintf(`SELECT document::text FROM %s WHERE name = $1`, ident),
	}, nil
}

func (r *catalogRepository) GetCatalogDocument(ctx context.Context, name string) ([]byte, error) {
	var document string
	err := r.db.QueryRow(ctx, r.query, name).Scan(&document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, name)
		}
		return nil, fmt.Errorf("failed to read catalog %s: %w", name, err)
	}

	return []byte(document), nil
}
