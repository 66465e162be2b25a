// File path: internal/sqlite/resources.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imashishkh/commerce-kb/internal/kb"
)

// ErrNotFound is returned when a resource ID is absent from the catalog.
var ErrNotFound = errors.New("resource not found")

const tagSeparator = "\x1f"

type resourceRow struct {
	ID             string       `db:"id"`
	Title          string       `db:"title"`
	Description    string       `db:"description"`
	Content        string       `db:"content"`
	Category       string       `db:"category"`
	Tags           string       `db:"tags"`
	ProductRelated bool         `db:"product_related"`
	PricePoint     string       `db:"price_point"`
	MarketSegment  string       `db:"market_segment"`
	CatalogType    string       `db:"catalog_type"`
	PaymentGateway string       `db:"payment_gateway"`
	ShippingOption string       `db:"shipping_option"`
	DateAdded      time.Time    `db:"date_added"`
	AccessCount    int          `db:"access_count"`
	LastAccessed   sql.NullTime `db:"last_accessed"`
}

func rowFromResource(res kb.Resource) resourceRow {
	row := resourceRow{
		ID:             res.ID,
		Title:          res.Title,
		Description:    res.Description,
		Content:        res.Content,
		Category:       res.Category,
		Tags:           strings.Join(res.Tags, tagSeparator),
		ProductRelated: res.ProductRelated,
		PricePoint:     res.PricePoint,
		MarketSegment:  res.MarketSegment,
		CatalogType:    res.CatalogType,
		PaymentGateway: res.PaymentGateway,
		ShippingOption: res.ShippingOption,
		DateAdded:      res.DateAdded.UTC(),
		AccessCount:    res.AccessCount,
	}
	if res.LastAccessed != nil {
		row.LastAccessed = sql.NullTime{Time: res.LastAccessed.UTC(), Valid: true}
	}
	return row
}

func (r resourceRow) resource() kb.Resource {
	res := kb.Resource{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Content:        r.Content,
		Category:       r.Category,
		ProductRelated: r.ProductRelated,
		PricePoint:     r.PricePoint,
		MarketSegment:  r.MarketSegment,
		CatalogType:    r.CatalogType,
		PaymentGateway: r.PaymentGateway,
		ShippingOption: r.ShippingOption,
		DateAdded:      r.DateAdded.UTC(),
		AccessCount:    r.AccessCount,
	}
	if r.Tags != "" {
		res.Tags = strings.Split(r.Tags, tagSeparator)
	}
	if r.LastAccessed.Valid {
		stamp := r.LastAccessed.Time.UTC()
		res.LastAccessed = &stamp
	}
	return res
}

const upsertResourceQuery = `
INSERT INTO resources (
	id, title, description, content, category, tags, product_related,
	price_point, market_segment, catalog_type, payment_gateway,
	shipping_option, date_added, access_count, last_accessed
) VALUES (
	:id, :title, :description, :content, :category, :tags, :product_related,
	:price_point, :market_segment, :catalog_type, :payment_gateway,
	:shipping_option, :date_added, :access_count, :last_accessed
)
ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	description = excluded.description,
	content = excluded.content,
	category = excluded.category,
	tags = excluded.tags,
	product_related = excluded.product_related,
	price_point = excluded.price_point,
	market_segment = excluded.market_segment,
	catalog_type = excluded.catalog_type,
	payment_gateway = excluded.payment_gateway,
	shipping_option = excluded.shipping_option`

// SaveResource inserts or updates a resource. date_added and usage counters
// are preserved on update.
func (s *Store) SaveResource(ctx context.Context, res kb.Resource) error {
	if s == nil || s.db == nil {
		return errors.New("catalog not initialized")
	}
	if strings.TrimSpace(res.ID) == "" {
		return errors.New("resource id required")
	}
	if _, err := s.db.NamedExecContext(ctx, upsertResourceQuery, rowFromResource(res)); err != nil {
		return fmt.Errorf("save resource %s: %w", res.ID, err)
	}
	return nil
}

// GetResource fetches a single resource by ID.
func (s *Store) GetResource(ctx context.Context, id string) (kb.Resource, error) {
	if s == nil || s.db == nil {
		return kb.Resource{}, errors.New("catalog not initialized")
	}
	var row resourceRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM resources WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return kb.Resource{}, ErrNotFound
	}
	if err != nil {
		return kb.Resource{}, fmt.Errorf("get resource %s: %w", id, err)
	}
	return row.resource(), nil
}

// ListResources returns every resource ordered by insertion time then ID, so
// the in-memory collection reload keeps a stable order.
func (s *Store) ListResources(ctx context.Context) ([]kb.Resource, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("catalog not initialized")
	}
	var rows []resourceRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM resources ORDER BY date_added, id`); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	out := make([]kb.Resource, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.resource())
	}
	return out, nil
}

// DeleteResource removes a resource by ID.
func (s *Store) DeleteResource(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return errors.New("catalog not initialized")
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete resource %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete resource %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordAccess increments the usage counter and stamps last_accessed.
func (s *Store) RecordAccess(ctx context.Context, id string, at time.Time) error {
	if s == nil || s.db == nil {
		return errors.New("catalog not initialized")
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE resources SET access_count = access_count + 1, last_accessed = ? WHERE id = ?`,
		at.UTC(), id)
	if err != nil {
		return fmt.Errorf("record access %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("record access %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
