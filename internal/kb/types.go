// File path: internal/kb/types.go
package kb

import (
	"strings"
	"time"
)

// Resource is a knowledge base entry describing an e-commerce reference
// document. Classification fields are derived from the text fields and are
// deterministic for a given title/content/description triple.
type Resource struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`

	ProductRelated bool   `json:"product_related"`
	PricePoint     string `json:"price_point,omitempty"`
	MarketSegment  string `json:"market_segment,omitempty"`
	CatalogType    string `json:"catalog_type,omitempty"`
	PaymentGateway string `json:"payment_gateway,omitempty"`
	ShippingOption string `json:"shipping_option,omitempty"`

	DateAdded    time.Time  `json:"date_added"`
	AccessCount  int        `json:"access_count"`
	LastAccessed *time.Time `json:"last_accessed,omitempty"`
}

// ScoredResource pairs a resource with a transient relevance score. Scores are
// attached to scoring output only and are never written back to a store.
type ScoredResource struct {
	Resource Resource `json:"resource"`
	Score    float64  `json:"score"`
}

// Classification is the metadata patch produced by the classifier.
type Classification struct {
	Category       string `json:"category"`
	ProductRelated bool   `json:"product_related"`
	PricePoint     string `json:"price_point,omitempty"`
	MarketSegment  string `json:"market_segment,omitempty"`
	CatalogType    string `json:"catalog_type,omitempty"`
	PaymentGateway string `json:"payment_gateway,omitempty"`
	ShippingOption string `json:"shipping_option,omitempty"`
}

// CombinedText lowercases and joins the free-text fields in the order the
// classifier and scorers match against.
func (r Resource) CombinedText() string {
	return CombineText(r.Title, r.Content, r.Description)
}

// CombineText builds the canonical matching corpus from raw text fields.
func CombineText(title, content, description string) string {
	return strings.ToLower(title + " " + content + " " + description)
}

// HasTag reports whether the resource carries the given tag, ignoring case.
func (r Resource) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SharedTags counts tags present in both resources, ignoring case.
func SharedTags(a, b Resource) int {
	if len(a.Tags) == 0 || len(b.Tags) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(a.Tags))
	for _, tag := range a.Tags {
		seen[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}
	shared := 0
	for _, tag := range b.Tags {
		if _, ok := seen[strings.ToLower(strings.TrimSpace(tag))]; ok {
			shared++
		}
	}
	return shared
}
