// File path: internal/relevance/practices.go
package relevance

import (
	"strings"

	"github.com/imashishkh/commerce-kb/internal/kb"
)

const practiceLimit = 5

// practicePhrases are the literal markers a resource must contain to count as
// best-practice material.
var practicePhrases = []string{"best practice", "guideline", "recommendation"}

// Area is an e-commerce functional area with the keywords that scope
// best-practice lookups.
type Area struct {
	Name     string
	Keywords []string
}

// areas holds the eight functional areas. The product area doubles as the
// fallback for unrecognized names.
var areas = []Area{
	{"product", []string{"product", "catalog", "listing", "inventory"}},
	{"cart", []string{"cart", "basket", "line item"}},
	{"checkout", []string{"checkout", "funnel", "conversion", "form"}},
	{"payment", []string{"payment", "gateway", "transaction", "refund"}},
	{"shipping", []string{"shipping", "delivery", "fulfillment", "carrier"}},
	{"security", []string{"security", "fraud", "authentication", "encryption", "pci"}},
	{"performance", []string{"performance", "speed", "optimization", "caching", "load"}},
	{"seo", []string{"seo", "search engine", "ranking", "sitemap", "meta"}},
}

// ResolveArea maps a free-text area name onto a canonical area by substring
// containment, defaulting to product.
func ResolveArea(name string) Area {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, area := range areas {
		if strings.Contains(normalized, area.Name) {
			return area
		}
	}
	return areas[0]
}

// FindBestPractices filters resources that contain both a best-practice phrase
// and at least one keyword for the named area. Results keep the collection
// order and are capped at five; this is deliberately a filter, not a ranking.
func FindBestPractices(areaName string, resources []kb.Resource) []kb.Resource {
	area := ResolveArea(areaName)
	out := make([]kb.Resource, 0, practiceLimit)
	for _, res := range resources {
		text := res.CombinedText()
		if !containsAny(text, practicePhrases) {
			continue
		}
		if !containsAny(text, area.Keywords) {
			continue
		}
		out = append(out, res)
		if len(out) == practiceLimit {
			break
		}
	}
	return out
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
