// File path: internal/relevance/scorer.go
package relevance

import (
	"sort"
	"strings"

	"github.com/imashishkh/commerce-kb/internal/kb"
)

const (
	titleWeight    = 2.0
	categoryWeight = 1.0
	contentWeight  = 1.0
	tagWeight      = 1.0
	queryScoreMax  = 5.0

	affinityScoreMax  = 5.0
	affinityThreshold = 0.3

	productRecommendationLimit = 5
	relatedLimit               = 3
)

// QueryScore computes the normalized relevance of a resource against a
// free-text query. Field weights: title 2, category 1, content 1, any tag 1.
func QueryScore(query string, res kb.Resource) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	score := 0.0
	if strings.Contains(strings.ToLower(res.Title), q) {
		score += titleWeight
	}
	if strings.Contains(strings.ToLower(res.Category), q) {
		score += categoryWeight
	}
	if strings.Contains(strings.ToLower(res.Content), q) {
		score += contentWeight
	}
	for _, tag := range res.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			score += tagWeight
			break
		}
	}
	return clamp01(score / queryScoreMax)
}

// RankByQuery scores every resource against the query and returns the top
// results in descending score order. Ties keep the collection order.
func RankByQuery(query string, resources []kb.Resource, limit int) []kb.ScoredResource {
	if limit <= 0 {
		limit = 5
	}
	scored := make([]kb.ScoredResource, 0, len(resources))
	for _, res := range resources {
		score := QueryScore(query, res)
		if score <= 0 {
			continue
		}
		scored = append(scored, kb.ScoredResource{Resource: res, Score: score})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// RecommendProducts ranks only product-related resources against the query and
// returns the top five.
func RecommendProducts(query string, resources []kb.Resource) []kb.ScoredResource {
	products := make([]kb.Resource, 0, len(resources))
	for _, res := range resources {
		if res.ProductRelated {
			products = append(products, res)
		}
	}
	return RankByQuery(query, products, productRecommendationLimit)
}

// Affinity computes the normalized pairwise affinity between two resources.
// Every contributing condition is a symmetric equality or overlap test, so
// Affinity(a, b) == Affinity(b, a).
func Affinity(a, b kb.Resource) float64 {
	score := 0.0
	if a.Category != "" && a.Category == b.Category {
		score++
	}
	if a.PricePoint != "" && a.PricePoint == b.PricePoint {
		score++
	}
	if a.MarketSegment != "" && a.MarketSegment == b.MarketSegment {
		score++
	}
	if a.CatalogType != "" && a.CatalogType == b.CatalogType {
		score++
	}
	if a.PaymentGateway != "" && a.PaymentGateway == b.PaymentGateway {
		score += 0.5
	}
	if a.ShippingOption != "" && a.ShippingOption == b.ShippingOption {
		score += 0.5
	}
	switch shared := kb.SharedTags(a, b); {
	case shared > 2:
		score++
	case shared >= 1:
		score += 0.5
	}
	return clamp01(score / affinityScoreMax)
}

// Related returns up to three product-related resources whose affinity with
// the target exceeds 0.3, strongest first. The target itself is excluded by ID
// before scoring.
func Related(target kb.Resource, resources []kb.Resource) []kb.ScoredResource {
	scored := make([]kb.ScoredResource, 0, len(resources))
	for _, res := range resources {
		if res.ID == target.ID {
			continue
		}
		if !res.ProductRelated {
			continue
		}
		score := Affinity(target, res)
		if score <= affinityThreshold {
			continue
		}
		scored = append(scored, kb.ScoredResource{Resource: res, Score: score})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > relatedLimit {
		scored = scored[:relatedLimit]
	}
	return scored
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
