// File path: internal/kb/classifier.go
package kb

// Classify derives the category and metadata patch for the given text fields.
// It is a pure function: identical inputs always produce the same
// classification, and empty inputs fall back to CategoryOther with every
// optional field absent.
func Classify(title, content, description string) Classification {
	text := CombineText(title, content, description)
	result := Classification{Category: CategoryOther}
	if label, ok := firstMatch(categoryRules, text); ok {
		result.Category = label
	}
	result.ProductRelated = productRelatedPattern.MatchString(text)
	if label, ok := firstMatch(pricePointRules, text); ok {
		result.PricePoint = label
	}
	if label, ok := firstMatch(marketSegmentRules, text); ok {
		result.MarketSegment = label
	}
	if label, ok := firstMatch(catalogTypeRules, text); ok {
		result.CatalogType = label
	}
	if label, ok := firstMatch(paymentGatewayRules, text); ok {
		result.PaymentGateway = label
	}
	if label, ok := firstMatch(shippingOptionRules, text); ok {
		result.ShippingOption = label
	}
	return result
}

// Annotate applies the classification derived from the resource's text fields
// onto the resource itself.
func Annotate(res *Resource) {
	if res == nil {
		return
	}
	c := Classify(res.Title, res.Content, res.Description)
	res.Category = c.Category
	res.ProductRelated = c.ProductRelated
	res.PricePoint = c.PricePoint
	res.MarketSegment = c.MarketSegment
	res.CatalogType = c.CatalogType
	res.PaymentGateway = c.PaymentGateway
	res.ShippingOption = c.ShippingOption
}
