// File path: internal/kb/rules.go
package kb

import "regexp"

// Rule associates a canonical label with the pattern that selects it. Rule
// tables are evaluated top to bottom and the first match wins, so earlier
// entries take precedence when a text matches several patterns.
type Rule struct {
	Label   string
	Pattern *regexp.Regexp
}

// Category labels assigned by the classifier. CategoryOther is the fallback
// when no category rule matches.
const (
	CategoryProductCatalog = "Product Catalog"
	CategoryPayment        = "Payment Solutions"
	CategoryOrders         = "Order Management"
	CategoryCustomer       = "Customer Experience"
	CategoryLogistics      = "Logistics & Fulfillment"
	CategorySecurity       = "Security & Compliance"
	CategoryDesign         = "Design Patterns"
	CategoryAnalytics      = "Analytics & Reporting"
	CategoryOther          = "Other"
)

// categoryRules is the canonical ordered category table. The order is load
// bearing: a text mentioning both product and payment vocabulary is filed
// under whichever entry appears first.
var categoryRules = []Rule{
	{CategoryProductCatalog, regexp.MustCompile(`product|catalog|inventory|sku|merchandis`)},
	{CategoryPayment, regexp.MustCompile(`payment|checkout|billing|stripe|paypal|transaction`)},
	{CategoryOrders, regexp.MustCompile(`order|cart|purchase|invoice`)},
	{CategoryCustomer, regexp.MustCompile(`customer|user experience|review|loyalty|personali[sz]`)},
	{CategoryLogistics, regexp.MustCompile(`shipping|delivery|logistics|warehouse|fulfill`)},
	{CategorySecurity, regexp.MustCompile(`security|compliance|fraud|gdpr|pci|authenticat`)},
	{CategoryDesign, regexp.MustCompile(`design pattern|architecture|component librar|wireframe`)},
	{CategoryAnalytics, regexp.MustCompile(`analytics|report|metric|dashboard|conversion rate`)},
}

// productRelatedPattern flags resources about sellable goods, independently of
// the category decision.
var productRelatedPattern = regexp.MustCompile(`product|sku|inventory|catalog|merchandis`)

// Canonical labels for the optional metadata fields.
const (
	PriceBudget   = "Budget"
	PriceMidRange = "Mid-range"
	PricePremium  = "Premium"

	SegmentB2B = "B2B"
	SegmentB2C = "B2C"
	SegmentC2C = "C2C"

	CatalogPhysical = "Physical"
	CatalogDigital  = "Digital"
	CatalogServices = "Services"

	GatewayStripe    = "Stripe"
	GatewayPayPal    = "PayPal"
	GatewaySquare    = "Square"
	GatewayBraintree = "Braintree"
	GatewayAuthorize = "Authorize.Net"

	ShippingStandard      = "Standard"
	ShippingExpress       = "Express"
	ShippingInternational = "International"
	ShippingFree          = "Free"
	ShippingPickup        = "Local Pickup"
)

var pricePointRules = []Rule{
	{PriceBudget, regexp.MustCompile(`budget|cheap|affordable|low[ -]cost|discount`)},
	{PricePremium, regexp.MustCompile(`premium|luxury|high[ -]end|exclusive`)},
	{PriceMidRange, regexp.MustCompile(`mid[ -]range|moderate|mainstream`)},
}

var marketSegmentRules = []Rule{
	{SegmentB2B, regexp.MustCompile(`b2b|business[ -]to[ -]business|wholesale|enterprise buyer`)},
	{SegmentB2C, regexp.MustCompile(`b2c|business[ -]to[ -]consumer|direct[ -]to[ -]consumer|retail shopper`)},
	{SegmentC2C, regexp.MustCompile(`c2c|consumer[ -]to[ -]consumer|peer[ -]to[ -]peer marketplace`)},
}

var catalogTypeRules = []Rule{
	{CatalogPhysical, regexp.MustCompile(`physical|tangible|hardware goods`)},
	{CatalogDigital, regexp.MustCompile(`digital|downloadable|virtual goods|software product`)},
	{CatalogServices, regexp.MustCompile(`service offering|subscription|booking`)},
}

var paymentGatewayRules = []Rule{
	{GatewayStripe, regexp.MustCompile(`stripe`)},
	{GatewayPayPal, regexp.MustCompile(`paypal`)},
	{GatewaySquare, regexp.MustCompile(`square`)},
	{GatewayBraintree, regexp.MustCompile(`braintree`)},
	{GatewayAuthorize, regexp.MustCompile(`authorize\.?net`)},
}

var shippingOptionRules = []Rule{
	{ShippingExpress, regexp.MustCompile(`express|expedited|overnight|same[ -]day`)},
	{ShippingInternational, regexp.MustCompile(`international shipping|worldwide|cross[ -]border`)},
	{ShippingFree, regexp.MustCompile(`free shipping`)},
	{ShippingPickup, regexp.MustCompile(`local pickup|click[ -]and[ -]collect|in[ -]store pickup`)},
	{ShippingStandard, regexp.MustCompile(`standard shipping|ground shipping|flat[ -]rate`)},
}

// firstMatch evaluates an ordered rule table against the combined text.
func firstMatch(rules []Rule, text string) (string, bool) {
	for _, rule := range rules {
		if rule.Pattern.MatchString(text) {
			return rule.Label, true
		}
	}
	return "", false
}

// CategoryLabels returns the canonical category labels in rule order, with the
// fallback label last.
func CategoryLabels() []string {
	labels := make([]string, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		labels = append(labels, rule.Label)
	}
	return append(labels, CategoryOther)
}
