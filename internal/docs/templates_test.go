// File path: internal/docs/templates_test.go
package docs

import (
	"strings"
	"testing"
)

func TestComponentDocIsReproducible(t *testing.T) {
	first := ComponentDoc("Foo", "cart", "desc")
	second := ComponentDoc("Foo", "cart", "desc")
	if first != second {
		t.Fatalf("identical inputs must produce identical output")
	}
}

func TestComponentDocStructure(t *testing.T) {
	doc := ComponentDoc("ProductCard", "product grid", "Renders a product tile.")
	if !strings.HasPrefix(doc, "# ProductCard\n") {
		t.Fatalf("doc must start with H1 name, got %q", doc[:30])
	}
	for _, section := range []string{"## Description", "## Usage", "## Props", "## Accessibility", "## Best Practices"} {
		if !strings.Contains(doc, section) {
			t.Fatalf("missing section %q", section)
		}
	}
	if !strings.Contains(doc, "Renders a product tile.") {
		t.Fatalf("description not interpolated")
	}
	if !strings.Contains(doc, "`product`") {
		t.Fatalf("expected product prop table")
	}
}

func TestComponentDocKindSelection(t *testing.T) {
	cases := []struct {
		componentType string
		marker        string
	}{
		{"shopping cart", "`items`"},
		{"checkout wizard", "`steps`"},
		{"payment form", "`gateways`"},
		{"fulfillment tracker", "`ShippingOption[]`"},
		{"sidebar", "`className`"},
	}
	for _, tc := range cases {
		doc := ComponentDoc("Widget", tc.componentType, "")
		if !strings.Contains(doc, tc.marker) {
			t.Fatalf("type %q: expected marker %q in doc", tc.componentType, tc.marker)
		}
	}
}

func TestComponentDocDefaultDescription(t *testing.T) {
	doc := ComponentDoc("CartSummary", "cart", "")
	if !strings.Contains(doc, "The CartSummary component encapsulates cart functionality") {
		t.Fatalf("expected generated default description")
	}
}

func TestAPIDocStructureAndSelection(t *testing.T) {
	doc := APIDoc("Payments API")
	if !strings.HasPrefix(doc, "# Payments API\n") {
		t.Fatalf("doc must start with H1 name")
	}
	if !strings.Contains(doc, "/api/payments/refunds") {
		t.Fatalf("expected payment endpoints")
	}
	generic := APIDoc("Audit API")
	if !strings.Contains(generic, "/api/resource") {
		t.Fatalf("expected generic endpoints for unmatched API name")
	}
	if APIDoc("Payments API") != doc {
		t.Fatalf("identical inputs must produce identical output")
	}
}
