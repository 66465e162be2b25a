// File path: internal/relevance/practices_test.go
package relevance

import (
	"testing"

	"github.com/imashishkh/commerce-kb/internal/kb"
)

func TestResolveAreaDefaultsToProduct(t *testing.T) {
	if got := ResolveArea("unknown-area"); got.Name != "product" {
		t.Fatalf("expected product fallback, got %q", got.Name)
	}
	if got := ResolveArea("security hardening"); got.Name != "security" {
		t.Fatalf("expected security area, got %q", got.Name)
	}
}

func TestResolveAreaDeclarationOrderWins(t *testing.T) {
	// Names matching several areas resolve to the earliest declared one.
	if got := ResolveArea("secure checkout security"); got.Name != "checkout" {
		t.Fatalf("expected checkout to win by declaration order, got %q", got.Name)
	}
	if got := ResolveArea("payment performance"); got.Name != "payment" {
		t.Fatalf("expected payment to win by declaration order, got %q", got.Name)
	}
}

func TestFindBestPracticesRequiresBothConditions(t *testing.T) {
	resources := []kb.Resource{
		{ID: "both", Content: "Best practice for payment gateway retries"},
		{ID: "phrase-only", Content: "General guideline for naming things"},
		{ID: "keyword-only", Content: "payment gateway architecture deep dive"},
		{ID: "both-2", Title: "Refund recommendation", Content: "handling refund disputes"},
	}
	found := FindBestPractices("payment", resources)
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}
	if found[0].ID != "both" || found[1].ID != "both-2" {
		t.Fatalf("unexpected matches: %q, %q", found[0].ID, found[1].ID)
	}
}

func TestFindBestPracticesKeepsCollectionOrderAndCap(t *testing.T) {
	var resources []kb.Resource
	for _, id := range []string{"r1", "r2", "r3", "r4", "r5", "r6"} {
		resources = append(resources, kb.Resource{ID: id, Content: "cart abandonment best practice"})
	}
	found := FindBestPractices("cart", resources)
	if len(found) != 5 {
		t.Fatalf("expected 5 matches, got %d", len(found))
	}
	for i, id := range []string{"r1", "r2", "r3", "r4", "r5"} {
		if found[i].ID != id {
			t.Fatalf("expected collection order preserved, got %q at %d", found[i].ID, i)
		}
	}
}
