// File path: internal/docs/templates.go

// Package docs renders fixed markdown skeletons for storefront components and
// APIs. Output is pure string interpolation: identical inputs produce
// byte-identical documents.
package docs

import (
	"fmt"
	"strings"
)

// templateKind selects which skeleton variant to render.
type templateKind struct {
	name     string
	propRows []string
	example  string
}

var componentKinds = []templateKind{
	{
		name: "product",
		propRows: []string{
			"| `product` | `Product` | yes | Product record to render |",
			"| `onAddToCart` | `(id: string) => void` | no | Called when the buyer adds the product |",
			"| `showPricing` | `boolean` | no | Toggles the price block |",
		},
		example: "<%s product={product} onAddToCart={handleAdd} />",
	},
	{
		name: "cart",
		propRows: []string{
			"| `items` | `CartItem[]` | yes | Current cart line items |",
			"| `onQuantityChange` | `(id: string, qty: number) => void` | no | Quantity adjustment handler |",
			"| `onRemove` | `(id: string) => void` | no | Line item removal handler |",
		},
		example: "<%s items={cart.items} onRemove={handleRemove} />",
	},
	{
		name: "checkout",
		propRows: []string{
			"| `steps` | `CheckoutStep[]` | yes | Ordered checkout steps |",
			"| `onComplete` | `(order: Order) => void` | yes | Called when the order is placed |",
			"| `allowGuest` | `boolean` | no | Enables guest checkout |",
		},
		example: "<%s steps={steps} onComplete={handleOrder} />",
	},
	{
		name: "payment",
		propRows: []string{
			"| `amount` | `Money` | yes | Charge amount |",
			"| `gateways` | `Gateway[]` | yes | Enabled payment gateways |",
			"| `onAuthorized` | `(token: string) => void` | yes | Authorization callback |",
		},
		example: "<%s amount={total} gateways={gateways} />",
	},
	{
		name: "shipping",
		propRows: []string{
			"| `options` | `ShippingOption[]` | yes | Available shipping options |",
			"| `address` | `Address` | yes | Destination address |",
			"| `onSelect` | `(option: ShippingOption) => void` | no | Selection handler |",
		},
		example: "<%s options={options} address={address} />",
	},
}

var genericComponentKind = templateKind{
	name: "generic",
	propRows: []string{
		"| `className` | `string` | no | Additional CSS classes |",
		"| `children` | `ReactNode` | no | Nested content |",
	},
	example: "<%s />",
}

// resolveComponentKind picks the skeleton by substring match on the component
// type, treating "fulfillment" as shipping.
func resolveComponentKind(componentType string) templateKind {
	normalized := strings.ToLower(strings.TrimSpace(componentType))
	if strings.Contains(normalized, "fulfillment") {
		normalized = "shipping"
	}
	for _, kind := range componentKinds {
		if strings.Contains(normalized, kind.name) {
			return kind
		}
	}
	return genericComponentKind
}

// ComponentDoc renders the markdown documentation skeleton for a storefront
// component. The description falls back to a neutral sentence when empty.
func ComponentDoc(name, componentType, description string) string {
	kind := resolveComponentKind(componentType)
	if strings.TrimSpace(description) == "" {
		description = fmt.Sprintf("The %s component encapsulates %s functionality for the storefront.", name, kind.name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	b.WriteString("## Description\n\n")
	b.WriteString(description)
	b.WriteString("\n\n")
	b.WriteString("## Usage\n\n")
	fmt.Fprintf(&b, "```jsx\nimport { %s } from '@/components';\n\n%s\n```\n\n", name, fmt.Sprintf(kind.example, name))
	b.WriteString("## Props\n\n")
	b.WriteString("| Prop | Type | Required | Description |\n")
	b.WriteString("| ---- | ---- | -------- | ----------- |\n")
	for _, row := range kind.propRows {
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString("## Accessibility\n\n")
	fmt.Fprintf(&b, "- %s is keyboard navigable; interactive elements expose focus states.\n", name)
	b.WriteString("- Labels and status changes are announced through ARIA attributes.\n\n")
	b.WriteString("## Best Practices\n\n")
	fmt.Fprintf(&b, "- Keep %s presentational; fetch data in the parent container.\n", name)
	b.WriteString("- Validate inputs before invoking callbacks.\n")
	b.WriteString("- Memoize expensive renders for large collections.\n")
	return b.String()
}

var apiSections = map[string][]string{
	"product": {
		"| GET | `/api/products` | List products with pagination |",
		"| GET | `/api/products/{id}` | Fetch a single product |",
		"| POST | `/api/products` | Create a product |",
		"| PUT | `/api/products/{id}` | Update a product |",
		"| DELETE | `/api/products/{id}` | Remove a product |",
	},
	"cart": {
		"| GET | `/api/cart` | Fetch the active cart |",
		"| POST | `/api/cart/items` | Add a line item |",
		"| PATCH | `/api/cart/items/{id}` | Change quantity |",
		"| DELETE | `/api/cart/items/{id}` | Remove a line item |",
	},
	"checkout": {
		"| POST | `/api/checkout` | Begin a checkout session |",
		"| POST | `/api/checkout/complete` | Place the order |",
	},
	"payment": {
		"| POST | `/api/payments/intents` | Create a payment intent |",
		"| POST | `/api/payments/capture` | Capture an authorized payment |",
		"| POST | `/api/payments/refunds` | Issue a refund |",
	},
	"shipping": {
		"| GET | `/api/shipping/rates` | Quote shipping rates |",
		"| POST | `/api/shipping/labels` | Purchase a shipping label |",
	},
}

var genericAPISection = []string{
	"| GET | `/api/resource` | List resources |",
	"| POST | `/api/resource` | Create a resource |",
}

// APIDoc renders the markdown documentation skeleton for an API, keyed by
// substring match on the API name.
func APIDoc(apiName string) string {
	normalized := strings.ToLower(strings.TrimSpace(apiName))
	if strings.Contains(normalized, "fulfillment") {
		normalized = "shipping"
	}
	rows := genericAPISection
	for _, key := range []string{"product", "cart", "checkout", "payment", "shipping"} {
		if strings.Contains(normalized, key) {
			rows = apiSections[key]
			break
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", apiName)
	b.WriteString("## Description\n\n")
	fmt.Fprintf(&b, "REST endpoints backing %s operations.\n\n", apiName)
	b.WriteString("## Usage\n\n")
	b.WriteString("All endpoints accept and return JSON. Authenticate with a bearer token.\n\n")
	b.WriteString("## Endpoints\n\n")
	b.WriteString("| Method | Path | Description |\n")
	b.WriteString("| ------ | ---- | ----------- |\n")
	for _, row := range rows {
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString("## Accessibility\n\n")
	b.WriteString("- Error payloads include machine-readable codes and human-readable messages.\n\n")
	b.WriteString("## Best Practices\n\n")
	b.WriteString("- Paginate list endpoints; never return unbounded collections.\n")
	b.WriteString("- Use idempotency keys on mutating payment operations.\n")
	return b.String()
}
