package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gravitrone/rxmart/internal/api"
	"github.com/gravitrone/rxmart/internal/isearch"
)

// Resource is a Source with its record type erased.
type Resource interface {
	ResourceName() string
	ResourceTitle() string
	Items(client *api.Client) isearch.FetchFunc[Item]
}

var Products = Source[api.Product]{
	Name:       "products",
	Title:      "Products",
	Path:       api.ProductsPath,
	QueryParam: "name",
	Style:      PageStyle,
	List: func(ctx context.Context, c *api.Client, p api.ListParams) (*api.Page[api.Product], error) {
		return c.SearchProducts(ctx, p)
	},
	Detail: func(p api.Product) string {
		parts := nonEmpty(p.Form, p.Manufacturer)
		if p.Price > 0 {
			parts = append(parts, FormatPrice(p.Price))
		}
		if p.PrescriptionRequired {
			parts = append(parts, "Rx")
		}
		return strings.Join(parts, " · ")
	},
}

var Pharmacies = Source[api.Pharmacy]{
	Name:       "pharmacies",
	Title:      "Pharmacies",
	Path:       api.PharmaciesPath,
	QueryParam: "name",
	Style:      CursorStyle,
	List: func(ctx context.Context, c *api.Client, p api.ListParams) (*api.Page[api.Pharmacy], error) {
		return c.SearchPharmacies(ctx, p)
	},
	Detail: func(p api.Pharmacy) string {
		parts := nonEmpty(p.City, p.Address)
		if !p.Active {
			parts = append(parts, "inactive")
		}
		return strings.Join(parts, " · ")
	},
}

var Partners = Source[api.Partner]{
	Name:       "partners",
	Title:      "Partners",
	Path:       api.PartnersPath,
	QueryParam: "name",
	Style:      PageStyle,
	List: func(ctx context.Context, c *api.Client, p api.ListParams) (*api.Page[api.Partner], error) {
		return c.SearchPartners(ctx, p)
	},
	Detail: func(p api.Partner) string {
		parts := nonEmpty(p.Email)
		if p.PharmacyCount > 0 {
			parts = append(parts, fmt.Sprintf("%d pharmacies", p.PharmacyCount))
		}
		return strings.Join(parts, " · ")
	},
}

var Orders = Source[api.Order]{
	Name:       "orders",
	Title:      "Orders",
	Path:       api.OrdersPath,
	QueryParam: "search",
	Style:      PageStyle,
	List: func(ctx context.Context, c *api.Client, p api.ListParams) (*api.Page[api.Order], error) {
		return c.SearchOrders(ctx, p)
	},
	Detail: func(o api.Order) string {
		parts := nonEmpty(o.Status, o.PharmacyName)
		if o.Total > 0 {
			parts = append(parts, FormatPrice(o.Total))
		}
		return strings.Join(parts, " · ")
	},
}

var Categories = Source[api.Category]{
	Name:       "categories",
	Title:      "Categories",
	Path:       api.CategoriesPath,
	QueryParam: "name",
	Style:      CursorStyle,
	List: func(ctx context.Context, c *api.Client, p api.ListParams) (*api.Page[api.Category], error) {
		return c.SearchCategories(ctx, p)
	},
	Detail: func(c api.Category) string {
		if c.ProductCount > 0 {
			return fmt.Sprintf("%d products", c.ProductCount)
		}
		return ""
	},
}

var registry = map[string]Resource{
	Products.Name:   Products,
	Pharmacies.Name: Pharmacies,
	Partners.Name:   Partners,
	Orders.Name:     Orders,
	Categories.Name: Categories,
}

var aliases = map[string]string{
	"product":  "products",
	"drugs":    "products",
	"pharmacy": "pharmacies",
	"apotek":   "pharmacies",
	"partner":  "partners",
	"order":    "orders",
	"category": "categories",
	"filters":  "categories",
}

// Lookup resolves a resource by its CLI name or alias.
func Lookup(name string) (Resource, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	if r, ok := registry[key]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("unknown resource %q (want one of: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the canonical resource names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every resource in console tab order.
func All() []Resource {
	return []Resource{Products, Pharmacies, Partners, Orders, Categories}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// FormatPrice renders an amount in rupiah with dot thousands separators.
func FormatPrice(amount float64) string {
	n := int64(amount + 0.5)
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return "Rp" + b.String()
}
