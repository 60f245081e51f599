package catalog

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/rxmart/internal/api"
)

func TestLookup(t *testing.T) {
	r, err := Lookup("Products")
	require.NoError(t, err)
	assert.Equal(t, "products", r.ResourceName())

	r, err = Lookup(" apotek ")
	require.NoError(t, err)
	assert.Equal(t, "pharmacies", r.ResourceName())

	r, err = Lookup("filters")
	require.NoError(t, err)
	assert.Equal(t, "Categories", r.ResourceTitle())

	_, err = Lookup("invoices")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categories, orders, partners, pharmacies, products")
}

func TestAllMatchesNames(t *testing.T) {
	var names []string
	for _, r := range All() {
		names = append(names, r.ResourceName())
	}
	assert.ElementsMatch(t, Names(), names)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "Rp500", FormatPrice(500))
	assert.Equal(t, "Rp12.500", FormatPrice(12500))
	assert.Equal(t, "Rp1.250.000", FormatPrice(1249999.6))
}

func TestRank(t *testing.T) {
	items := []Item{
		{Label: "Vitamin C"},
		{Label: "Paracetamol"},
		{Label: "Paracetamol Syrup"},
	}
	ranked := Rank("paracet", items)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Paracetamol", ranked[0].Label)
	assert.Equal(t, "Paracetamol Syrup", ranked[1].Label)
	assert.Equal(t, "Vitamin C", ranked[2].Label)

	assert.Equal(t, items, Rank("", items))
}

func TestSearchAllPartialFailure(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == api.OrdersPath {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"forbidden"}`))
			return
		}
		writePage(w, []map[string]any{{"id": 1, "name": "Sehat " + r.URL.Path}}, map[string]any{"page": 1, "total_page": 1})
	})

	groups, err := SearchAll(context.Background(), client, "sehat", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders: forbidden")
	require.Len(t, groups, 5)

	for _, g := range groups {
		if g.Resource == "orders" {
			assert.Error(t, g.Err)
			assert.Empty(t, g.Items)
			continue
		}
		assert.NoError(t, g.Err)
		assert.Len(t, g.Items, 1, g.Resource)
	}
}
