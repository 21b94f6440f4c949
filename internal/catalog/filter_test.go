package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timecost/internal/catalog"
)

func titles(products []catalog.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

func TestSelectTimepiecesKeepsOrderAcrossPages(t *testing.T) {
	pages := []catalog.Page{
		{Number: 1, Products: []catalog.Product{
			product("Wall", "Clock"),
			product("Shirt", "Apparel"),
			product("Diver", "Watch"),
		}},
		{Number: 2, Products: []catalog.Product{
			product("Mantel", "Clock"),
			product("Hat", "Hat"),
		}},
	}

	selected := catalog.SelectTimepieces(pages)
	require.Equal(t, []string{"Wall", "Diver", "Mantel"}, titles(selected))
}

func TestSelectTimepiecesIsCaseSensitive(t *testing.T) {
	pages := []catalog.Page{{Products: []catalog.Product{
		product("lower", "watch"),
		product("upper", "WATCH"),
		product("padded", " Clock"),
		product("exact", "Watch"),
	}}}

	require.Equal(t, []string{"exact"}, titles(catalog.SelectTimepieces(pages)))
}

func TestSelectTimepiecesIsIdempotent(t *testing.T) {
	pages := []catalog.Page{{Products: []catalog.Product{
		product("Wall", "Clock", variant("Oak", "30.00")),
		product("Lamp", "Lamp"),
		product("Diver", "Watch"),
	}}}

	once := catalog.SelectTimepieces(pages)
	twice := catalog.SelectTimepieces([]catalog.Page{{Products: once}})
	require.Equal(t, once, twice)
}

func TestSelectTimepiecesEmpty(t *testing.T) {
	require.Empty(t, catalog.SelectTimepieces(nil))
	require.Empty(t, catalog.SelectTimepieces([]catalog.Page{{Products: []catalog.Product{product("Lamp", "Lamp")}}}))
}

func TestSelectTimepiecesDoesNotMutateInput(t *testing.T) {
	pages := []catalog.Page{{Products: []catalog.Product{
		product("Lamp", "Lamp"),
		product("Wall", "Clock"),
	}}}
	_ = catalog.SelectTimepieces(pages)
	require.Equal(t, []string{"Lamp", "Wall"}, titles(pages[0].Products))
}
