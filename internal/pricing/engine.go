package pricing

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/timecost/internal/catalog"
	"github.com/noah-isme/timecost/internal/obs"
)

// Reporter receives a notice for every variant left out of the total.
type Reporter interface {
	Unavailable(product catalog.Product, variant catalog.Variant)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(product catalog.Product, variant catalog.Variant)

// Unavailable implements Reporter.
func (f ReporterFunc) Unavailable(product catalog.Product, variant catalog.Variant) {
	f(product, variant)
}

// Options carries the optional collaborators of ComputeTotal.
type Options struct {
	Reporter Reporter
	Logger   *zerolog.Logger
	Metrics  *obs.CatalogMetrics
}

// ProductSubtotal is what one product adds to the grand total.
type ProductSubtotal struct {
	Title    string
	Subtotal decimal.Decimal
}

// Summary aggregates computed pricing components. Amounts are exact and
// unrounded; round only when displaying.
type Summary struct {
	Products    []ProductSubtotal
	Base        decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	Purchasable int
	Unavailable int
}

// Purchasable reports whether a variant can be ordered: it must both ship and
// be in stock. Digital (non-shipping) variants are never counted.
func Purchasable(v catalog.Variant) bool {
	return v.RequiresShipping && v.Available
}

// Contribution is what one unit of v adds to the total under multiplier.
func Contribution(v catalog.Variant, multiplier decimal.Decimal) decimal.Decimal {
	if !Purchasable(v) {
		return decimal.Zero
	}
	if v.Taxable {
		return v.Price.Mul(multiplier)
	}
	return v.Price
}

// ComputeTotal prices one unit of every purchasable variant of products,
// applying multiplier to taxable variants.
func ComputeTotal(products []catalog.Product, multiplier decimal.Decimal, opts Options) Summary {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	summary := Summary{
		Products: make([]ProductSubtotal, 0, len(products)),
		Base:     decimal.Zero,
		Total:    decimal.Zero,
	}
	for _, p := range products {
		subtotal := decimal.Zero
		for _, v := range p.Variants {
			if !Purchasable(v) {
				summary.Unavailable++
				logger.Info().Str("product", p.Title).Str("variant", v.Title).Msg("variant_unavailable")
				if opts.Reporter != nil {
					opts.Reporter.Unavailable(p, v)
				}
				observe(opts.Metrics, "unavailable")
				continue
			}
			summary.Purchasable++
			summary.Base = summary.Base.Add(v.Price)
			subtotal = subtotal.Add(Contribution(v, multiplier))
			if v.Taxable {
				observe(opts.Metrics, "taxed")
			} else {
				observe(opts.Metrics, "untaxed")
			}
		}
		summary.Products = append(summary.Products, ProductSubtotal{Title: p.Title, Subtotal: subtotal})
		summary.Total = summary.Total.Add(subtotal)
	}
	summary.Tax = summary.Total.Sub(summary.Base)

	if opts.Metrics != nil {
		opts.Metrics.TotalCost.Set(summary.Total.InexactFloat64())
	}
	return summary
}

// UnavailableMessage is the console line printed for a skipped variant.
func UnavailableMessage(product catalog.Product, variant catalog.Variant) string {
	return fmt.Sprintf("%s %s is unavailable for order.", variant.Title, product.Title)
}

func observe(m *obs.CatalogMetrics, outcome string) {
	if m == nil {
		return
	}
	m.Variants.WithLabelValues(outcome).Inc()
}
