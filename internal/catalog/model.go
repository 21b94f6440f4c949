package catalog

import "github.com/shopspring/decimal"

// Product is one storefront listing as published on a catalog page.
type Product struct {
	Title    string    `json:"title"`
	Category string    `json:"product_type"`
	Variants []Variant `json:"variants"`
}

// Variant is a single orderable configuration of a product. Price accepts both
// JSON strings ("19.99") and numbers and is decoded without a float64 round-trip.
type Variant struct {
	Title            string          `json:"title"`
	RequiresShipping bool            `json:"requires_shipping"`
	Taxable          bool            `json:"taxable"`
	Available        bool            `json:"available"`
	Price            decimal.Decimal `json:"price"`
}

// Page holds the products decoded from one catalog response, in catalog order.
type Page struct {
	Number   int
	Products []Product
}

// Empty reports whether the page is the end-of-catalog sentinel.
func (p Page) Empty() bool {
	return len(p.Products) == 0
}
