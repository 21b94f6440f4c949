// Package tax resolves the sales tax multiplier applied to taxable purchases
// for a Canadian province or territory.
package tax

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NoTax returns the multiplier applied when a region is not recognised.
func NoTax() decimal.Decimal {
	return decimal.NewFromInt(1)
}

// codes lists the recognised province/territory codes in prompt order.
var codes = []string{"AB", "BC", "MB", "NB", "NL", "NT", "NS", "NU", "ON", "PE", "QC", "SK", "YT"}

// Table maps canonical uppercase region codes to a multiplier (1 + rate).
// The zero value resolves every code to NoTax().
type Table struct {
	rates map[string]decimal.Decimal
}

// NewTable builds an immutable table from the provided rates. Keys are
// normalised to uppercase.
func NewTable(rates map[string]decimal.Decimal) Table {
	copied := make(map[string]decimal.Decimal, len(rates))
	for code, multiplier := range rates {
		copied[normalise(code)] = multiplier
	}
	return Table{rates: copied}
}

// Canada returns the GST/HST/PST multipliers for every province and territory.
func Canada() Table {
	gst := decimal.RequireFromString("1.05")
	onmb := decimal.RequireFromString("1.13")
	hst := decimal.RequireFromString("1.15")
	return NewTable(map[string]decimal.Decimal{
		"AB": gst,
		"NT": gst,
		"NU": gst,
		"YT": gst,
		"BC": decimal.RequireFromString("1.12"),
		"MB": onmb,
		"ON": onmb,
		"NB": hst,
		"NL": hst,
		"NS": hst,
		"PE": decimal.RequireFromString("1.14"),
		"QC": decimal.RequireFromString("1.14975"),
		"SK": decimal.RequireFromString("1.10"),
	})
}

// Resolve returns the multiplier for code. Lookup ignores case and surrounding
// whitespace; unknown codes resolve to NoTax().
func (t Table) Resolve(code string) decimal.Decimal {
	if multiplier, ok := t.rates[normalise(code)]; ok {
		return multiplier
	}
	return NoTax()
}

// Known reports whether code has an entry in the table.
func (t Table) Known(code string) bool {
	_, ok := t.rates[normalise(code)]
	return ok
}

// Codes returns the recognised region codes in the order they are offered to the user.
func Codes() []string {
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

func normalise(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
