package pricing

import "github.com/shopspring/decimal"

// DisplayPlaces is the number of fractional digits shown for currency.
const DisplayPlaces = 2

// RoundForDisplay rounds half away from zero to cents. Totals are never
// negative, so this is round-half-up.
func RoundForDisplay(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(DisplayPlaces)
}

// FormatCAD renders amount as Canadian dollars, e.g. "$114.98".
func FormatCAD(amount decimal.Decimal) string {
	return "$" + RoundForDisplay(amount).StringFixed(DisplayPlaces)
}
