package catalog

// Categories that count as timepieces. Matching is exact and case-sensitive.
const (
	CategoryWatch = "Watch"
	CategoryClock = "Clock"
)

// IsTimepiece reports whether p is a watch or a clock.
func IsTimepiece(p Product) bool {
	return p.Category == CategoryWatch || p.Category == CategoryClock
}

// SelectTimepieces flattens pages in order and keeps only watches and clocks.
// Products are returned as-is; nothing is copied or modified.
func SelectTimepieces(pages []Page) []Product {
	var out []Product
	for _, page := range pages {
		out = append(out, Timepieces(page.Products)...)
	}
	return out
}

// Timepieces filters a flat product list, preserving order.
func Timepieces(products []Product) []Product {
	var out []Product
	for _, p := range products {
		if IsTimepiece(p) {
			out = append(out, p)
		}
	}
	return out
}
