package catalogclient

import (
	"time"

	"catalog/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LowStockThreshold is the stock level below which a product counts as low.
const LowStockThreshold = 10

var printer = message.NewPrinter(language.English)

// Categories lists the valid product categories in display order.
func Categories() []string {
	out := make([]string, len(models.Categories))
	copy(out, models.Categories)
	return out
}

// FormatPrice renders price as dollars with thousands separators, e.g. $1,199.99.
func FormatPrice(price float64) string {
	if price < 0 {
		return printer.Sprintf("-$%.2f", -price)
	}
	return printer.Sprintf("$%.2f", price)
}

// FormatDate renders t as a long date, e.g. January 2, 2006.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("January 2, 2006")
}

// Summary aggregates a set of products for an overview.
type Summary struct {
	Products   int
	TotalValue float64
	Categories int
	LowStock   int
}

// Summarize totals stock value, distinct categories and low-stock items.
func Summarize(products []models.Product) Summary {
	s := Summary{Products: len(products)}
	seen := make(map[string]struct{})
	for _, p := range products {
		s.TotalValue += p.Price * float64(p.Stock)
		seen[p.Category] = struct{}{}
		if p.Stock < LowStockThreshold {
			s.LowStock++
		}
	}
	s.Categories = len(seen)
	return s
}
