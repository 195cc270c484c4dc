package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// formatRupiah renderiza un monto como Rupiah con separador de miles
// indonesio. Ej: 25000 → "Rp 25.000".
func formatRupiah(d decimal.Decimal) string {
	return rupiahPrinter.Sprintf("Rp %v",
		number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(0)))
}
