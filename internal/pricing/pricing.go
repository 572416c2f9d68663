// Package pricing computes order price quotes. The numbers form a
// policy table rather than an algorithm: a base rate plus fixed
// surcharges per order attribute.
package pricing

// Base is the starting price of any bot, in rubles.
const Base = 5000

// Attribute values that carry a surcharge.
const (
	TypeShop       = "магазин"
	ComplexityHigh = "сложный"
	HostingRented  = "мой сервер"
)

var (
	typeSurcharge       = map[string]int{TypeShop: 5000}
	complexitySurcharge = map[string]int{ComplexityHigh: 7000}
	hostingSurcharge    = map[string]int{HostingRented: 2000}
)

// Price returns the quote for the given order attributes after
// subtracting bonus, floored at zero. Unrecognized attribute values
// carry no surcharge.
func Price(typeBot, complexity, hosting string, bonus int) int {
	price := Base + typeSurcharge[typeBot] + complexitySurcharge[complexity] + hostingSurcharge[hosting]
	price -= bonus
	if price < 0 {
		price = 0
	}
	return price
}
