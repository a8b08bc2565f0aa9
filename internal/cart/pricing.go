package cart

type ItemKind string

const (
	KindMeal  ItemKind = "meal"
	KindDrink ItemKind = "drink"
)

// Item is one cart line. Slice position is insertion order, which is also
// the order in which drink units are allocated the bundle discount.
type Item struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Price               int64    `json:"price"`
	Quantity            int      `json:"quantity"`
	Image               string   `json:"image,omitempty"`
	Type                ItemKind `json:"type"`
	OriginalPrice       int64    `json:"original_price,omitempty"`
	DiscountedPrice     int64    `json:"discounted_price,omitempty"`
	HasDiscountedDrinks bool     `json:"has_discounted_drinks,omitempty"`
}

// Line is a priced line ready to be frozen into an order. A drink line whose
// units straddle the discount cap is split in two so every line has a single
// effective unit price and the order total stays the exact sum of its lines.
type Line struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// discountCap is the number of drink units eligible for the discounted
// price: one per unit of a meal flagged hasDiscountedDrinks, never more
// than the number of drink units present.
func discountCap(items []Item) int {
	eligibleMeals := 0
	totalDrinks := 0
	for _, it := range items {
		switch {
		case it.Type == KindMeal && it.HasDiscountedDrinks:
			eligibleMeals += it.Quantity
		case it.Type == KindDrink:
			totalDrinks += it.Quantity
		}
	}
	if totalDrinks < eligibleMeals {
		return totalDrinks
	}
	return eligibleMeals
}

// Price computes the effective lines for the cart. Pure function: it is
// re-run on every cart mutation, so removing the last eligible meal revokes
// previously shown discounts on the next call.
func Price(items []Item) []Line {
	remaining := discountCap(items)

	lines := make([]Line, 0, len(items))
	for _, it := range items {
		if it.Type != KindDrink {
			lines = append(lines, Line{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.Price})
			continue
		}

		// Every drink unit consumes allocation in insertion order, but only
		// drinks with a discounted price actually get the lower price.
		discounted := it.Quantity
		if remaining < discounted {
			discounted = remaining
		}
		remaining -= discounted

		if it.DiscountedPrice <= 0 {
			lines = append(lines, Line{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.Price})
			continue
		}
		if discounted > 0 {
			lines = append(lines, Line{Name: it.Name, Quantity: discounted, UnitPrice: it.DiscountedPrice})
		}
		if rest := it.Quantity - discounted; rest > 0 {
			lines = append(lines, Line{Name: it.Name, Quantity: rest, UnitPrice: it.Price})
		}
	}
	return lines
}

// Total is the grand total over the priced lines.
func Total(items []Item) int64 {
	var total int64
	for _, l := range Price(items) {
		total += int64(l.Quantity) * l.UnitPrice
	}
	return total
}

func ItemCount(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
