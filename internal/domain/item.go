package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Item represents a catalog entry that can be referenced by invoice lines.
// Price is kept as the exact decimal text it was created with.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// ItemInput holds the fields required to create an item
type ItemInput struct {
	Name  string
	Price string
}

// Matches reports whether the item has the given name (case-insensitive)
// and exactly the given price text.
func (i Item) Matches(name, price string) bool {
	return strings.ToLower(i.Name) == strings.ToLower(name) && i.Price == price
}

// ItemFilter narrows a catalog search. An empty Name matches every item and
// a nil MaxPrice leaves the price unbounded.
type ItemFilter struct {
	Name     string
	MaxPrice *decimal.Decimal
}

// Accepts reports whether the item satisfies the filter. Items whose price
// cannot be parsed never satisfy a price bound.
func (f ItemFilter) Accepts(item Item) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.MaxPrice == nil {
		return true
	}
	price, err := decimal.NewFromString(item.Price)
	if err != nil {
		return false
	}
	return price.LessThanOrEqual(*f.MaxPrice)
}
