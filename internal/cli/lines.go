package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ridwanfathin/supplier-invoice-service/internal/composer"
)

// parseLine reads a "name:price:quantity" entry. Fields are split from the
// right so item names may contain colons.
func parseLine(entry string) (composer.DraftLine, error) {
	qtyAt := strings.LastIndex(entry, ":")
	if qtyAt < 0 {
		return composer.DraftLine{}, fmt.Errorf("line %q: expected name:price:quantity", entry)
	}
	priceAt := strings.LastIndex(entry[:qtyAt], ":")
	if priceAt < 0 {
		return composer.DraftLine{}, fmt.Errorf("line %q: expected name:price:quantity", entry)
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(entry[qtyAt+1:]))
	if err != nil {
		return composer.DraftLine{}, fmt.Errorf("line %q: quantity must be a whole number", entry)
	}

	return composer.DraftLine{
		ItemName:  entry[:priceAt],
		ItemPrice: strings.TrimSpace(entry[priceAt+1 : qtyAt]),
		Quantity:  quantity,
	}, nil
}

func parseLines(entries []string) ([]composer.DraftLine, error) {
	lines := make([]composer.DraftLine, 0, len(entries))
	for _, entry := range entries {
		line, err := parseLine(entry)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
