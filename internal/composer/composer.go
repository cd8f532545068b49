// Package composer turns user-edited draft invoice lines into a priced,
// validated submission and runs the two-phase submission against a backend.
package composer

import (
	"fmt"
	"strings"

	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/shopspring/decimal"
)

// Status is the classification of a draft line against the catalog
type Status string

const (
	// StatusNone means the line is missing a name or price
	StatusNone Status = "none"
	// StatusExists means the line references an existing catalog item
	StatusExists Status = "exists"
	// StatusNew means the line implies a new catalog item
	StatusNew Status = "new"
	// StatusDuplicate means an earlier line already has the same name and price
	StatusDuplicate Status = "duplicate"
)

// DraftLine is an unsaved invoice line as entered by the user.
// ItemID is only set while Status is StatusExists. Whitespace is only trimmed
// for the blank-name check: catalog matching and duplicate detection compare
// the name as typed, so "Lampe " and "Lampe" are different items.
type DraftLine struct {
	ItemName  string
	ItemPrice string
	Quantity  int
	ItemID    string
	Status    Status
}

// Header carries the invoice fields that are not derived from the lines
type Header struct {
	InvoiceNumber string
	SupplierID    string
}

// Draft is a complete unsaved invoice
type Draft struct {
	Header Header
	Lines  []DraftLine
}

// ValidationError lists every problem found in a draft
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid invoice: " + strings.Join(e.Messages, ", ")
}

// dedupKey is the pair used to detect repeated lines within one draft
func dedupKey(line DraftLine) string {
	return strings.ToLower(line.ItemName) + "-" + line.ItemPrice
}

// Classify recomputes the status and bound item of every line. It must be
// called again whenever a name, a price or the catalog changes.
func Classify(lines []DraftLine, catalog []domain.Item) []DraftLine {
	seen := make(map[string]bool, len(lines))
	out := make([]DraftLine, len(lines))

	for i, line := range lines {
		line.ItemID = ""
		line.Status = StatusNone

		if strings.TrimSpace(line.ItemName) != "" && line.ItemPrice != "" {
			key := dedupKey(line)
			switch {
			case seen[key]:
				line.Status = StatusDuplicate
			default:
				line.Status = StatusNew
				for _, item := range catalog {
					if item.Matches(line.ItemName, line.ItemPrice) {
						line.Status = StatusExists
						line.ItemID = item.ID
						break
					}
				}
			}
			seen[key] = true
		}
		out[i] = line
	}
	return out
}

// LineTotal prices a single draft line. Unparseable prices count as zero.
func LineTotal(line DraftLine) decimal.Decimal {
	price, err := domain.ParseAmount(line.ItemPrice)
	if err != nil {
		return decimal.Zero
	}
	return domain.LineTotal(price, line.Quantity)
}

// Totals prices the whole draft
func Totals(lines []DraftLine) domain.Totals {
	lineTotals := make([]decimal.Decimal, 0, len(lines))
	for _, line := range lines {
		lineTotals = append(lineTotals, LineTotal(line))
	}
	return domain.CalculateTotals(lineTotals)
}

// Validate checks the draft and returns a *ValidationError carrying all
// violations, or nil when the draft can be submitted.
func Validate(draft Draft) error {
	var messages []string

	if strings.TrimSpace(draft.Header.InvoiceNumber) == "" {
		messages = append(messages, "Invoice number is required")
	}
	if strings.TrimSpace(draft.Header.SupplierID) == "" {
		messages = append(messages, "Supplier is required")
	}
	if len(draft.Lines) == 0 {
		messages = append(messages, "Invoice must have at least one line")
	}

	seen := make(map[string]bool, len(draft.Lines))
	for i, line := range draft.Lines {
		n := i + 1
		if strings.TrimSpace(line.ItemName) == "" {
			messages = append(messages, fmt.Sprintf("Line %d: Item name is required", n))
		}
		if price, err := domain.ParseMoney(line.ItemPrice); err != nil || !price.IsPositive() {
			messages = append(messages, fmt.Sprintf("Line %d: Valid price is required", n))
		}
		if line.Quantity <= 0 {
			messages = append(messages, fmt.Sprintf("Line %d: Quantity must be greater than 0", n))
		}

		key := dedupKey(line)
		if seen[key] {
			messages = append(messages, fmt.Sprintf("Line %d: Duplicate item detected", n))
		}
		seen[key] = true
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

// PlannedLine is a line instruction in a submission plan. Exactly one of
// ItemID and NewItem is meaningful: NewItem indexes Plan.NewItems and is -1
// when the line references an existing item.
type PlannedLine struct {
	Quantity int
	ItemID   string
	NewItem  int
}

// Plan is a validated draft split into items to create and lines to attach
type Plan struct {
	Invoice  domain.InvoiceInput
	NewItems []domain.ItemInput
	Lines    []PlannedLine
	Totals   domain.Totals
}

// Compose classifies the draft against the catalog, validates it and builds
// the submission plan. The invoice amount is the pre-tax subtotal.
func Compose(draft Draft, catalog []domain.Item) (*Plan, error) {
	draft.Lines = Classify(draft.Lines, catalog)
	if err := Validate(draft); err != nil {
		return nil, err
	}

	totals := Totals(draft.Lines)
	plan := &Plan{
		Invoice: domain.InvoiceInput{
			InvoiceNumber: strings.TrimSpace(draft.Header.InvoiceNumber),
			Amount:        totals.Amount(),
			SupplierID:    draft.Header.SupplierID,
		},
		Lines:  make([]PlannedLine, 0, len(draft.Lines)),
		Totals: totals,
	}

	for _, line := range draft.Lines {
		if line.Status == StatusExists {
			plan.Lines = append(plan.Lines, PlannedLine{Quantity: line.Quantity, ItemID: line.ItemID, NewItem: -1})
			continue
		}
		plan.Lines = append(plan.Lines, PlannedLine{Quantity: line.Quantity, NewItem: len(plan.NewItems)})
		plan.NewItems = append(plan.NewItems, domain.ItemInput{
			Name:  line.ItemName,
			Price: line.ItemPrice,
		})
	}

	return plan, nil
}
