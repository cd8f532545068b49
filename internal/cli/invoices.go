package cli

import (
	"fmt"
	"io"

	"github.com/ridwanfathin/supplier-invoice-service/internal/composer"
	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// InvoiceCreateOptions holds flags for invoices create
type InvoiceCreateOptions struct {
	*RootOptions
	Number   string
	Supplier string
	Lines    []string
	DryRun   bool
}

// NewInvoicesCommand creates the invoices command group
func NewInvoicesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "List, show and compose invoices",
	}
	cmd.AddCommand(newInvoicesListCommand(rootOpts))
	cmd.AddCommand(newInvoicesGetCommand(rootOpts))
	cmd.AddCommand(newInvoicesCreateCommand(rootOpts))
	return cmd
}

func newInvoicesListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.output(cmd)
			invoices, err := opts.client().ListInvoices(cmd.Context())
			if err != nil {
				return out.Failure("failed to list invoices", err)
			}
			return out.Success(invoices, func(w io.Writer) error {
				fmt.Fprintln(w, "ID\tNUMBER\tSUPPLIER\tAMOUNT\tLINES\tCREATED")
				for _, inv := range invoices {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
						inv.ID, inv.InvoiceNumber, inv.Supplier.Name, inv.Amount,
						len(inv.InvoiceLines), inv.CreatedAt.Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}
}

func newInvoicesGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <invoice-id>",
		Short: "Show one invoice with its lines and totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.output(cmd)
			invoice, err := opts.client().GetInvoice(cmd.Context(), args[0])
			if err != nil {
				return out.Failure("failed to get invoice", err)
			}
			return out.Success(invoice, printInvoice(invoice))
		},
	}
}

func newInvoicesCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvoiceCreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Compose and submit an invoice",
		Long: `Compose and submit an invoice.

Each --line is "name:price:quantity". Lines matching a catalog item by name
(case-insensitive) and exact price reuse that item; other lines create new
items first. The invoice amount is the pre-tax subtotal of the lines.

Submission is not atomic: if the invoice cannot be created after new items
were, those items stay in the catalog and their ids are reported.`,
		Example: `  invoicectl invoices create --number INV-2025-004 --supplier <supplier-id> \
    --line "Table en bois:750.00:2" --line "Lampe:40.00:1"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createInvoice(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Number, "number", "", "invoice number")
	cmd.Flags().StringVar(&opts.Supplier, "supplier", "", "supplier id")
	cmd.Flags().StringArrayVar(&opts.Lines, "line", nil, "invoice line as name:price:quantity (repeatable)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the submission plan without calling the API")

	return cmd
}

func createInvoice(cmd *cobra.Command, opts *InvoiceCreateOptions) error {
	out := opts.output(cmd)

	lines, err := parseLines(opts.Lines)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --line", err)
	}

	api := opts.client()
	catalog, err := api.ListItems(cmd.Context())
	if err != nil {
		return out.Failure("failed to load catalog", err)
	}

	plan, err := composer.Compose(composer.Draft{
		Header: composer.Header{InvoiceNumber: opts.Number, SupplierID: opts.Supplier},
		Lines:  lines,
	}, catalog)
	if err != nil {
		return out.Failure("invoice draft rejected", err)
	}

	if opts.DryRun {
		view := newPlanView(plan)
		return out.Success(view, printPlan(view))
	}

	submitted, err := composer.Submit(cmd.Context(), api, plan)
	if err != nil {
		return out.Failure("invoice submission failed", err)
	}

	invoice, err := api.GetInvoice(cmd.Context(), submitted.ID)
	if err != nil {
		return out.Failure("invoice created but could not be reloaded", err)
	}
	return out.Success(invoice, printInvoice(invoice))
}

func printInvoice(invoice *domain.InvoiceWithLines) func(io.Writer) error {
	return func(w io.Writer) error {
		fmt.Fprintf(w, "Invoice\t%s\n", invoice.InvoiceNumber)
		fmt.Fprintf(w, "ID\t%s\n", invoice.ID)
		fmt.Fprintf(w, "Supplier\t%s\n", invoice.Supplier.Name)
		fmt.Fprintf(w, "Created\t%s\n", invoice.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Fprintln(w)

		fmt.Fprintln(w, "ITEM\tPRICE\tQTY\tTOTAL")
		for _, line := range invoice.InvoiceLines {
			total := "-"
			if price, err := domain.ParseAmount(line.Item.Price); err == nil {
				total = domain.FormatAmount(domain.LineTotal(price, line.Quantity))
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", line.Item.Name, line.Item.Price, line.Quantity, total)
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "Amount\t%s\n", invoice.Amount)
		if subtotal, err := invoice.Subtotal(); err == nil {
			totals := domain.CalculateTotals([]decimal.Decimal{subtotal})
			fmt.Fprintf(w, "Tax\t%s\n", domain.FormatAmount(totals.Tax))
			fmt.Fprintf(w, "Total\t%s\n", domain.FormatAmount(totals.Total))
		}
		return nil
	}
}
