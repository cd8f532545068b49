package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewReportsCommand creates the reports command group
func NewReportsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Ledger reports",
	}
	cmd.AddCommand(newReportsSummaryCommand(rootOpts))
	return cmd
}

func newReportsSummaryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Totals, recent invoices and top suppliers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.output(cmd)
			summary, err := opts.client().Summary(cmd.Context())
			if err != nil {
				return out.Failure("failed to load summary", err)
			}
			return out.Success(summary, func(w io.Writer) error {
				fmt.Fprintf(w, "Invoices\t%d\n", summary.TotalInvoices)
				fmt.Fprintf(w, "Total amount\t%s\n", summary.TotalAmount)
				fmt.Fprintf(w, "Average amount\t%s\n", summary.AverageInvoiceAmount)
				fmt.Fprintf(w, "Items\t%d\n", summary.TotalItems)
				fmt.Fprintf(w, "Average item price\t%s\n", summary.AverageItemPrice)
				fmt.Fprintf(w, "Highest item price\t%s\n", summary.HighestItemPrice)
				fmt.Fprintf(w, "Lowest item price\t%s\n", summary.LowestItemPrice)
				fmt.Fprintf(w, "Suppliers\t%d\n", summary.TotalSuppliers)

				fmt.Fprintln(w)
				fmt.Fprintln(w, "RECENT\tSUPPLIER\tAMOUNT")
				for _, inv := range summary.RecentInvoices {
					fmt.Fprintf(w, "%s\t%s\t%s\n", inv.InvoiceNumber, inv.Supplier.Name, inv.Amount)
				}

				fmt.Fprintln(w)
				fmt.Fprintln(w, "TOP SUPPLIER\tINVOICES\tAMOUNT")
				for _, s := range summary.TopSuppliers {
					fmt.Fprintf(w, "%s\t%d\t%s\n", s.Supplier.Name, s.InvoiceCount, s.TotalAmount)
				}
				return nil
			})
		},
	}
}
