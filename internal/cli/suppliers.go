package cli

import (
	"fmt"
	"io"

	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/spf13/cobra"
)

// SupplierCreateOptions holds flags for suppliers create
type SupplierCreateOptions struct {
	*RootOptions
	Name    string
	Address string
	Phone   string
}

// NewSuppliersCommand creates the suppliers command group
func NewSuppliersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suppliers",
		Short: "List and create suppliers",
	}
	cmd.AddCommand(newSuppliersListCommand(rootOpts))
	cmd.AddCommand(newSuppliersCreateCommand(rootOpts))
	return cmd
}

func newSuppliersListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List suppliers with their invoice counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.output(cmd)
			suppliers, err := opts.client().ListSuppliers(cmd.Context())
			if err != nil {
				return out.Failure("failed to list suppliers", err)
			}
			return out.Success(suppliers, func(w io.Writer) error {
				fmt.Fprintln(w, "ID\tNAME\tADDRESS\tPHONE\tINVOICES")
				for _, s := range suppliers {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", s.ID, s.Name, s.Address, s.Phone, len(s.Invoices))
				}
				return nil
			})
		},
	}
}

func newSuppliersCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SupplierCreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a supplier",
		Example: `  invoicectl suppliers create --name "Matier Fer" \
    --address "123 Rue Hassan II, Casablanca" --phone "+212612345678"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.output(cmd)
			supplier, err := opts.client().CreateSupplier(cmd.Context(), domain.SupplierInput{
				Name:    opts.Name,
				Address: opts.Address,
				Phone:   opts.Phone,
			})
			if err != nil {
				return out.Failure("failed to create supplier", err)
			}
			return out.Success(supplier, func(w io.Writer) error {
				fmt.Fprintf(w, "Created supplier %s (%s)\n", supplier.Name, supplier.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "supplier name")
	cmd.Flags().StringVar(&opts.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}
