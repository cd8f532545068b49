package cli

import (
	"fmt"
	"io"

	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/spf13/cobra"
)

// ItemOptions holds the name and price flags shared by item commands
type ItemOptions struct {
	*RootOptions
	Name  string
	Price string
}

// NewItemsCommand creates the items command group
func NewItemsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List, search and create catalog items",
	}
	cmd.AddCommand(newItemsListCommand(rootOpts))
	cmd.AddCommand(newItemsSearchCommand(rootOpts))
	cmd.AddCommand(newItemsLookupCommand(rootOpts))
	cmd.AddCommand(newItemsCreateCommand(rootOpts))
	return cmd
}

func printItems(items []domain.Item) func(io.Writer) error {
	return func(w io.Writer) error {
		fmt.Fprintln(w, "ID\tNAME\tPRICE")
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\n", it.ID, it.Name, it.Price)
		}
		return nil
	}
}

func newItemsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the whole catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.output(cmd)
			items, err := opts.client().ListItems(cmd.Context())
			if err != nil {
				return out.Failure("failed to list items", err)
			}
			return out.Success(items, printItems(items))
		},
	}
}

func newItemsSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ItemOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search items by name fragment and maximum price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.output(cmd)
			items, err := opts.client().SearchItems(cmd.Context(), opts.Name, opts.Price)
			if err != nil {
				return out.Failure("failed to search items", err)
			}
			return out.Success(items, printItems(items))
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "case-insensitive name fragment")
	cmd.Flags().StringVar(&opts.Price, "max-price", "", "maximum price")

	return cmd
}

func newItemsLookupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ItemOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Find the item with exactly this name and price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.output(cmd)
			item, err := opts.client().LookupItem(cmd.Context(), opts.Name, opts.Price)
			if err != nil {
				return out.Failure("item lookup failed", err)
			}
			return out.Success(item, printItems([]domain.Item{*item}))
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "item name (case-insensitive)")
	cmd.Flags().StringVar(&opts.Price, "price", "", "exact price text, e.g. 750.00")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newItemsCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ItemOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a catalog item",
		Example: `  invoicectl items create --name "Table en bois" --price 750.00`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.output(cmd)
			item, err := opts.client().CreateItem(cmd.Context(), domain.ItemInput{Name: opts.Name, Price: opts.Price})
			if err != nil {
				return out.Failure("failed to create item", err)
			}
			return out.Success(item, func(w io.Writer) error {
				fmt.Fprintf(w, "Created item %s at %s (%s)\n", item.Name, item.Price, item.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "item name")
	cmd.Flags().StringVar(&opts.Price, "price", "", "unit price, e.g. 750.00")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}
