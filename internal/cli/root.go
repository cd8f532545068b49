package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ridwanfathin/supplier-invoice-service/internal/client"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	API     string
	Format  string // "json" | "text"
	Timeout time.Duration
}

// ValidFormats defines the allowed output formats
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of invoicectl
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "invoicectl",
		Short: "Command-line front-end for the supplier invoice API",
		Long: `invoicectl lists and creates suppliers, catalog items and invoices
against a running supplier invoice API, and prints the ledger summary.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.API, "api", "http://localhost:8080", "base URL of the API server")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 10*time.Second, "per-request timeout")

	cmd.AddCommand(NewSuppliersCommand(opts))
	cmd.AddCommand(NewItemsCommand(opts))
	cmd.AddCommand(NewInvoicesCommand(opts))
	cmd.AddCommand(NewReportsCommand(opts))

	return cmd
}

// client builds an API client from the global flags
func (o *RootOptions) client() *client.Client {
	base := strings.TrimRight(o.API, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}
	return client.New(base, client.WithTimeout(o.Timeout))
}

// output returns a formatter writing to the command's streams
func (o *RootOptions) output(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
