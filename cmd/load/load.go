// Package load implements the load command, which builds the canonical table
// and writes it as CSV.
package load

import (
	"bujichang/spending/cmd/root"
	"bujichang/spending/internal/logging"

	"github.com/spf13/cobra"
)

// Output is the CSV file to write; empty means standard output.
var Output string

// Cmd represents the load command
var Cmd = &cobra.Command{
	Use:   "load",
	Short: "Load every configured source into the canonical table",
	Long: `Fetch every configured source, normalize and classify its rows and write
the canonical table as CSV, to standard output or to the file given by -o.`,
	RunE: loadFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Output, "output", "o", "", "Output CSV file (default: standard output)")
}

func loadFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c, err := root.NewContainer(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	result, err := c.GetLoader().Load(ctx)
	if err != nil {
		return err
	}
	for _, failure := range result.Failures {
		root.Log.Warn("Source skipped", logging.Field{Key: logging.FieldError, Value: failure.Error()})
	}
	for _, src := range c.GetLoader().Sources() {
		stats, ok := result.Stats[src.Name]
		if !ok {
			continue
		}
		root.Log.Info("Source summary",
			logging.Field{Key: logging.FieldSource, Value: src.Name},
			logging.Field{Key: "rows", Value: stats.Rows},
			logging.Field{Key: "kept", Value: stats.Kept},
			logging.Field{Key: "excluded", Value: stats.Excluded},
			logging.Field{Key: "malformed", Value: stats.Malformed})
	}

	writer := c.GetCSVWriter()
	if Output == "" {
		return writer.WriteTransactions(cmd.OutOrStdout(), result.Transactions)
	}
	return writer.WriteTransactionsToCSV(result.Transactions, Output)
}
