// Package months implements the months command.
package months

import (
	"fmt"

	"bujichang/spending/cmd/common"
	"bujichang/spending/cmd/root"
	"bujichang/spending/internal/batch"

	"github.com/spf13/cobra"
)

// Input is a previously exported CSV to read instead of loading the sources.
var Input string

// Cmd represents the months command
var Cmd = &cobra.Command{
	Use:   "months",
	Short: "List the months present in the canonical table",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.NewContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		table, err := common.LoadTransactions(cmd.Context(), c, Input)
		if err != nil {
			return err
		}
		for _, m := range batch.AvailableMonths(table) {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&Input, "input", "i", "", "Read the table from a CSV written by load -o")
}
