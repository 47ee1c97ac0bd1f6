// Package classify implements the classify command, which shows how the
// active rules classify one merchant.
package classify

import (
	"fmt"

	"bujichang/spending/cmd/root"

	"github.com/spf13/cobra"
)

// Merchant is the raw merchant string to classify.
var Merchant string

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Show the tag and class the rules give a merchant",
	Long:  `Normalize a merchant string and show the tag, class and matching keyword of the active merchant rules.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.NewContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		result := c.GetCategorizer().Classify(Merchant)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "merchant: %s\n", result.Merchant)
		fmt.Fprintf(out, "tag:      %s (%s)\n", result.Tag, result.Tag.Label())
		fmt.Fprintf(out, "class:    %s (%s)\n", result.Class, result.Class.Label())
		if result.Keyword != "" {
			fmt.Fprintf(out, "keyword:  %s\n", result.Keyword)
		}
		return nil
	},
}

func init() {
	Cmd.Flags().StringVar(&Merchant, "merchant", "", "Raw merchant string")
	_ = Cmd.MarkFlagRequired("merchant")
}
