// Package suggest implements the suggest command, which asks Gemini for tags
// of merchants no rule matches and prints candidate rules.
package suggest

import (
	"fmt"

	"bujichang/spending/cmd/common"
	"bujichang/spending/cmd/root"
	"bujichang/spending/internal/categorizer"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/store"

	"github.com/spf13/cobra"
)

var (
	// Input is a previously exported CSV to read instead of loading the sources.
	Input string
	// Write appends the suggestions to the rules file instead of printing them.
	Write bool
)

// Cmd represents the suggest command
var Cmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest merchant rules for unmatched merchants using Gemini",
	Long: `Collect the merchants that no rule matches, ask Gemini for a tag for each
and print the suggestions as a rules file fragment. With --write the
suggestions are appended after the rules in effect and saved to the rules
file. The canonical table is never modified.`,
	RunE: suggestFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Input, "input", "i", "", "Read the table from a CSV written by load -o")
	Cmd.Flags().BoolVarP(&Write, "write", "w", false, "Append the suggestions to the rules file")
}

func suggestFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c, err := root.NewContainer(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	table, err := common.LoadTransactions(ctx, c, Input)
	if err != nil {
		return err
	}

	client, err := c.NewSuggester(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	suggestions, err := c.GetCategorizer().SuggestRules(ctx, table, client)
	if err != nil {
		return err
	}
	if Write {
		return WriteRules(c.GetStore(), c.GetCategorizer().Rules(), suggestions)
	}
	data, err := Format(suggestions)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// Format renders suggestions as a rules file fragment.
func Format(suggestions []categorizer.Suggestion) ([]byte, error) {
	if len(suggestions) == 0 {
		return []byte("# no suggestions\n"), nil
	}
	rules := make([]models.MerchantRule, len(suggestions))
	for i, s := range suggestions {
		rules[i] = s.Rule
	}
	data, err := store.MarshalRules(rules)
	if err != nil {
		return nil, fmt.Errorf("formatting suggestions: %w", err)
	}
	return data, nil
}

// WriteRules saves current followed by the suggested rules. Existing rules
// keep precedence since the first matching rule wins.
func WriteRules(rs *store.RuleStore, current []models.MerchantRule, suggestions []categorizer.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	rules := make([]models.MerchantRule, 0, len(current)+len(suggestions))
	rules = append(rules, current...)
	for _, s := range suggestions {
		rules = append(rules, s.Rule)
	}
	if err := rs.SaveRules(rules); err != nil {
		return fmt.Errorf("writing suggested rules: %w", err)
	}
	return nil
}
