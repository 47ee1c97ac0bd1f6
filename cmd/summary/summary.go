// Package summary implements the summary command: monthly totals and
// per-month breakdowns rendered for the terminal.
package summary

import (
	"fmt"
	"strings"

	"bujichang/spending/cmd/common"
	"bujichang/spending/cmd/root"
	"bujichang/spending/internal/batch"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/report"

	"github.com/spf13/cobra"
)

var (
	// Month restricts the breakdown to one month; empty means the recent window.
	Month string
	// Group is the breakdown column: class, payment or frequency.
	Group string
	// Tags drills the breakdown down to the tags of one group value.
	Tags string
	// Input is a previously exported CSV to read instead of loading the sources.
	Input string
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show monthly totals and a breakdown by class, payment or frequency",
	Long: `Show the total of every month with its trailing average, followed by a
breakdown of the recent months (or of the month given by --month) grouped by
class, payment method or frequency. With --tags, each month also lists the
tags spent under that group value, e.g. --group class --tags cook.`,
	RunE: summaryFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Month, "month", "m", "", "Month to break down, e.g. 2022/08 (default: the recent months)")
	Cmd.Flags().StringVarP(&Group, "group", "g", string(report.GroupClass), "Breakdown column: class, payment or frequency")
	Cmd.Flags().StringVarP(&Tags, "tags", "t", "", "Group value to break down by tag, as a slug or label")
	Cmd.Flags().StringVarP(&Input, "input", "i", "", "Read the table from a CSV written by load -o")
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	group, err := report.ParseGroup(Group)
	if err != nil {
		return err
	}
	var tagKey string
	if Tags != "" {
		if tagKey, err = group.ParseKey(Tags); err != nil {
			return err
		}
	}

	c, err := root.NewContainer(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	table, err := common.LoadTransactions(cmd.Context(), c, Input)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), Render(table, Month, group, tagKey, c.GetConfig().Report.Window, c.GetConfig().Report.RecentMonths))
	return nil
}

// Render draws the whole summary for table. A non-empty tagKey adds the tag
// breakdown of that group value after each month.
func Render(table []models.Transaction, month string, group report.Group, tagKey string, window, recent int) string {
	out := report.RenderMonthlyTotals(report.MonthlyTotals(table, window), window) + "\n"

	months := report.RecentWindow(batch.AvailableMonths(table), recent)
	if month != "" {
		months = []string{month}
	}
	palette := report.NewPalette(group)
	if tagKey == "" {
		return out + report.RenderRecent(months, func(m string) []report.Share {
			return report.Breakdown(table, m, group)
		}, palette)
	}

	tagPalette := report.NewTagPalette(group, tagKey)
	blocks := make([]string, 0, len(months))
	for _, m := range months {
		blocks = append(blocks, report.RenderBreakdown(m, report.Breakdown(table, m, group), palette)+
			report.RenderTagBreakdown(m, group.Label(tagKey),
				report.TagBreakdown(table, m, group, tagKey), report.MonthTotal(table, m), tagPalette))
	}
	return out + strings.Join(blocks, "\n")
}
