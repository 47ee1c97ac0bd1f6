package report

import (
	"fmt"
	"strings"

	"bujichang/spending/internal/currencyutils"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 30

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4"))
	monthStyle  = lipgloss.NewStyle().Width(9)
	amountStyle = lipgloss.NewStyle().Width(10).Align(lipgloss.Right)
	labelStyle  = lipgloss.NewStyle().Width(8)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
)

// RenderMonthlyTotals draws one line per month with its total, the trailing
// average and a bar scaled to the largest month.
func RenderMonthlyTotals(totals []MonthlyTotal, window int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("攏總"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  (%d-month average)", window)))
	b.WriteString("\n")

	var peak int64
	for _, t := range totals {
		peak = max(peak, t.Total)
	}
	for _, t := range totals {
		b.WriteString(monthStyle.Render(t.Month))
		b.WriteString(amountStyle.Render(currencyutils.FormatAmount(t.Total)))
		b.WriteString(amountStyle.Render(currencyutils.FormatAmount(int64(t.Average + 0.5))))
		b.WriteString("  ")
		b.WriteString(bar(t.Total, peak, ""))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderBreakdown draws the shares of one month, colored by palette.
func RenderBreakdown(month string, shares []Share, palette Palette) string {
	var total int64
	for _, s := range shares {
		total += s.Amount
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(month))
	b.WriteString(mutedStyle.Render("  $" + currencyutils.FormatAmount(total)))
	b.WriteString("\n")
	if len(shares) == 0 {
		b.WriteString(mutedStyle.Render("  no spending"))
		b.WriteString("\n")
		return b.String()
	}

	writeShares(&b, shares, palette)
	return b.String()
}

// RenderTagBreakdown draws the tags under one group value of a month,
// headed by the value's spending against the month total.
func RenderTagBreakdown(month, label string, shares []Share, monthTotal int64, palette Palette) string {
	var total int64
	for _, s := range shares {
		total += s.Amount
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(month + " " + label))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  $%s / $%s",
		currencyutils.FormatAmount(total), currencyutils.FormatAmount(monthTotal))))
	b.WriteString("\n")
	if len(shares) == 0 {
		b.WriteString(mutedStyle.Render("  no spending"))
		b.WriteString("\n")
		return b.String()
	}
	writeShares(&b, shares, palette)
	return b.String()
}

func writeShares(b *strings.Builder, shares []Share, palette Palette) {
	peak := shares[0].Amount
	for _, s := range shares {
		hue := palette.Color(s.Key)
		b.WriteString(labelStyle.Foreground(lipgloss.Color(hue)).Render(s.Label))
		b.WriteString(amountStyle.Render(currencyutils.FormatAmount(s.Amount)))
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" %5.1f%% ", s.Percent)))
		b.WriteString(bar(s.Amount, peak, hue))
		b.WriteString("\n")
	}
}

// RenderRecent draws a breakdown for every month of the window.
func RenderRecent(months []string, breakdown func(month string) []Share, palette Palette) string {
	blocks := make([]string, 0, len(months))
	for _, m := range months {
		blocks = append(blocks, RenderBreakdown(m, breakdown(m), palette))
	}
	return strings.Join(blocks, "\n")
}

func bar(value, peak int64, hue string) string {
	if peak <= 0 || value <= 0 {
		return ""
	}
	n := int(value * barWidth / peak)
	if n == 0 {
		n = 1
	}
	style := lipgloss.NewStyle()
	if hue != "" {
		style = style.Foreground(lipgloss.Color(hue))
	}
	return style.Render(strings.Repeat("█", n))
}
