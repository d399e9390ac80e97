package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"tradevisor/internal/dataflows"
	"tradevisor/internal/pipeline"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(1, 2).
			Width(72)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#6B7280")).
			Width(16)

	buyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	sellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	holdStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))
)

// printQuote shows the live quote line above the prompts. Best effort,
// the caller skips it when the quote lookup fails.
func printQuote(q *dataflows.LiveQuote) {
	fmt.Printf("%s %s %s (%s)\n",
		titleStyle.Render(q.Symbol),
		q.Price.StringFixed(2),
		q.Currency,
		q.MarketState)
}

// printOutcome renders the full result of one run.
func printOutcome(out *pipeline.Outcome) {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	rec := out.Recommendation
	sr := rec.SupportAndResistance

	row("Asset", out.Selection.Asset.Symbol)
	row("Frame", fmt.Sprintf("%s / %s", out.Selection.Frame.Range, out.Selection.Frame.Interval))
	row("Strategy", out.Selection.Strategy.Name)
	b.WriteString("\n")
	row("Sentiment", fmt.Sprintf("%s (%.0f%%)", out.Sentiment.Label, out.Sentiment.Confidence*100))
	row("Decision", decisionStyle(string(rec.Decision)))
	row("Confidence", fmt.Sprintf("%.0f%%", rec.Confidence*100))
	row("Pattern", rec.Pattern)
	row("Position", rec.Position)
	row("Support", formatPrice(sr.Support))
	row("Resistance", formatPrice(sr.Resistance))
	row("Entry", fmt.Sprintf("%s @ %s", formatPrice(rec.Entry.Price), rec.Entry.Time))
	row("Exit", fmt.Sprintf("%s @ %s", formatPrice(rec.Exit.Price), rec.Exit.Time))
	b.WriteString("\n")
	b.WriteString(rec.Rationale)

	fmt.Println(panelStyle.Render(b.String()))

	fmt.Printf("Chart: %s\n", out.ChartPath)
	if out.ArtifactPath != "" {
		fmt.Printf("Saved: %s\n", out.ArtifactPath)
	}
	if out.PersistFailed {
		fmt.Println(warnStyle.Render("Warning: result shown above could not be fully saved, see the logs."))
	}
}

func decisionStyle(decision string) string {
	switch decision {
	case "buy":
		return buyStyle.Render(strings.ToUpper(decision))
	case "sell":
		return sellStyle.Render(strings.ToUpper(decision))
	default:
		return holdStyle.Render(strings.ToUpper(decision))
	}
}

func formatPrice(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(2)
}
