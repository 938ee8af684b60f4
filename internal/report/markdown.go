package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"vitalens/domain/risk"
)

// Markdown renders a comprehensive report as a markdown document. The engine
// defines field semantics; this is presentation only, for hosting layers
// that want a human-readable artifact.
func Markdown(r *risk.ComprehensiveRiskReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Health Risk Report\n\n")
	fmt.Fprintf(&b, "User: %s  \n", r.UserID)
	fmt.Fprintf(&b, "Generated: %s  \n", r.GeneratedAt.Time().Format(time.RFC1123))
	fmt.Fprintf(&b, "Overall risk score: **%d/100**\n\n", r.OverallRiskScore)

	b.WriteString("## Top Risks\n\n")
	b.WriteString("| Rank | Disease | Score | Level |\n|---|---|---|---|\n")
	for i, tr := range r.TopRisks {
		fmt.Fprintf(&b, "| %d | %s | %d | %s |\n", i+1, tr.Disease, tr.RiskScore, tr.RiskLevel)
	}
	b.WriteString("\n")

	b.WriteString("## Assessments\n\n")
	for _, a := range r.Assessments {
		fmt.Fprintf(&b, "### %s - %s (%d/100)\n\n", a.Disease, a.RiskLevel, a.RiskScore)
		fmt.Fprintf(&b, "Probability %.0f%%, timeframe %s, next screening %s.\n\n",
			a.Probability*100, a.Timeframe, a.NextScreening.Time().Format("2006-01-02"))
		for _, rec := range a.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Actionable Insights\n\n")
	for _, insight := range r.ActionableInsights {
		fmt.Fprintf(&b, "- %s\n", insight)
	}
	b.WriteString("\n")

	b.WriteString("## Screening Schedule\n\n")
	b.WriteString("| Test | Urgency | Date | Frequency | Reason |\n|---|---|---|---|---|\n")
	for _, entry := range r.ScreeningSchedule {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			entry.Test, entry.Urgency, entry.RecommendedDate.Time().Format("2006-01-02"),
			entry.Frequency, entry.Reason)
	}

	return b.String()
}

// HTML renders the markdown document to HTML.
func HTML(r *risk.ComprehensiveRiskReport) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(Markdown(r)), p, renderer)
}
