package export

import (
	"bytes"
	"fmt"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"edahub/app"
)

// WriteMarkdown renders the summary report as a Markdown document.
func WriteMarkdown(report *app.SummaryReport) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", report.Title)
	fmt.Fprintf(&buf, "Generated on: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	buf.WriteString("## Data Summary\n\n")
	if len(report.Summary) == 0 {
		buf.WriteString("_No numeric columns in the filtered data._\n\n")
	} else {
		buf.WriteString("| |")
		for _, s := range report.Summary {
			fmt.Fprintf(&buf, " %s |", s.Column)
		}
		buf.WriteString("\n|---|")
		for range report.Summary {
			buf.WriteString("---|")
		}
		buf.WriteString("\n")
		for _, stat := range summaryStatRows {
			fmt.Fprintf(&buf, "| %s |", stat.label)
			for _, s := range report.Summary {
				fmt.Fprintf(&buf, " %s |", stat.value(s))
			}
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	buf.WriteString("## Key Performance Indicators\n\n")
	buf.WriteString("| KPI | Value |\n|---|---|\n")
	for _, row := range report.KPIs {
		fmt.Fprintf(&buf, "| %s | %s |\n", row.Label, row.Value)
	}

	return buf.Bytes()
}

// RenderHTML converts a Markdown report into an HTML fragment for the
// report preview endpoint.
func RenderHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
