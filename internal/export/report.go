package export

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/MykhailoOS/PortfolioLab/internal/validate"
)

// ReportMarkdown renders a human-readable export report: outcome, archive
// statistics, per-stage durations and a per-kind validation error summary.
func ReportMarkdown(res *Result) string {
	var b strings.Builder
	b.WriteString("# Export Report\n\n")
	fmt.Fprintf(&b, "- Run ID: `%s`\n", res.RunID)
	if res.Success {
		b.WriteString("- Outcome: **success**\n")
		fmt.Fprintf(&b, "- Archive: `%s` (%d bytes)\n", res.ArchiveName, res.Stats.FileSize)
		fmt.Fprintf(&b, "- Locale pages: %d\n", res.Stats.PageCount)
		fmt.Fprintf(&b, "- Bundled assets: %d\n", res.Stats.AssetCount)
	} else {
		b.WriteString("- Outcome: **failed**\n")
	}

	if len(res.Durations) > 0 {
		b.WriteString("\n## Stage durations\n\n")
		stages := make([]string, 0, len(res.Durations))
		for s := range res.Durations {
			stages = append(stages, s)
		}
		sort.Strings(stages)
		for _, s := range stages {
			fmt.Fprintf(&b, "- %s: %s\n", s, res.Durations[s])
		}
	}

	if len(res.Errors) > 0 {
		summary := res.Summary()
		b.WriteString("\n## Validation errors\n\n")
		kinds := make([]string, 0, len(summary.Counts))
		for k := range summary.Counts {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			errs := summary.ByKind[validate.ErrorKind(k)]
			fmt.Fprintf(&b, "### %s (%d)\n\n", k, len(errs))
			for _, e := range errs {
				if e.Field != "" {
					fmt.Fprintf(&b, "- `%s` %s: %s\n", e.Field, e.SectionID, e.Message)
				} else {
					fmt.Fprintf(&b, "- %s\n", e.Message)
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// WriteReport persists the markdown report next to the archive output.
func WriteReport(res *Result, path string) error {
	if err := os.WriteFile(path, []byte(ReportMarkdown(res)), 0o644); err != nil {
		return fmt.Errorf("write export report: %w", err)
	}
	return nil
}

// ReportHTML converts a markdown report to a standalone HTML document.
func ReportHTML(markdown []byte) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var body bytes.Buffer
	if err := md.Convert(markdown, &body); err != nil {
		return nil, fmt.Errorf("convert report to HTML: %w", err)
	}
	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n<title>Export Report</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
