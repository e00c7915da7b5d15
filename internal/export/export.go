// Package export turns a fully materialized report graph into a byte
// stream for the rendering sink. Sections and elements arrive already
// ordered; export never reorders or filters them.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/reportdesk/backend/internal/apperr"
	"github.com/reportdesk/backend/internal/model"
)

type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Topic}} &middot; {{.Year}} &middot; {{.Status}}</p>
{{range .Sections}}<h2>{{.SortOrder}}. {{.Title}}</h2>
{{range .Elements}}{{if eq .Kind "paragraph"}}<p>{{.Text}}</p>
{{else if eq .Kind "chart"}}<figure><figcaption>Chart: {{.Title}}</figcaption></figure>
{{else if eq .Kind "table"}}<figure><figcaption>Table: {{.Title}}</figcaption>{{if .TableData}}<pre>{{.TableData}}</pre>{{end}}</figure>
{{end}}{{end}}{{end}}</body>
</html>
`))

// Render produces the export document in the requested format.
func Render(report *model.Report, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return renderMarkdown(report), nil
	case FormatHTML:
		return renderHTML(report)
	default:
		return nil, apperr.InvalidArgument("unknown export format: %s", format)
	}
}

// Filename suggests a download name for the rendered document.
func Filename(report *model.Report, format Format) string {
	name := strings.ToLower(strings.ReplaceAll(report.Title, " ", "-"))
	if name == "" {
		name = fmt.Sprintf("report-%d", report.ID)
	}
	return fmt.Sprintf("%s.%s", name, format)
}

func renderMarkdown(report *model.Report) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", report.Title)
	fmt.Fprintf(&b, "%s · %d · %s\n", report.Topic, report.Year, report.Status)

	for _, section := range report.Sections {
		fmt.Fprintf(&b, "\n## %d. %s\n", section.SortOrder, section.Title)
		for _, element := range section.Elements {
			switch element.Kind {
			case model.ElementKindParagraph:
				fmt.Fprintf(&b, "\n%s\n", element.Text)
			case model.ElementKindChart:
				fmt.Fprintf(&b, "\n> Chart: %s\n", element.Title)
			case model.ElementKindTable:
				fmt.Fprintf(&b, "\n> Table: %s\n", element.Title)
				if element.TableData != "" {
					fmt.Fprintf(&b, "\n```json\n%s\n```\n", element.TableData)
				}
			}
		}
	}
	return []byte(b.String())
}

func renderHTML(report *model.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("render report html: %w", err)
	}
	return buf.Bytes(), nil
}
