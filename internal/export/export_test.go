package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reportdesk/backend/internal/apperr"
	"github.com/reportdesk/backend/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Title:  "Quarterly Review",
		Topic:  "Finance",
		Year:   2026,
		Status: "open",
		Sections: []model.Section{
			{
				Title:     "Overview",
				SortOrder: 1,
				Elements: []model.ContentElement{
					{Kind: model.ElementKindParagraph, Text: "Revenue grew."},
					{Kind: model.ElementKindChart, Title: "Revenue by Region"},
					{Kind: model.ElementKindTable, Title: "Raw Numbers", TableData: `{"rows":[[1,2]]}`},
				},
			},
			{Title: "Appendix", SortOrder: 2},
		},
	}
}

func TestRenderMarkdown(t *testing.T) {
	data, err := Render(sampleReport(), FormatMarkdown)
	assert.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "# Quarterly Review")
	assert.Contains(t, out, "## 1. Overview")
	assert.Contains(t, out, "## 2. Appendix")
	assert.Contains(t, out, "Revenue grew.")
	assert.Contains(t, out, "> Chart: Revenue by Region")
	assert.Contains(t, out, "> Table: Raw Numbers")
	assert.Contains(t, out, "```json")

	// section order is the document order
	assert.Less(t, strings.Index(out, "Overview"), strings.Index(out, "Appendix"))
}

func TestRenderHTML(t *testing.T) {
	data, err := Render(sampleReport(), FormatHTML)
	assert.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "<h1>Quarterly Review</h1>")
	assert.Contains(t, out, "<h2>1. Overview</h2>")
	assert.Contains(t, out, "<p>Revenue grew.</p>")
	assert.Contains(t, out, "Chart: Revenue by Region")
}

func TestRenderHTMLEscapes(t *testing.T) {
	report := sampleReport()
	report.Sections[0].Elements[0].Text = "<script>alert(1)</script>"

	data, err := Render(report, FormatHTML)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "<script>alert(1)</script>")
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(sampleReport(), Format("pdf"))
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "quarterly-review.md", Filename(sampleReport(), FormatMarkdown))
	assert.Equal(t, "report-4.html", Filename(&model.Report{ID: 4}, FormatHTML))
}
