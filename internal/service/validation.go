package service

import (
	"github.com/reportdesk/backend/internal/apperr"
	"github.com/reportdesk/backend/internal/utils"
)

// Validation helpers are pure: values in, failure kind out, no state.

const (
	minReportYear = 1900
	maxReportYear = 2100
)

func validateReportData(title, topic string, year int) error {
	if title == "" {
		return apperr.Validation("title is required for a report")
	}
	if topic == "" {
		return apperr.Validation("topic is required for a report")
	}
	if year < minReportYear || year > maxReportYear {
		return apperr.Validation("year must be within %d-%d", minReportYear, maxReportYear)
	}
	return nil
}

func validateSectionTitle(title string) error {
	if title == "" {
		return apperr.Validation("title is required for a section")
	}
	return nil
}

func validateParagraphText(text string) error {
	if text == "" {
		return apperr.Validation("text is required for a paragraph")
	}
	return nil
}

func validateChartTitle(title string) error {
	if title == "" {
		return apperr.Validation("title is required for a chart")
	}
	return nil
}

func validateTableTitle(title string) error {
	if title == "" {
		return apperr.Validation("title is required for a table")
	}
	return nil
}

// validateTableData checks well-formedness only. The document stays
// opaque otherwise, empty means no data yet.
func validateTableData(tableData string) error {
	if tableData != "" && !utils.IsJSON(tableData) {
		return apperr.Validation("table data must be valid JSON")
	}
	return nil
}
