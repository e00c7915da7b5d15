package service

import (
	"context"
	"testing"

	"github.com/reportdesk/backend/internal/apperr"
	"github.com/reportdesk/backend/internal/eventbus"
	"github.com/reportdesk/backend/internal/repository"
	"github.com/reportdesk/backend/internal/service/statemachine"
)

func TestReportServiceCreateValidates(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name  string
		title string
		topic string
		year  int
	}{
		{"missing title", "", "Finance", 2026},
		{"missing topic", "Quarterly", "", 2026},
		{"year too early", "Quarterly", "Finance", 1899},
		{"year too late", "Quarterly", "Finance", 2101},
	}
	for _, tc := range cases {
		_, err := env.reports.Create(tc.title, tc.topic, tc.year, 1)
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("%s: expected validation failure, got %v", tc.name, err)
		}
	}

	report, err := env.reports.Create("Quarterly", "Finance", 2026, 1)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if report.Status != string(statemachine.ReportStatusOpen) {
		t.Fatalf("expected new report open, got %s", report.Status)
	}
}

func TestReportServicePublishGuard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	report := env.mustReport(t)
	section := env.mustSection(t, report.ID, "Body")
	element := env.mustParagraph(t, section.ID, "some findings")

	// a draft element blocks publication
	_, err := env.reports.SetStatus(ctx, report.ID, "published")
	if !apperr.IsKind(err, apperr.KindPreconditionFailed) {
		t.Fatalf("expected precondition failure, got %v", err)
	}

	// draft -> staged is not enough
	if _, err := env.elements.Advance(ctx, element.ID); err != nil {
		t.Fatalf("advance error: %v", err)
	}
	_, err = env.reports.SetStatus(ctx, report.ID, "published")
	if !apperr.IsKind(err, apperr.KindPreconditionFailed) {
		t.Fatalf("expected precondition failure for staged, got %v", err)
	}

	// staged -> approved unlocks the publish
	if _, err := env.elements.Advance(ctx, element.ID); err != nil {
		t.Fatalf("advance error: %v", err)
	}
	published, err := env.reports.SetStatus(ctx, report.ID, "published")
	if err != nil {
		t.Fatalf("publish error: %v", err)
	}
	if published.Status != string(statemachine.ReportStatusPublished) {
		t.Fatalf("expected published, got %s", published.Status)
	}
}

func TestReportServicePublishEmptyReport(t *testing.T) {
	env := newTestEnv(t)
	report := env.mustReport(t)

	// no elements means the guard passes vacuously
	published, err := env.reports.SetStatus(context.Background(), report.ID, "published")
	if err != nil {
		t.Fatalf("publish error: %v", err)
	}
	if published.Status != string(statemachine.ReportStatusPublished) {
		t.Fatalf("expected published, got %s", published.Status)
	}
}

func TestReportServicePublishedIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	report := env.mustReport(t)

	if _, err := env.reports.SetStatus(ctx, report.ID, "published"); err != nil {
		t.Fatalf("publish error: %v", err)
	}

	_, err := env.reports.SetStatus(ctx, report.ID, "open")
	if !apperr.IsKind(err, apperr.KindPreconditionFailed) {
		t.Fatalf("expected precondition failure on reopen, got %v", err)
	}

	// setting the current status again is a no-op success
	same, err := env.reports.SetStatus(ctx, report.ID, "published")
	if err != nil {
		t.Fatalf("no-op set error: %v", err)
	}
	if same.Status != "published" {
		t.Fatalf("unexpected status: %s", same.Status)
	}
}

func TestReportServiceSetStatusRejectsUnknown(t *testing.T) {
	env := newTestEnv(t)
	report := env.mustReport(t)

	_, err := env.reports.SetStatus(context.Background(), report.ID, "archived")
	if !apperr.IsKind(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestReportServicePublishEmitsEvent(t *testing.T) {
	env := newTestEnv(t)
	report := env.mustReport(t)

	var got []eventbus.ReportEvent
	env.bus.Subscribe(eventbus.ReportEventPublished, func(ctx context.Context, event eventbus.ReportEvent) error {
		got = append(got, event)
		return nil
	})

	if _, err := env.reports.SetStatus(context.Background(), report.ID, "published"); err != nil {
		t.Fatalf("publish error: %v", err)
	}
	if len(got) != 1 || got[0].ReportID != report.ID {
		t.Fatalf("expected one publish event for report %d, got %+v", report.ID, got)
	}
}

func TestReportServiceListRejectsUnknownStatusFilter(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.reports.List(repository.ReportFilter{Status: "pending"})
	if !apperr.IsKind(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestReportServiceNotFound(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.reports.Get(99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := env.reports.Delete(99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := env.reports.Update(99, "T", "X", 2026); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
