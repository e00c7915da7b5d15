package service

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/reportdesk/backend/internal/apperr"
	"github.com/reportdesk/backend/internal/eventbus"
	"github.com/reportdesk/backend/internal/model"
	"github.com/reportdesk/backend/internal/repository"
	"github.com/reportdesk/backend/internal/service/statemachine"
)

type ReportService struct {
	reportRepo  repository.ReportRepository
	sectionRepo repository.SectionRepository
	elementRepo repository.ElementRepository

	stateMachine *statemachine.ReportStateMachine
	bus          *eventbus.Bus
}

func NewReportService(
	reportRepo repository.ReportRepository,
	sectionRepo repository.SectionRepository,
	elementRepo repository.ElementRepository,
	bus *eventbus.Bus,
) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		sectionRepo:  sectionRepo,
		elementRepo:  elementRepo,
		stateMachine: statemachine.NewReportStateMachine(),
		bus:          bus,
	}
}

// Create validates the report fields and stores a new open report owned
// by authorID. Permission checks happen in the caller.
func (s *ReportService) Create(title, topic string, year int, authorID uint) (*model.Report, error) {
	if err := validateReportData(title, topic, year); err != nil {
		return nil, err
	}

	report := &model.Report{
		Title:    title,
		Topic:    topic,
		Year:     year,
		Status:   string(statemachine.ReportStatusOpen),
		AuthorID: authorID,
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	klog.V(6).Infof("report created: reportID=%d, title=%s, author=%d", report.ID, report.Title, authorID)
	return report, nil
}

// Get loads the fully materialized report graph, sections and elements
// in dense order. This is the traversal the rendering sink consumes.
func (s *ReportService) Get(id uint) (*model.Report, error) {
	report, err := s.reportRepo.Get(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("report %d not found", id)
		}
		return nil, err
	}
	return report, nil
}

// GetBasic loads the report row without its sections, enough for
// status and ownership checks.
func (s *ReportService) GetBasic(id uint) (*model.Report, error) {
	report, err := s.reportRepo.GetBasic(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("report %d not found", id)
		}
		return nil, err
	}
	return report, nil
}

func (s *ReportService) List(filter repository.ReportFilter) ([]model.Report, error) {
	if filter.Status != "" && !statemachine.IsValidReportStatus(statemachine.ReportStatus(filter.Status)) {
		return nil, apperr.InvalidArgument("unknown report status: %s", filter.Status)
	}
	return s.reportRepo.List(filter)
}

// Update changes the report's plain fields. Status is not touched here,
// that goes through SetStatus.
func (s *ReportService) Update(id uint, title, topic string, year int) (*model.Report, error) {
	if err := validateReportData(title, topic, year); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.GetBasic(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("report %d not found", id)
		}
		return nil, err
	}

	report.Title = title
	report.Topic = topic
	report.Year = year
	if err := s.reportRepo.Save(report); err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}
	return report, nil
}

// SetStatus applies a status change under the state machine rules. The
// publish guard is a data invariant and is always enforced here, no
// matter what the caller already checked: a report publishes only when
// every content element of every section is approved. An empty report
// publishes trivially.
func (s *ReportService) SetStatus(ctx context.Context, id uint, newStatus string) (*model.Report, error) {
	report, err := s.reportRepo.GetBasic(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("report %d not found", id)
		}
		return nil, err
	}

	from := statemachine.ReportStatus(report.Status)
	to := statemachine.ReportStatus(newStatus)

	if err := s.stateMachine.Transition(from, to, report.ID); err != nil {
		return nil, err
	}
	if from == to {
		return report, nil
	}

	if to == statemachine.ReportStatusPublished {
		unapproved, err := s.elementRepo.CountNotInStatusByReport(report.ID, string(statemachine.ElementStatusApproved))
		if err != nil {
			return nil, fmt.Errorf("publish guard: %w", err)
		}
		if unapproved > 0 {
			klog.V(6).Infof("publish rejected: reportID=%d, unapproved=%d", report.ID, unapproved)
			return nil, apperr.PreconditionFailed("cannot publish until all content elements are approved")
		}
	}

	report.Status = string(to)
	if err := s.reportRepo.Save(report); err != nil {
		return nil, fmt.Errorf("save report status: %w", err)
	}

	if to == statemachine.ReportStatusPublished && s.bus != nil {
		if err := s.bus.Publish(ctx, eventbus.ReportEvent{
			Type:     eventbus.ReportEventPublished,
			ReportID: report.ID,
			Status:   report.Status,
		}); err != nil {
			klog.Warningf("publish event delivery failed: reportID=%d, error=%v", report.ID, err)
		}
	}

	klog.V(6).Infof("report status changed: reportID=%d, %s -> %s", report.ID, from, to)
	return report, nil
}

// Delete removes the report with all sections and elements. Restricted
// to admins by the request layer.
func (s *ReportService) Delete(id uint) error {
	if err := s.reportRepo.Delete(id); err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("report %d not found", id)
		}
		return err
	}
	klog.V(6).Infof("report deleted: reportID=%d", id)
	return nil
}
