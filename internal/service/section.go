package service

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/reportdesk/backend/internal/apperr"
	"github.com/reportdesk/backend/internal/model"
	"github.com/reportdesk/backend/internal/repository"
)

type SectionService struct {
	reportRepo  repository.ReportRepository
	sectionRepo repository.SectionRepository
}

func NewSectionService(reportRepo repository.ReportRepository, sectionRepo repository.SectionRepository) *SectionService {
	return &SectionService{
		reportRepo:  reportRepo,
		sectionRepo: sectionRepo,
	}
}

// Add appends a section at the end of the report when order is zero.
// An explicit positive order is stored as given; that may leave a gap,
// which the next Reorder/Move/Remove compacts.
func (s *SectionService) Add(reportID uint, title string, order int) (*model.Section, error) {
	if err := validateSectionTitle(title); err != nil {
		return nil, err
	}
	if _, err := s.reportRepo.GetBasic(reportID); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("report %d not found", reportID)
		}
		return nil, err
	}

	section := &model.Section{
		ReportID:  reportID,
		Title:     title,
		SortOrder: order,
	}
	if err := s.sectionRepo.Create(section); err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}

	klog.V(6).Infof("section added: reportID=%d, sectionID=%d, order=%d", reportID, section.ID, section.SortOrder)
	return section, nil
}

// AddAt inserts a new section so it lands at position, shifting the
// sections at and after it down by one. Position must lie in
// [1, count+1]; count+1 is a plain append.
func (s *SectionService) AddAt(reportID uint, title string, position int) (*model.Section, error) {
	if err := validateSectionTitle(title); err != nil {
		return nil, err
	}
	if _, err := s.reportRepo.GetBasic(reportID); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("report %d not found", reportID)
		}
		return nil, err
	}

	count, err := s.sectionRepo.CountByReport(reportID)
	if err != nil {
		return nil, err
	}
	if position < 1 || int64(position) > count+1 {
		return nil, apperr.OutOfRange("position %d is out of range for %d sections", position, count)
	}

	section := &model.Section{ReportID: reportID, Title: title}
	if err := s.sectionRepo.Create(section); err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	if int64(position) <= count {
		if err := s.sectionRepo.Move(section.ID, position); err != nil {
			return nil, fmt.Errorf("place section: %w", err)
		}
		return s.Get(section.ID)
	}

	klog.V(6).Infof("section inserted: reportID=%d, sectionID=%d, position=%d", reportID, section.ID, position)
	return section, nil
}

func (s *SectionService) Get(id uint) (*model.Section, error) {
	section, err := s.sectionRepo.Get(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("section %d not found", id)
		}
		return nil, err
	}
	return section, nil
}

// Rename updates the section title.
func (s *SectionService) Rename(id uint, title string) (*model.Section, error) {
	if err := validateSectionTitle(title); err != nil {
		return nil, err
	}
	section, err := s.sectionRepo.Get(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("section %d not found", id)
		}
		return nil, err
	}
	section.Title = title
	section.Elements = nil
	if err := s.sectionRepo.Save(section); err != nil {
		return nil, fmt.Errorf("save section: %w", err)
	}
	return section, nil
}

// Remove deletes the section and renumbers the remaining siblings.
func (s *SectionService) Remove(id uint) error {
	if err := s.sectionRepo.Delete(id); err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("section %d not found", id)
		}
		return err
	}
	klog.V(6).Infof("section removed: sectionID=%d", id)
	return nil
}

// Move places the section at newOrder within its report. newOrder must
// lie in [1, sibling count].
func (s *SectionService) Move(id uint, newOrder int) (*model.Section, error) {
	section, err := s.sectionRepo.Get(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("section %d not found", id)
		}
		return nil, err
	}

	count, err := s.sectionRepo.CountByReport(section.ReportID)
	if err != nil {
		return nil, err
	}
	if newOrder < 1 || int64(newOrder) > count {
		return nil, apperr.OutOfRange("new order %d is out of range for %d sections", newOrder, count)
	}

	if err := s.sectionRepo.Move(id, newOrder); err != nil {
		return nil, fmt.Errorf("move section: %w", err)
	}
	return s.Get(id)
}

// Reorder compacts the report's section orders to exactly 1..N.
func (s *SectionService) Reorder(reportID uint) error {
	return s.sectionRepo.Reorder(reportID)
}
