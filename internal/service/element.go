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

type ElementService struct {
	sectionRepo    repository.SectionRepository
	elementRepo    repository.ElementRepository
	dataSourceRepo repository.DataSourceRepository

	stateMachine *statemachine.ElementStateMachine
	bus          *eventbus.Bus
}

func NewElementService(
	sectionRepo repository.SectionRepository,
	elementRepo repository.ElementRepository,
	dataSourceRepo repository.DataSourceRepository,
	bus *eventbus.Bus,
) *ElementService {
	return &ElementService{
		sectionRepo:    sectionRepo,
		elementRepo:    elementRepo,
		dataSourceRepo: dataSourceRepo,
		stateMachine:   statemachine.NewElementStateMachine(),
		bus:            bus,
	}
}

// ElementPatch carries a partial edit. Nil fields stay untouched and
// are not re-validated. Editing never changes the approval status, an
// approved element silently stays approved.
type ElementPatch struct {
	Text            *string
	Title           *string
	Dataset         []byte
	TableData       *string
	DataSourceID    *uint
	ClearDataSource bool
}

func (s *ElementService) resolveSection(sectionID uint) error {
	if _, err := s.sectionRepo.Get(sectionID); err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("section %d not found", sectionID)
		}
		return err
	}
	return nil
}

func (s *ElementService) resolveDataSource(id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.dataSourceRepo.Get(*id); err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("data source %d not found", *id)
		}
		return err
	}
	return nil
}

// AddParagraph appends a draft paragraph at max(order)+1.
func (s *ElementService) AddParagraph(sectionID uint, text string) (*model.ContentElement, error) {
	if err := validateParagraphText(text); err != nil {
		return nil, err
	}
	if err := s.resolveSection(sectionID); err != nil {
		return nil, err
	}

	element := &model.ContentElement{
		SectionID: sectionID,
		Kind:      model.ElementKindParagraph,
		Status:    string(statemachine.ElementStatusDraft),
		Text:      text,
	}
	if err := s.elementRepo.Create(element); err != nil {
		return nil, fmt.Errorf("create paragraph: %w", err)
	}
	klog.V(6).Infof("paragraph added: sectionID=%d, elementID=%d, order=%d", sectionID, element.ID, element.SortOrder)
	return element, nil
}

// AddChart appends a draft chart. The dataset blob and the data source
// reference are both optional; the reference must resolve when given.
func (s *ElementService) AddChart(sectionID uint, title string, dataset []byte, dataSourceID *uint) (*model.ContentElement, error) {
	if err := validateChartTitle(title); err != nil {
		return nil, err
	}
	if err := s.resolveSection(sectionID); err != nil {
		return nil, err
	}
	if err := s.resolveDataSource(dataSourceID); err != nil {
		return nil, err
	}

	element := &model.ContentElement{
		SectionID:    sectionID,
		Kind:         model.ElementKindChart,
		Status:       string(statemachine.ElementStatusDraft),
		Title:        title,
		Dataset:      dataset,
		DataSourceID: dataSourceID,
	}
	if err := s.elementRepo.Create(element); err != nil {
		return nil, fmt.Errorf("create chart: %w", err)
	}
	klog.V(6).Infof("chart added: sectionID=%d, elementID=%d, order=%d", sectionID, element.ID, element.SortOrder)
	return element, nil
}

// AddTable appends a draft table. TableData is an opaque JSON document.
func (s *ElementService) AddTable(sectionID uint, title string, tableData string, dataSourceID *uint) (*model.ContentElement, error) {
	if err := validateTableTitle(title); err != nil {
		return nil, err
	}
	if err := validateTableData(tableData); err != nil {
		return nil, err
	}
	if err := s.resolveSection(sectionID); err != nil {
		return nil, err
	}
	if err := s.resolveDataSource(dataSourceID); err != nil {
		return nil, err
	}

	element := &model.ContentElement{
		SectionID:    sectionID,
		Kind:         model.ElementKindTable,
		Status:       string(statemachine.ElementStatusDraft),
		Title:        title,
		TableData:    tableData,
		DataSourceID: dataSourceID,
	}
	if err := s.elementRepo.Create(element); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	klog.V(6).Infof("table added: sectionID=%d, elementID=%d, order=%d", sectionID, element.ID, element.SortOrder)
	return element, nil
}

func (s *ElementService) Get(id uint) (*model.ContentElement, error) {
	element, err := s.elementRepo.Get(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("element %d not found", id)
		}
		return nil, err
	}
	return element, nil
}

// Edit applies the supplied fields only, re-validating each changed
// required field. Fields that do not belong to the element's kind are
// rejected instead of silently dropped.
func (s *ElementService) Edit(id uint, patch ElementPatch) (*model.ContentElement, error) {
	element, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	switch element.Kind {
	case model.ElementKindParagraph:
		if patch.Title != nil || patch.Dataset != nil || patch.TableData != nil ||
			patch.DataSourceID != nil || patch.ClearDataSource {
			return nil, apperr.Validation("paragraphs only carry text")
		}
		if patch.Text != nil {
			if err := validateParagraphText(*patch.Text); err != nil {
				return nil, err
			}
			element.Text = *patch.Text
		}
	case model.ElementKindChart:
		if patch.Text != nil || patch.TableData != nil {
			return nil, apperr.Validation("charts carry title, dataset and data source")
		}
		if patch.Title != nil {
			if err := validateChartTitle(*patch.Title); err != nil {
				return nil, err
			}
			element.Title = *patch.Title
		}
		if patch.Dataset != nil {
			element.Dataset = patch.Dataset
		}
		if err := s.applyDataSourcePatch(element, patch); err != nil {
			return nil, err
		}
	case model.ElementKindTable:
		if patch.Text != nil || patch.Dataset != nil {
			return nil, apperr.Validation("tables carry title, table data and data source")
		}
		if patch.Title != nil {
			if err := validateTableTitle(*patch.Title); err != nil {
				return nil, err
			}
			element.Title = *patch.Title
		}
		if patch.TableData != nil {
			if err := validateTableData(*patch.TableData); err != nil {
				return nil, err
			}
			element.TableData = *patch.TableData
		}
		if err := s.applyDataSourcePatch(element, patch); err != nil {
			return nil, err
		}
	default:
		return nil, apperr.Unsupported("unknown element kind: %s", element.Kind)
	}

	if err := s.elementRepo.Save(element); err != nil {
		return nil, fmt.Errorf("save element: %w", err)
	}
	return element, nil
}

func (s *ElementService) applyDataSourcePatch(element *model.ContentElement, patch ElementPatch) error {
	if patch.ClearDataSource {
		element.DataSourceID = nil
		return nil
	}
	if patch.DataSourceID != nil {
		if err := s.resolveDataSource(patch.DataSourceID); err != nil {
			return err
		}
		element.DataSourceID = patch.DataSourceID
	}
	return nil
}

// Remove deletes the element and renumbers its section.
func (s *ElementService) Remove(id uint) error {
	if err := s.elementRepo.Delete(id); err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("element %d not found", id)
		}
		return err
	}
	klog.V(6).Infof("element removed: elementID=%d", id)
	return nil
}

// Move places the element at newOrder within its section. newOrder must
// lie in [1, sibling count] counting every kind together.
func (s *ElementService) Move(id uint, newOrder int) (*model.ContentElement, error) {
	element, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	count, err := s.elementRepo.CountBySection(element.SectionID)
	if err != nil {
		return nil, err
	}
	if newOrder < 1 || int64(newOrder) > count {
		return nil, apperr.OutOfRange("new order %d is out of range for %d elements", newOrder, count)
	}

	if err := s.elementRepo.Move(id, newOrder); err != nil {
		return nil, fmt.Errorf("move element: %w", err)
	}
	return s.Get(id)
}

const (
	SwapDirectionUp   = "up"
	SwapDirectionDown = "down"
)

// SwapAdjacent exchanges the element with its direct neighbor. At the
// boundary there is no neighbor and the call fails with OutOfRange.
func (s *ElementService) SwapAdjacent(id uint, direction string) (*model.ContentElement, error) {
	if direction != SwapDirectionUp && direction != SwapDirectionDown {
		return nil, apperr.InvalidArgument("unknown swap direction: %s", direction)
	}

	element, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	siblings, err := s.elementRepo.GetBySection(element.SectionID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, sibling := range siblings {
		if sibling.ID == element.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperr.NotFound("element %d not found in its section", id)
	}

	var neighbor int
	if direction == SwapDirectionUp {
		neighbor = idx - 1
	} else {
		neighbor = idx + 1
	}
	if neighbor < 0 || neighbor >= len(siblings) {
		return nil, apperr.OutOfRange("element %d cannot move %s, already at the boundary", id, direction)
	}

	if err := s.elementRepo.Swap(element.ID, siblings[neighbor].ID); err != nil {
		return nil, fmt.Errorf("swap elements: %w", err)
	}
	return s.Get(id)
}

// Advance promotes the element one approval step: draft -> staged ->
// approved. An approved element is terminal.
func (s *ElementService) Advance(ctx context.Context, id uint) (*model.ContentElement, error) {
	element, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	from := statemachine.ElementStatus(element.Status)
	next, ok := statemachine.NextElementStatus(from)
	if !ok {
		return nil, apperr.PreconditionFailed("element %d is already %s", id, from)
	}
	if err := s.stateMachine.ValidateTransition(from, next); err != nil {
		return nil, err
	}

	element.Status = string(next)
	if err := s.elementRepo.Save(element); err != nil {
		return nil, fmt.Errorf("save element status: %w", err)
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, eventbus.ReportEvent{
			Type:      eventbus.ReportEventElementStatusChanged,
			SectionID: element.SectionID,
			ElementID: element.ID,
			Status:    element.Status,
		}); err != nil {
			klog.Warningf("element status event delivery failed: elementID=%d, error=%v", element.ID, err)
		}
	}

	klog.V(6).Infof("element status advanced: elementID=%d, %s -> %s", element.ID, from, next)
	return element, nil
}

// Reorder compacts the section's element orders to exactly 1..M.
func (s *ElementService) Reorder(sectionID uint) error {
	return s.elementRepo.Reorder(sectionID)
}
