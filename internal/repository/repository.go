package repository

import (
	"errors"

	"github.com/reportdesk/backend/internal/model"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ReportFilter narrows List results. Zero values mean no filtering.
type ReportFilter struct {
	Status   string
	AuthorID uint
	Year     int
}

type ReportRepository interface {
	Create(report *model.Report) error
	// Get loads the full report graph: sections ordered by sort_order,
	// elements of each section ordered by sort_order.
	Get(id uint) (*model.Report, error)
	GetBasic(id uint) (*model.Report, error)
	List(filter ReportFilter) ([]model.Report, error)
	Save(report *model.Report) error
	// Delete removes the report together with its sections and elements.
	Delete(id uint) error
}

type SectionRepository interface {
	// Create appends at max(sort_order)+1 when section.SortOrder is zero;
	// an explicit positive SortOrder is stored as given, without compaction.
	Create(section *model.Section) error
	Get(id uint) (*model.Section, error)
	GetByReport(reportID uint) ([]model.Section, error)
	CountByReport(reportID uint) (int64, error)
	Save(section *model.Section) error
	// Delete removes the section and its elements, then renumbers the
	// remaining siblings so orders stay dense.
	Delete(id uint) error
	// Move places the section at newOrder, shifting the siblings in
	// between, and finishes with a full renumber.
	Move(id uint, newOrder int) error
	// Reorder renumbers a report's sections to exactly 1..N.
	Reorder(reportID uint) error
}

type ElementRepository interface {
	// Create appends at max(sort_order)+1 when element.SortOrder is zero;
	// an explicit positive SortOrder is stored as given, without compaction.
	Create(element *model.ContentElement) error
	Get(id uint) (*model.ContentElement, error)
	GetBySection(sectionID uint) ([]model.ContentElement, error)
	CountBySection(sectionID uint) (int64, error)
	// CountUnapprovedByReport counts elements across all sections of the
	// report whose status is not the given one. Drives the publish guard.
	CountNotInStatusByReport(reportID uint, status string) (int64, error)
	Save(element *model.ContentElement) error
	Delete(id uint) error
	Move(id uint, newOrder int) error
	// Swap exchanges the sort orders of two elements of one section.
	Swap(aID, bID uint) error
	// Reorder renumbers a section's elements to exactly 1..M.
	Reorder(sectionID uint) error
	// ClearDataSourceRefs nulls the weak data source reference on every
	// element citing it. Elements themselves are kept.
	ClearDataSourceRefs(dataSourceID uint) error
}

type DataSourceRepository interface {
	Create(ds *model.DataSource) error
	Get(id uint) (*model.DataSource, error)
	List() ([]model.DataSource, error)
	// Delete removes the data source after clearing weak references to it.
	Delete(id uint) error
}

type UserRepository interface {
	Create(user *model.UserProfile) error
	Get(id uint) (*model.UserProfile, error)
	GetByUsername(username string) (*model.UserProfile, error)
	List() ([]model.UserProfile, error)
	Save(user *model.UserProfile) error
}
