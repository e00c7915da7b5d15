package repository

import (
	"errors"

	"github.com/reportdesk/backend/internal/model"
	"gorm.io/gorm"
)

var sectionSeq = sequencer{model: &model.Section{}, scopeCol: "report_id"}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(section *model.Section) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if section.SortOrder <= 0 {
			next, err := sectionSeq.nextOrder(tx, section.ReportID)
			if err != nil {
				return err
			}
			section.SortOrder = next
		}
		return tx.Create(section).Error
	})
}

func (r *sectionRepository) Get(id uint) (*model.Section, error) {
	var section model.Section
	err := r.db.Preload("Elements", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).First(&section, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) GetByReport(reportID uint) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.Where("report_id = ?", reportID).
		Order("sort_order ASC, id ASC").
		Find(&sections).Error
	return sections, err
}

func (r *sectionRepository) CountByReport(reportID uint) (int64, error) {
	return sectionSeq.count(r.db, reportID)
}

func (r *sectionRepository) Save(section *model.Section) error {
	return r.db.Save(section).Error
}

// Delete removes the section with its elements and compacts the
// remaining sibling orders, all inside one transaction.
func (r *sectionRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var section model.Section
		if err := tx.First(&section, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("section_id = ?", id).
			Delete(&model.ContentElement{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Section{}, id).Error; err != nil {
			return err
		}
		return sectionSeq.renumber(tx, section.ReportID)
	})
}

func (r *sectionRepository) Move(id uint, newOrder int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var section model.Section
		if err := tx.First(&section, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return sectionSeq.move(tx, section.ReportID, id, newOrder)
	})
}

func (r *sectionRepository) Reorder(reportID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return sectionSeq.renumber(tx, reportID)
	})
}
