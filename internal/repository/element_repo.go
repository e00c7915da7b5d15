package repository

import (
	"errors"

	"github.com/reportdesk/backend/internal/model"
	"gorm.io/gorm"
)

var elementSeq = sequencer{model: &model.ContentElement{}, scopeCol: "section_id"}

type elementRepository struct {
	db *gorm.DB
}

func NewElementRepository(db *gorm.DB) ElementRepository {
	return &elementRepository{db: db}
}

func (r *elementRepository) Create(element *model.ContentElement) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if element.SortOrder <= 0 {
			next, err := elementSeq.nextOrder(tx, element.SectionID)
			if err != nil {
				return err
			}
			element.SortOrder = next
		}
		return tx.Create(element).Error
	})
}

func (r *elementRepository) Get(id uint) (*model.ContentElement, error) {
	var element model.ContentElement
	if err := r.db.First(&element, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &element, nil
}

func (r *elementRepository) GetBySection(sectionID uint) ([]model.ContentElement, error) {
	var elements []model.ContentElement
	err := r.db.Where("section_id = ?", sectionID).
		Order("sort_order ASC, id ASC").
		Find(&elements).Error
	return elements, err
}

func (r *elementRepository) CountBySection(sectionID uint) (int64, error) {
	return elementSeq.count(r.db, sectionID)
}

func (r *elementRepository) CountNotInStatusByReport(reportID uint, status string) (int64, error) {
	var n int64
	err := r.db.Model(&model.ContentElement{}).
		Joins("JOIN sections ON sections.id = content_elements.section_id").
		Where("sections.report_id = ?", reportID).
		Where("content_elements.status <> ?", status).
		Count(&n).Error
	return n, err
}

func (r *elementRepository) Save(element *model.ContentElement) error {
	return r.db.Save(element).Error
}

func (r *elementRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var element model.ContentElement
		if err := tx.First(&element, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&model.ContentElement{}, id).Error; err != nil {
			return err
		}
		return elementSeq.renumber(tx, element.SectionID)
	})
}

func (r *elementRepository) Move(id uint, newOrder int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var element model.ContentElement
		if err := tx.First(&element, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return elementSeq.move(tx, element.SectionID, id, newOrder)
	})
}

func (r *elementRepository) Swap(aID, bID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var a model.ContentElement
		if err := tx.First(&a, aID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return elementSeq.swap(tx, a.SectionID, aID, bID)
	})
}

func (r *elementRepository) Reorder(sectionID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return elementSeq.renumber(tx, sectionID)
	})
}

func (r *elementRepository) ClearDataSourceRefs(dataSourceID uint) error {
	return r.db.Model(&model.ContentElement{}).
		Where("data_source_id = ?", dataSourceID).
		Update("data_source_id", nil).Error
}
