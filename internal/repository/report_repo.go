package repository

import (
	"errors"

	"github.com/reportdesk/backend/internal/model"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) Get(id uint) (*model.Report, error) {
	var report model.Report
	err := r.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Sections.Elements", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) GetBasic(id uint) (*model.Report, error) {
	var report model.Report
	if err := r.db.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(filter ReportFilter) ([]model.Report, error) {
	query := r.db.Model(&model.Report{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}

	var reports []model.Report
	err := query.Order("id ASC").Find(&reports).Error
	return reports, err
}

func (r *reportRepository) Save(report *model.Report) error {
	return r.db.Save(report).Error
}

// Delete cascades to sections and their elements inside one transaction.
func (r *reportRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var sectionIDs []uint
		if err := tx.Model(&model.Section{}).
			Where("report_id = ?", id).
			Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", sectionIDs).
				Delete(&model.ContentElement{}).Error; err != nil {
				return err
			}
			if err := tx.Where("report_id = ?", id).
				Delete(&model.Section{}).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&model.Report{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
