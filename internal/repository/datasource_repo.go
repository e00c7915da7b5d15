package repository

import (
	"errors"

	"github.com/reportdesk/backend/internal/model"
	"gorm.io/gorm"
)

type dataSourceRepository struct {
	db *gorm.DB
}

func NewDataSourceRepository(db *gorm.DB) DataSourceRepository {
	return &dataSourceRepository{db: db}
}

func (r *dataSourceRepository) Create(ds *model.DataSource) error {
	return r.db.Create(ds).Error
}

func (r *dataSourceRepository) Get(id uint) (*model.DataSource, error) {
	var ds model.DataSource
	if err := r.db.First(&ds, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ds, nil
}

func (r *dataSourceRepository) List() ([]model.DataSource, error) {
	var sources []model.DataSource
	err := r.db.Order("id ASC").Find(&sources).Error
	return sources, err
}

// Delete nulls the weak references on citing elements first; the
// elements themselves survive the data source.
func (r *dataSourceRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ContentElement{}).
			Where("data_source_id = ?", id).
			Update("data_source_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.DataSource{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
