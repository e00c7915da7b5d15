package service

import (
	"fmt"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/reportdesk/backend/internal/apperr"
	"github.com/reportdesk/backend/internal/model"
	"github.com/reportdesk/backend/internal/repository"
)

// Data source kinds mirror what the authoring UI can attach.
const (
	SourceTypeCSV   = "csv"
	SourceTypeJSON  = "json"
	SourceTypeExcel = "excel"
	SourceTypeAPI   = "api"
)

func isValidSourceType(sourceType string) bool {
	switch sourceType {
	case SourceTypeCSV, SourceTypeJSON, SourceTypeExcel, SourceTypeAPI:
		return true
	}
	return false
}

type DataSourceService struct {
	dataSourceRepo repository.DataSourceRepository
}

func NewDataSourceService(dataSourceRepo repository.DataSourceRepository) *DataSourceService {
	return &DataSourceService{dataSourceRepo: dataSourceRepo}
}

// Create registers an external dataset reference. The content behind
// FilePath or APIURL is never read here.
func (s *DataSourceService) Create(name, sourceType, filePath, apiURL string) (*model.DataSource, error) {
	if name == "" {
		return nil, apperr.Validation("name is required for a data source")
	}
	if !isValidSourceType(sourceType) {
		return nil, apperr.InvalidArgument("unknown data source type: %s", sourceType)
	}

	ds := &model.DataSource{
		RefKey:     uuid.New().String(),
		Name:       name,
		SourceType: sourceType,
		FilePath:   filePath,
		APIURL:     apiURL,
	}
	if err := s.dataSourceRepo.Create(ds); err != nil {
		return nil, fmt.Errorf("create data source: %w", err)
	}

	klog.V(6).Infof("data source created: id=%d, refKey=%s, type=%s", ds.ID, ds.RefKey, ds.SourceType)
	return ds, nil
}

func (s *DataSourceService) Get(id uint) (*model.DataSource, error) {
	ds, err := s.dataSourceRepo.Get(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("data source %d not found", id)
		}
		return nil, err
	}
	return ds, nil
}

func (s *DataSourceService) List() ([]model.DataSource, error) {
	return s.dataSourceRepo.List()
}

// Delete removes the data source. Elements citing it keep existing with
// the reference cleared.
func (s *DataSourceService) Delete(id uint) error {
	if err := s.dataSourceRepo.Delete(id); err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("data source %d not found", id)
		}
		return err
	}
	klog.V(6).Infof("data source deleted: id=%d", id)
	return nil
}
