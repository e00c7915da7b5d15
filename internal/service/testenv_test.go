package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/reportdesk/backend/internal/eventbus"
	"github.com/reportdesk/backend/internal/model"
	"github.com/reportdesk/backend/internal/repository"
)

// testEnv wires the services against an in-memory database so the
// ordering and lifecycle behavior is exercised end to end.
type testEnv struct {
	db          *gorm.DB
	bus         *eventbus.Bus
	reports     *ReportService
	sections    *SectionService
	elements    *ElementService
	dataSources *DataSourceService
	users       *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Report{},
		&model.Section{},
		&model.ContentElement{},
		&model.DataSource{},
		&model.UserProfile{},
	); err != nil {
		t.Fatalf("migrate error: %v", err)
	}

	reportRepo := repository.NewReportRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	elementRepo := repository.NewElementRepository(db)
	dataSourceRepo := repository.NewDataSourceRepository(db)
	userRepo := repository.NewUserRepository(db)

	bus := eventbus.NewBus()

	return &testEnv{
		db:          db,
		bus:         bus,
		reports:     NewReportService(reportRepo, sectionRepo, elementRepo, bus),
		sections:    NewSectionService(reportRepo, sectionRepo),
		elements:    NewElementService(sectionRepo, elementRepo, dataSourceRepo, bus),
		dataSources: NewDataSourceService(dataSourceRepo),
		users:       NewUserService(userRepo),
	}
}

func (env *testEnv) mustReport(t *testing.T) *model.Report {
	t.Helper()
	report, err := env.reports.Create("Quarterly Review", "Finance", 2026, 1)
	if err != nil {
		t.Fatalf("create report error: %v", err)
	}
	return report
}

func (env *testEnv) mustSection(t *testing.T, reportID uint, title string) *model.Section {
	t.Helper()
	section, err := env.sections.Add(reportID, title, 0)
	if err != nil {
		t.Fatalf("add section error: %v", err)
	}
	return section
}

func (env *testEnv) mustParagraph(t *testing.T, sectionID uint, text string) *model.ContentElement {
	t.Helper()
	element, err := env.elements.AddParagraph(sectionID, text)
	if err != nil {
		t.Fatalf("add paragraph error: %v", err)
	}
	return element
}
