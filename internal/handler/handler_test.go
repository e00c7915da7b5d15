package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/reportdesk/backend/config"
	"github.com/reportdesk/backend/internal/eventbus"
	"github.com/reportdesk/backend/internal/handler"
	"github.com/reportdesk/backend/internal/model"
	"github.com/reportdesk/backend/internal/repository"
	"github.com/reportdesk/backend/internal/router"
	"github.com/reportdesk/backend/internal/service"
)

// fixed user ids seeded by newTestServer
const (
	adminID  = 1
	editorID = 2
	writerID = 3
	readerID = 4
)

func newTestServer(t *testing.T) (*gin.Engine, *testServices) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	userRepo := repository.NewUserRepository(db)
	for _, u := range []model.UserProfile{
		{Username: "ada", Role: "admin"},
		{Username: "eli", Role: "editor"},
		{Username: "wen", Role: "writer"},
		{Username: "rio", Role: "reader"},
	} {
		user := u
		if err := userRepo.Create(&user); err != nil {
			t.Fatalf("seed user error: %v", err)
		}
	}

	reportRepo := repository.NewReportRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	elementRepo := repository.NewElementRepository(db)
	dataSourceRepo := repository.NewDataSourceRepository(db)

	bus := eventbus.NewBus()
	svc := &testServices{
		reports:     service.NewReportService(reportRepo, sectionRepo, elementRepo, bus),
		sections:    service.NewSectionService(reportRepo, sectionRepo),
		elements:    service.NewElementService(sectionRepo, elementRepo, dataSourceRepo, bus),
		dataSources: service.NewDataSourceService(dataSourceRepo),
		users:       service.NewUserService(userRepo),
	}

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"

	engine := router.Setup(cfg, userRepo,
		handler.NewReportHandler(svc.reports),
		handler.NewSectionHandler(svc.sections, svc.reports),
		handler.NewElementHandler(svc.elements, svc.sections, svc.reports),
		handler.NewDataSourceHandler(svc.dataSources),
		handler.NewUserHandler(svc.users),
	)
	return engine, svc
}

type testServices struct {
	reports     *service.ReportService
	sections    *service.SectionService
	elements    *service.ElementService
	dataSources *service.DataSourceService
	users       *service.UserService
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, userID int, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body error: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", userID))
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAnonymousCannotMutate(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/reports", 0,
		gin.H{"title": "T", "topic": "X", "year": 2026})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestReaderCannotCreateReport(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/reports", readerID,
		gin.H{"title": "T", "topic": "X", "year": 2026})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestWriterCannotPublish(t *testing.T) {
	engine, svc := newTestServer(t)

	report, err := svc.reports.Create("T", "X", 2026, writerID)
	if err != nil {
		t.Fatalf("create report error: %v", err)
	}

	w := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/reports/%d/status", report.ID),
		writerID, gin.H{"status": "published"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPublishGuardOverHTTP(t *testing.T) {
	engine, svc := newTestServer(t)

	report, err := svc.reports.Create("T", "X", 2026, writerID)
	if err != nil {
		t.Fatalf("create report error: %v", err)
	}
	section, err := svc.sections.Add(report.ID, "Body", 0)
	if err != nil {
		t.Fatalf("add section error: %v", err)
	}
	element, err := svc.elements.AddParagraph(section.ID, "text")
	if err != nil {
		t.Fatalf("add paragraph error: %v", err)
	}

	path := fmt.Sprintf("/api/reports/%d/status", report.ID)
	w := doJSON(t, engine, http.MethodPost, path, adminID, gin.H{"status": "published"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 with draft element, got %d: %s", w.Code, w.Body.String())
	}

	// writer stages the draft; the approval step belongs to the editor
	advance := fmt.Sprintf("/api/elements/%d/advance", element.ID)
	if w := doJSON(t, engine, http.MethodPost, advance, writerID, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 staging own draft, got %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, engine, http.MethodPost, advance, writerID, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for writer approval, got %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, engine, http.MethodPost, advance, editorID, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for editor approval, got %d: %s", w.Code, w.Body.String())
	}

	if w := doJSON(t, engine, http.MethodPost, path, adminID, gin.H{"status": "published"}); w.Code != http.StatusOK {
		t.Fatalf("expected 200 publishing approved report, got %d: %s", w.Code, w.Body.String())
	}

	// published is terminal
	if w := doJSON(t, engine, http.MethodPost, path, adminID, gin.H{"status": "open"}); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on reopen, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthorCannotEditPublishedReport(t *testing.T) {
	engine, svc := newTestServer(t)

	report, err := svc.reports.Create("T", "X", 2026, writerID)
	if err != nil {
		t.Fatalf("create report error: %v", err)
	}
	path := fmt.Sprintf("/api/reports/%d", report.ID)
	update := gin.H{"title": "T2", "topic": "X", "year": 2026}

	if w := doJSON(t, engine, http.MethodPut, path, writerID, update); w.Code != http.StatusOK {
		t.Fatalf("expected author edit to pass, got %d: %s", w.Code, w.Body.String())
	}

	// a different writer never could
	other := &model.UserProfile{Username: "zed", Role: "writer"}
	if _, err := svc.users.Create(other.Username, other.Role, ""); err != nil {
		t.Fatalf("create user error: %v", err)
	}
	if w := doJSON(t, engine, http.MethodPut, path, 5, update); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author, got %d: %s", w.Code, w.Body.String())
	}

	w := doJSON(t, engine, http.MethodPost, path+"/status", adminID, gin.H{"status": "published"})
	if w.Code != http.StatusOK {
		t.Fatalf("publish error: %d: %s", w.Code, w.Body.String())
	}

	if w := doJSON(t, engine, http.MethodPut, path, writerID, update); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 editing published report, got %d: %s", w.Code, w.Body.String())
	}
	// admins still can
	if w := doJSON(t, engine, http.MethodPut, path, adminID, update); w.Code != http.StatusOK {
		t.Fatalf("expected admin edit to pass, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteReportIsAdminOnly(t *testing.T) {
	engine, svc := newTestServer(t)

	report, err := svc.reports.Create("T", "X", 2026, writerID)
	if err != nil {
		t.Fatalf("create report error: %v", err)
	}
	path := fmt.Sprintf("/api/reports/%d", report.ID)

	if w := doJSON(t, engine, http.MethodDelete, path, writerID, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for writer, got %d", w.Code)
	}
	if w := doJSON(t, engine, http.MethodDelete, path, adminID, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, engine, http.MethodGet, path, 0, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestErrorKindsMapToStatuses(t *testing.T) {
	engine, svc := newTestServer(t)

	report, err := svc.reports.Create("T", "X", 2026, writerID)
	if err != nil {
		t.Fatalf("create report error: %v", err)
	}
	section, err := svc.sections.Add(report.ID, "Body", 0)
	if err != nil {
		t.Fatalf("add section error: %v", err)
	}
	element, err := svc.elements.AddParagraph(section.ID, "text")
	if err != nil {
		t.Fatalf("add paragraph error: %v", err)
	}

	// out-of-range move -> 400
	w := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/elements/%d/move", element.ID),
		writerID, gin.H{"new_order": 9})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out of range, got %d: %s", w.Code, w.Body.String())
	}

	// unknown status -> 400
	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/reports/%d/status", report.ID),
		writerID, gin.H{"status": "archived"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d: %s", w.Code, w.Body.String())
	}

	// missing resource -> 404
	if w := doJSON(t, engine, http.MethodGet, "/api/reports/999", 0, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	engine, svc := newTestServer(t)

	report, err := svc.reports.Create("Quarterly", "Finance", 2026, writerID)
	if err != nil {
		t.Fatalf("create report error: %v", err)
	}
	section, err := svc.sections.Add(report.ID, "Body", 0)
	if err != nil {
		t.Fatalf("add section error: %v", err)
	}
	if _, err := svc.elements.AddParagraph(section.ID, "findings"); err != nil {
		t.Fatalf("add paragraph error: %v", err)
	}

	w := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/reports/%d/export?format=md", report.ID), 0, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); !bytes.Contains([]byte(got), []byte("# Quarterly")) {
		t.Fatalf("unexpected export body: %s", got)
	}

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/reports/%d/export?format=pdf", report.ID), 0, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown format, got %d", w.Code)
	}
}
