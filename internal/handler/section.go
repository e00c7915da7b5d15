package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reportdesk/backend/internal/model"
	"github.com/reportdesk/backend/internal/policy"
	"github.com/reportdesk/backend/internal/service"
)

type SectionHandler struct {
	sections *service.SectionService
	reports  *service.ReportService
}

func NewSectionHandler(sections *service.SectionService, reports *service.ReportService) *SectionHandler {
	return &SectionHandler{sections: sections, reports: reports}
}

// authorizeReportEdit loads the parent report and applies the edit rule:
// admins always, the author only while the report is open. A false
// return means the response is already written.
func (h *SectionHandler) authorizeReportEdit(c *gin.Context, user *model.UserProfile, reportID uint) bool {
	report, err := h.reports.GetBasic(reportID)
	if err != nil {
		writeError(c, err)
		return false
	}
	if !policy.CanEditReport(roleOf(user), user.ID, report) {
		forbidden(c)
		return false
	}
	return true
}

type AddSectionRequest struct {
	ReportID uint   `json:"report_id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	// Order stores an explicit sort_order as-is (may leave a gap).
	// Position inserts at a slot and shifts the rest. At most one of
	// the two is meaningful; Position wins.
	Order    int `json:"order"`
	Position int `json:"position"`
}

func (h *SectionHandler) Add(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.authorizeReportEdit(c, user, req.ReportID) {
		return
	}

	var section *model.Section
	var err error
	if req.Position > 0 {
		section, err = h.sections.AddAt(req.ReportID, req.Title, req.Position)
	} else {
		section, err = h.sections.Add(req.ReportID, req.Title, req.Order)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

func (h *SectionHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	section, err := h.sections.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

type RenameSectionRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *SectionHandler) Rename(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	section, err := h.sections.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.authorizeReportEdit(c, user, section.ReportID) {
		return
	}

	var req RenameSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	renamed, err := h.sections.Rename(uint(id), req.Title)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, renamed)
}

func (h *SectionHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	section, err := h.sections.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.authorizeReportEdit(c, user, section.ReportID) {
		return
	}

	if err := h.sections.Remove(uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type MoveSectionRequest struct {
	NewOrder int `json:"new_order" binding:"required"`
}

func (h *SectionHandler) Move(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	section, err := h.sections.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.authorizeReportEdit(c, user, section.ReportID) {
		return
	}

	var req MoveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	moved, err := h.sections.Move(uint(id), req.NewOrder)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, moved)
}
