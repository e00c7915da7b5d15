package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reportdesk/backend/internal/export"
	"github.com/reportdesk/backend/internal/policy"
	"github.com/reportdesk/backend/internal/repository"
	"github.com/reportdesk/backend/internal/service"
	"github.com/reportdesk/backend/internal/service/statemachine"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type CreateReportRequest struct {
	Title string `json:"title" binding:"required"`
	Topic string `json:"topic" binding:"required"`
	Year  int    `json:"year" binding:"required"`
}

func (h *ReportHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	if !policy.Can(roleOf(user), policy.ActionWrite) {
		forbidden(c)
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.Create(req.Title, req.Topic, req.Year, user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) List(c *gin.Context) {
	filter := repository.ReportFilter{
		Status: c.Query("status"),
	}
	if raw := c.Query("author_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author_id"})
			return
		}
		filter.AuthorID = uint(id)
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		filter.Year = year
	}

	reports, err := h.service.List(filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	report, err := h.service.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type UpdateReportRequest struct {
	Title string `json:"title" binding:"required"`
	Topic string `json:"topic" binding:"required"`
	Year  int    `json:"year" binding:"required"`
}

func (h *ReportHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	report, err := h.service.GetBasic(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	if !policy.CanEditReport(roleOf(user), user.ID, report) {
		forbidden(c)
		return
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(uint(id), req.Title, req.Topic, req.Year)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ReportHandler) SetStatus(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Publishing is an admin action; any other status change follows
	// the edit rule. The publish guard itself stays inside the service.
	if req.Status == string(statemachine.ReportStatusPublished) {
		if !policy.CanPublishReport(roleOf(user)) {
			forbidden(c)
			return
		}
	} else {
		report, err := h.service.GetBasic(uint(id))
		if err != nil {
			writeError(c, err)
			return
		}
		if !policy.CanEditReport(roleOf(user), user.ID, report) {
			forbidden(c)
			return
		}
	}

	report, err := h.service.SetStatus(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	if !policy.CanDeleteReport(roleOf(user)) {
		forbidden(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Export streams the rendered document. Default format is markdown.
func (h *ReportHandler) Export(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	format := export.Format(c.DefaultQuery("format", string(export.FormatMarkdown)))

	report, err := h.service.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}

	data, err := export.Render(report, format)
	if err != nil {
		writeError(c, err)
		return
	}

	contentType := "text/markdown; charset=utf-8"
	if format == export.FormatHTML {
		contentType = "text/html; charset=utf-8"
	}
	c.Header("Content-Disposition", "attachment; filename="+export.Filename(report, format))
	c.Data(http.StatusOK, contentType, data)
}
