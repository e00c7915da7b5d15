package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reportdesk/backend/internal/model"
	"github.com/reportdesk/backend/internal/policy"
	"github.com/reportdesk/backend/internal/service"
	"github.com/reportdesk/backend/internal/service/statemachine"
)

type ElementHandler struct {
	elements *service.ElementService
	sections *service.SectionService
	reports  *service.ReportService
}

func NewElementHandler(
	elements *service.ElementService,
	sections *service.SectionService,
	reports *service.ReportService,
) *ElementHandler {
	return &ElementHandler{elements: elements, sections: sections, reports: reports}
}

// reportOfSection resolves the parent report through the section. A nil
// return means the response is already written.
func (h *ElementHandler) reportOfSection(c *gin.Context, sectionID uint) *model.Report {
	section, err := h.sections.Get(sectionID)
	if err != nil {
		writeError(c, err)
		return nil
	}
	report, err := h.reports.GetBasic(section.ReportID)
	if err != nil {
		writeError(c, err)
		return nil
	}
	return report
}

func (h *ElementHandler) authorizeEdit(c *gin.Context, user *model.UserProfile, sectionID uint) bool {
	report := h.reportOfSection(c, sectionID)
	if report == nil {
		return false
	}
	if !policy.CanEditReport(roleOf(user), user.ID, report) {
		forbidden(c)
		return false
	}
	return true
}

type AddElementRequest struct {
	SectionID    uint   `json:"section_id" binding:"required"`
	Kind         string `json:"kind" binding:"required"`
	Text         string `json:"text"`
	Title        string `json:"title"`
	Dataset      []byte `json:"dataset"`
	TableData    string `json:"table_data"`
	DataSourceID *uint  `json:"data_source_id"`
}

func (h *ElementHandler) Add(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req AddElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.authorizeEdit(c, user, req.SectionID) {
		return
	}

	var element *model.ContentElement
	var err error
	switch req.Kind {
	case model.ElementKindParagraph:
		element, err = h.elements.AddParagraph(req.SectionID, req.Text)
	case model.ElementKindChart:
		element, err = h.elements.AddChart(req.SectionID, req.Title, req.Dataset, req.DataSourceID)
	case model.ElementKindTable:
		element, err = h.elements.AddTable(req.SectionID, req.Title, req.TableData, req.DataSourceID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown element kind: " + req.Kind})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, element)
}

func (h *ElementHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	element, err := h.elements.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, element)
}

type EditElementRequest struct {
	Text            *string `json:"text"`
	Title           *string `json:"title"`
	Dataset         []byte  `json:"dataset"`
	TableData       *string `json:"table_data"`
	DataSourceID    *uint   `json:"data_source_id"`
	ClearDataSource bool    `json:"clear_data_source"`
}

func (h *ElementHandler) Edit(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	element, err := h.elements.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.authorizeEdit(c, user, element.SectionID) {
		return
	}

	var req EditElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	edited, err := h.elements.Edit(uint(id), service.ElementPatch{
		Text:            req.Text,
		Title:           req.Title,
		Dataset:         req.Dataset,
		TableData:       req.TableData,
		DataSourceID:    req.DataSourceID,
		ClearDataSource: req.ClearDataSource,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, edited)
}

func (h *ElementHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	element, err := h.elements.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.authorizeEdit(c, user, element.SectionID) {
		return
	}

	if err := h.elements.Remove(uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type MoveElementRequest struct {
	NewOrder int `json:"new_order" binding:"required"`
}

func (h *ElementHandler) Move(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	element, err := h.elements.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.authorizeEdit(c, user, element.SectionID) {
		return
	}

	var req MoveElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	moved, err := h.elements.Move(uint(id), req.NewOrder)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, moved)
}

type SwapElementRequest struct {
	Direction string `json:"direction" binding:"required"`
}

func (h *ElementHandler) Swap(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	element, err := h.elements.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.authorizeEdit(c, user, element.SectionID) {
		return
	}

	var req SwapElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	swapped, err := h.elements.SwapAdjacent(uint(id), req.Direction)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, swapped)
}

// Advance promotes the element one approval step. The final step into
// approved is an approval action; earlier steps follow the edit rule.
func (h *ElementHandler) Advance(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	element, err := h.elements.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}

	if statemachine.ElementStatus(element.Status) == statemachine.ElementStatusStaged {
		if !policy.CanApproveReport(roleOf(user)) {
			forbidden(c)
			return
		}
	} else if !h.authorizeEdit(c, user, element.SectionID) {
		return
	}

	advanced, err := h.elements.Advance(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, advanced)
}
