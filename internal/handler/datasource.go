package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reportdesk/backend/internal/policy"
	"github.com/reportdesk/backend/internal/service"
)

type DataSourceHandler struct {
	service *service.DataSourceService
}

func NewDataSourceHandler(service *service.DataSourceService) *DataSourceHandler {
	return &DataSourceHandler{service: service}
}

type CreateDataSourceRequest struct {
	Name       string `json:"name" binding:"required"`
	SourceType string `json:"source_type" binding:"required"`
	FilePath   string `json:"file_path"`
	APIURL     string `json:"api_url"`
}

func (h *DataSourceHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	if !policy.Can(roleOf(user), policy.ActionWrite) {
		forbidden(c)
		return
	}

	var req CreateDataSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ds, err := h.service.Create(req.Name, req.SourceType, req.FilePath, req.APIURL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ds)
}

func (h *DataSourceHandler) List(c *gin.Context) {
	sources, err := h.service.List()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sources)
}

func (h *DataSourceHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ds, err := h.service.Get(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}

// Delete is admin-only; element references are cleared, not deleted.
func (h *DataSourceHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	if !policy.Can(roleOf(user), policy.ActionDelete) {
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
