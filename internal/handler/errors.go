package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reportdesk/backend/internal/apperr"
)

// writeError translates core failure kinds into HTTP statuses. Anything
// without a kind is an internal error.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindInvalidArgument,
		apperr.KindOutOfRange, apperr.KindUnsupported:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindPreconditionFailed:
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
}
