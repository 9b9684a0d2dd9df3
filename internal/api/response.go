package api

import (
	"bank_backend/internal/domain" // Importing domain models
	"net/http"                     // HTTP status codes
	"strconv"                      // Path parameter parsing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusByKind maps every error kind to the HTTP status it is reported with
var statusByKind = map[domain.ErrorKind]int{
	domain.KindValidation: http.StatusBadRequest,
	domain.KindConflict:   http.StatusBadRequest,
	domain.KindNotFound:   http.StatusNotFound,
	domain.KindAuth:       http.StatusUnauthorized,
	domain.KindStore:      http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for err
func StatusFor(err error) int {
	if status, ok := statusByKind[domain.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"message": ...}, keeping internal detail out of the body
func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"), // Request ID
			"path":       c.FullPath(),              // Route
			"error":      err.Error(),               // Error message
		}).Error("Request failed")
	}
	c.JSON(status, gin.H{"message": domain.MessageOf(err)})
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError("Invalid " + label)
	}
	return uint(id), nil
}
