package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashmilgit15/scheduler-backend/internal/models"
	appErrors "github.com/ashmilgit15/scheduler-backend/pkg/errors"
)

// Envelope represents the common response contract. Warnings carry the
// advisory messages that accompany a successful run; FieldErrors carry
// structural validation failures.
type Envelope struct {
	Data        interface{}            `json:"data,omitempty"`
	Error       *appErrors.Error       `json:"error,omitempty"`
	FieldErrors []models.FieldError    `json:"fieldErrors,omitempty"`
	Warnings    []string               `json:"warnings,omitempty"`
	Meta        map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional advisory warnings.
func JSON(c *gin.Context, status int, data interface{}, warnings []string, meta ...map[string]interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	envelope := Envelope{Data: data, Warnings: warnings}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// ValidationFailed reports structural errors alongside any advisory
// warnings gathered before validation stopped the run.
func ValidationFailed(c *gin.Context, fieldErrors []models.FieldError, warnings []string) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(http.StatusUnprocessableEntity, Envelope{
		Error:       appErrors.Clone(appErrors.ErrValidation, "request failed validation"),
		FieldErrors: fieldErrors,
		Warnings:    warnings,
	})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
