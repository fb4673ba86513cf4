package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/sofregit/backend/internal/form"
	"github.com/pageza/sofregit/backend/internal/types"
)

// bindForm binds the request body into req and runs its field checks. It
// writes the 400 response itself and reports whether the handler may go on.
func bindForm(c *gin.Context, req any, messages map[string]string) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	if err := form.Validate(req, messages); err != nil {
		var fields form.FieldErrors
		if errors.As(err, &fields) {
			c.JSON(http.StatusBadRequest, types.ValidationErrorResponse{Error: "validation failed", Fields: fields})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func submissionInProgress(c *gin.Context) {
	c.JSON(http.StatusConflict, gin.H{"error": form.ErrSubmissionInProgress.Error()})
}
