package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/model"
	"github.com/Zachkp/portfolio/internal/objects"
)

// respondError maps the error taxonomy onto a status code and a JSON body.
// Only the response is affected; other endpoints keep serving.
func respondError(c *gin.Context, err error) {
	var (
		verr  *model.ValidationError
		uerr  *model.UpstreamError
		ioerr *model.IOError
	)
	switch {
	case errors.As(err, &verr):
		fields := verr.Fields
		if fields == nil {
			fields = []model.FieldError{}
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "errors": fields})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": capitalize(err.Error())})
	case errors.Is(err, errUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, objects.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Upload URL is invalid or expired"})
	case errors.As(err, &uerr):
		log.Printf("Upstream failure on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to reach " + uerr.Service})
	case errors.As(err, &ioerr):
		log.Printf("I/O failure on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to " + ioerr.Op + " content"})
	default:
		log.Printf("Error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
