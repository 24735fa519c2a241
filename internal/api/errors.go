package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/tomato/backend/internal/apperrors"
)

// respondError writes the JSON error payload for err. Unexpected errors are
// logged and reported with the fallback message.
func respondError(c *gin.Context, log *logrus.Logger, err error, fallback string) {
	if v, ok := apperrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   v.Message,
			"field":   v.Field,
			"message": v.Message,
		})
		return
	}

	var nf *apperrors.NotFoundError
	if errors.As(err, &nf) {
		msg := notFoundMessage(nf.Resource)
		c.JSON(http.StatusNotFound, gin.H{"error": msg, "message": msg})
		return
	}

	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Message, "message": conflict.Message})
		return
	}

	log.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).Error(fallback)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "message": fallback})
}

// notFoundMessage turns "review" into "Review not found"
func notFoundMessage(resource string) string {
	if resource == "" {
		return "Not found"
	}
	return strings.ToUpper(resource[:1]) + resource[1:] + " not found"
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "message": msg})
}
