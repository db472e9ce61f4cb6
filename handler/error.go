package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haiminh/pdf-insight-be/types"
)

// writeError maps the error taxonomy onto HTTP statuses: validation
// errors are the client's fault (400), upstream failures are reported as
// bad gateway (502), persistence and configuration problems are server
// errors (500).
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var validationErr *types.ValidationError
	var upstreamErr *types.UpstreamError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &upstreamErr):
		status = http.StatusBadGateway
	}

	c.JSON(status, types.ErrorResponse{Error: err.Error()})
}
