package api

import (
	"errors"
	"net/http"

	"github.com/etnz/finkit"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// codeBadRequest reports a body that could not be decoded.
const codeBadRequest = "bad_request"

// badRequest answers 400 for a malformed body.
func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: codeBadRequest, Message: err.Error()})
}

// domainError answers 422 for a condition reported by an engine, and 500 for
// anything else.
func domainError(c *gin.Context, err error) {
	code := finkit.ErrorCode(err)
	status := http.StatusUnprocessableEntity
	if code == "internal" {
		status = http.StatusInternalServerError
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Message: err.Error()})
}

// partial reports whether err only marks part of a result as undefined, the
// result being still worth returning.
func partial(err error) bool {
	return errors.Is(err, finkit.ErrTerminalValueUndefined)
}
