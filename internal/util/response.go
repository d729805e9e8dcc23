package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is a loose map payload for handlers that assemble ad-hoc objects.
type Response map[string]interface{}

// business codes carried next to the HTTP status
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeForbidden    = 40301
	CodeNotFound     = 40401
	CodeConflict     = 40901
	CodeServerErr    = 50001
)

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes a failure envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// Fail maps err onto the error taxonomy and writes the matching envelope.
// Unclassified errors are reported as 500 with their message as-is.
func Fail(c *gin.Context, err error) {
	var verr *ValidationError
	var cerr *ConflictError
	switch {
	case errors.As(err, &verr):
		Error(c, http.StatusBadRequest, CodeInvalidParam, verr.Message)
	case errors.As(err, &cerr):
		Error(c, http.StatusConflict, CodeConflict, cerr.Error())
	case errors.Is(err, ErrUnauthorized):
		Error(c, http.StatusUnauthorized, CodeAuth, err.Error())
	case errors.Is(err, ErrForbidden):
		Error(c, http.StatusForbidden, CodeForbidden, err.Error())
	case errors.Is(err, ErrNotFound):
		Error(c, http.StatusNotFound, CodeNotFound, err.Error())
	default:
		Error(c, http.StatusInternalServerError, CodeServerErr, err.Error())
	}
}
