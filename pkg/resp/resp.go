package resp

import (
	"errors"
	"net/http"

	"backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}
func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{"ok": false, "error": msg})
}
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
}

// Error maps a service error kind to the right status. Unknown errors
// become a generic 500; internals never leak to the client.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, apperr.ErrUnauthorized):
		Unauthorized(c, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		Forbidden(c, err.Error())
	case errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrProductUnavailable):
		Conflict(c, err.Error())
	case errors.Is(err, apperr.ErrEmptyCart),
		errors.Is(err, apperr.ErrCouponExpired),
		errors.Is(err, apperr.ErrCouponLimitReached),
		errors.Is(err, apperr.ErrCouponBelowMin),
		errors.Is(err, apperr.ErrPaymentVerification):
		BadRequest(c, err.Error())
	default:
		ServerError(c)
	}
}
