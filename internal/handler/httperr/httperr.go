package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/infra/admission"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/commands"
	"shop-backend/internal/usecase/queries"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = codeFor(status)
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps err onto the error taxonomy and aborts with the matching status.
// Client errors carry the error text; server errors are masked.
func Abort(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	AbortWithError(c, status, err, msg, nil)
}

func StatusFor(err error) int {
	switch {
	case errs.Is(err, admission.ErrAdmissionTimeout):
		return http.StatusTooManyRequests
	case errs.Is(err, commands.ErrAuthenticationFailed), errs.Is(err, commands.ErrAdminInactive):
		return http.StatusUnauthorized
	case errs.Is(err, queries.ErrInvalidCursor):
		return http.StatusBadRequest
	}

	switch errs.Kind(err) {
	case errs.ErrFatal:
		return http.StatusInternalServerError
	case errs.ErrUpstreamFailure:
		return http.StatusBadGateway
	case errs.ErrInsufficientStock, errs.ErrConflict:
		return http.StatusConflict
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrInvalidInput:
		return http.StatusBadRequest
	case errs.ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_INPUT"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusTooManyRequests:
		return "BUSY"
	case http.StatusBadGateway:
		return "UPSTREAM_FAILURE"
	case http.StatusServiceUnavailable:
		return "UNAVAILABLE"
	default:
		return "INTERNAL"
	}
}
