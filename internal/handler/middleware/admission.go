package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/handler/httperr"
	"shop-backend/internal/infra/admission"
	"shop-backend/internal/pkg/errs"
)

// Admission holds the cart's single mutation slot for the rest of the chain.
// Must run after Fingerprint.
func Admission(gate admission.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetCartID(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("cart id missing from context"), "Internal server error", nil)
			return
		}

		release, err := gate.Acquire(c.Request.Context(), id.String())
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		defer release()

		c.Next()
	}
}
