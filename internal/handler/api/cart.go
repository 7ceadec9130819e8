package api

import (
	"net/http"

	"shop-backend/internal/domain/cart"
	reqdto "shop-backend/internal/handler/dto/request"
	resdto "shop-backend/internal/handler/dto/response"
	"shop-backend/internal/handler/httperr"
	"shop-backend/internal/handler/middleware"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/commands"
	"shop-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrInvalidProductID = errs.New("invalid product id format")
	ErrInvalidRequest   = errs.New("invalid request format")
)

type CartHandler struct {
	carts   commands.CartCommands
	queries queries.CartQueries
}

func NewCartHandler(carts commands.CartCommands, q queries.CartQueries) *CartHandler {
	return &CartHandler{
		carts:   carts,
		queries: q,
	}
}

// @Summary Get cart
// @Description Get the visitor's cart
// @Tags cart
// @Produce json
// @Param X-Cart-ID header string false "Explicit cart id"
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} httperr.Response
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	ct, err := h.queries.GetCart(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(ct))
}

// @Summary Add item
// @Description Reserve units of a product and add them to the cart
// @Tags cart
// @Produce json
// @Param productId path string true "Product ID"
// @Param amount query int false "Units to add" default(1)
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /cart/items/{productId} [put]
func (h *CartHandler) AddItem(c *gin.Context) {
	id, productID, amount, ok := itemParams(c)
	if !ok {
		return
	}

	ct, err := h.carts.AddItem(c.Request.Context(), id, productID, amount)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(ct))
}

// @Summary Remove item
// @Description Remove units of a product; removing more than present removes the line
// @Tags cart
// @Produce json
// @Param productId path string true "Product ID"
// @Param amount query int false "Units to remove" default(1)
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, productID, amount, ok := itemParams(c)
	if !ok {
		return
	}

	ct, err := h.carts.RemoveItem(c.Request.Context(), id, productID, amount)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(ct))
}

// @Summary Empty cart
// @Description Release every reservation and delete the cart
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} httperr.Response
// @Router /cart [delete]
func (h *CartHandler) EmptyCart(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	ct, err := h.carts.EmptyCart(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(ct))
}

// @Summary Set shipping method
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.SetShippingMethodRequest true "Shipping method"
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cart/shipping-method [put]
func (h *CartHandler) SetShippingMethod(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	var req reqdto.SetShippingMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	ct, err := h.carts.SetShippingMethod(c.Request.Context(), id, req.ShippingMethodID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(ct))
}

// @Summary Clear shipping method
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} httperr.Response
// @Router /cart/shipping-method [delete]
func (h *CartHandler) ClearShippingMethod(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	ct, err := h.carts.ClearShippingMethod(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(ct))
}

// @Summary Set customer details
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.CustomerDetailsRequest true "Customer details"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Router /cart/customer [put]
func (h *CartHandler) SetCustomerDetails(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	var req reqdto.CustomerDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	ct, err := h.carts.SetCustomerDetails(c.Request.Context(), id, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(ct))
}

func itemParams(c *gin.Context) (id cart.ID, productID uuid.UUID, amount int, ok bool) {
	id, ok = cartID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, ErrInvalidProductID), "Invalid product ID format", nil)
		return id, uuid.Nil, 0, false
	}

	var q reqdto.AmountQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err)
		return id, uuid.Nil, 0, false
	}
	return id, productID, q.Value(), true
}

func abortBadRequest(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, ErrInvalidRequest), "Invalid request format", err.Error())
}

func cartID(c *gin.Context) (cart.ID, bool) {
	id, ok := middleware.GetCartID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("cart id missing from context"), "Internal server error", nil)
	}
	return id, ok
}
