package api

import (
	"net/http"

	"shop-backend/internal/domain/order"
	reqdto "shop-backend/internal/handler/dto/request"
	resdto "shop-backend/internal/handler/dto/response"
	"shop-backend/internal/handler/httperr"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/commands"
	"shop-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrInvalidOrderID = errs.New("invalid order id format")

type OrderHandler struct {
	orders  commands.OrderCommands
	queries queries.OrderQueries
}

func NewOrderHandler(orders commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		queries: q,
	}
}

// @Summary Checkout
// @Description Create a pending order for the cart and open a payment process. Repeating the call while the order is pending returns the same order.
// @Tags orders
// @Produce json
// @Success 201 {object} resdto.CheckoutResponse
// @Success 200 {object} resdto.CheckoutResponse "existing pending order"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	res, err := h.orders.CreateOrder(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromCheckout(res))
}

// @Summary Cancel checkout
// @Description Cancel the cart's pending order; reservations stay with the cart
// @Tags orders
// @Produce json
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders [delete]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	o, err := h.orders.CancelOrder(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondOrder(c, o)
}

// @Summary Payment callback
// @Description Server-to-server notification from the payment provider
// @Tags orders
// @Accept json
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /orders/payment-callback [post]
func (h *OrderHandler) PaymentCallback(c *gin.Context) {
	var req reqdto.PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	cb, err := req.ToCallback()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	if _, err := h.orders.HandlePaymentCallback(c.Request.Context(), cb); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List orders
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or cancelled"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q reqdto.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err)
		return
	}

	var status *order.Status
	if q.Status != "" {
		st, err := order.ParseStatus(q.Status)
		if err != nil {
			httperr.Abort(c, errs.Mark(err, errs.ErrInvalidInput))
			return
		}
		status = &st
	}
	var cursor *queries.Cursor
	if q.Cursor != "" {
		cursor = &queries.Cursor{After: q.Cursor}
	}

	orders, next, err := h.queries.ListOrders(c.Request.Context(), status, cursor, q.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	resp := resdto.OrderListResponse{Orders: make([]*resdto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		r, err := resdto.FromOrder(o)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		resp.Orders = append(resp.Orders, r)
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get order
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	o, err := h.queries.GetOrder(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondOrder(c, o)
}

// @Summary Resend order notification
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /orders/{id}/resend-notification [post]
func (h *OrderHandler) ResendNotification(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.orders.ResendNotification(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) respondOrder(c *gin.Context, o *order.Order) {
	resp, err := resdto.FromOrder(o)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, ErrInvalidOrderID), "Invalid order ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
