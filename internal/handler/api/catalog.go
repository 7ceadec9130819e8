package api

import (
	"net/http"

	reqdto "shop-backend/internal/handler/dto/request"
	resdto "shop-backend/internal/handler/dto/response"
	"shop-backend/internal/handler/httperr"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/commands"
	"shop-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrInvalidCatalogID = errs.New("invalid catalog id format")

type CatalogHandler struct {
	commands commands.CatalogCommands
	queries  queries.CatalogQueries
}

func NewCatalogHandler(cmds commands.CatalogCommands, q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		commands: cmds,
		queries:  q,
	}
}

// @Summary List products
// @Tags catalog
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} resdto.ProductResponse
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var q reqdto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err)
		return
	}

	products, err := h.queries.ListProducts(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProducts(products))
}

// @Summary Get product
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 404 {object} httperr.Response
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := catalogID(c)
	if !ok {
		return
	}

	p, err := h.queries.GetProduct(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProduct(p))
}

// @Summary Create product
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateProductRequest true "Product"
// @Success 201 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	p, err := h.commands.CreateProduct(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromProduct(p))
}

// @Summary List shipping methods
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.ShippingMethodResponse
// @Router /shipping-methods [get]
func (h *CatalogHandler) ListShippingMethods(c *gin.Context) {
	methods, err := h.queries.ListShippingMethods(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromShippingMethods(methods))
}

// @Summary Get shipping method
// @Tags catalog
// @Produce json
// @Param id path string true "Shipping method ID"
// @Success 200 {object} resdto.ShippingMethodResponse
// @Failure 404 {object} httperr.Response
// @Router /shipping-methods/{id} [get]
func (h *CatalogHandler) GetShippingMethod(c *gin.Context) {
	id, ok := catalogID(c)
	if !ok {
		return
	}

	m, err := h.queries.GetShippingMethod(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromShippingMethod(m))
}

// @Summary Create shipping method
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateShippingMethodRequest true "Shipping method"
// @Success 201 {object} resdto.ShippingMethodResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /shipping-methods [post]
func (h *CatalogHandler) CreateShippingMethod(c *gin.Context) {
	var req reqdto.CreateShippingMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	m, err := h.commands.CreateShippingMethod(c.Request.Context(), req.ToParams())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromShippingMethod(m))
}

func catalogID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, ErrInvalidCatalogID), "Invalid ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
