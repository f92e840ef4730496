package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
)

type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(ps portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{productService: ps}
}

func registerProductRoutes(org *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)

	products := org.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:productID", h.getProduct)
		products.PATCH("/:productID", h.updateProduct)
	}
}

// createProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param product body dto.CreateProductRequest true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), c.Param(orgParam), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param active query bool false "Only active products"
// @Success 200 {object} dto.ListProductsResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), c.Param(orgParam), userID, params.ActiveOnly)
	if err != nil {
		respondError(c, err, "Failed to list products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, dto.ListProductsResponse{Products: products})
}

// getProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param productID path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param(orgParam), c.Param("productID"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// updateProduct godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param productID path string true "Product ID"
// @Param product body dto.UpdateProductRequest true "Fields to change"
// @Success 200 {object} domain.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/products/{productID} [patch]
func (h *productHandler) updateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param(orgParam), c.Param("productID"), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}
