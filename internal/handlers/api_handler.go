package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"curtain_store/internal/checkout"
	"curtain_store/internal/pricing"
	"curtain_store/internal/repository"
	"curtain_store/internal/services"

	"github.com/gin-gonic/gin"
)

// APIHandler serves the public storefront.
type APIHandler struct {
	storefront services.StorefrontService
	catalog    services.CatalogService
	quotes     services.QuoteService
}

func NewAPIHandler(
	storefront services.StorefrontService,
	catalog services.CatalogService,
	quotes services.QuoteService,
) *APIHandler {
	return &APIHandler{
		storefront: storefront,
		catalog:    catalog,
		quotes:     quotes,
	}
}

// Catalog

func (h *APIHandler) ListProducts(c *gin.Context) {
	inStock, _ := strconv.ParseBool(c.Query("in_stock"))
	products, err := h.catalog.ListProducts(c.Request.Context(), repository.ProductFilter{
		Category:    c.Query("category"),
		CurtainType: c.Query("curtain_type"),
		MotorType:   c.Query("motor_type"),
		Search:      c.Query("q"),
		InStockOnly: inStock,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *APIHandler) GetProduct(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *APIHandler) ListCategoryImages(c *gin.Context) {
	images, err := h.catalog.ListCategoryImages(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

func (h *APIHandler) QuotePrice(c *gin.Context) {
	var in pricing.ConfigurationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	cfg, breakdown, err := h.storefront.Quote(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configuration": cfg, "breakdown": breakdown})
}

// Session management endpoints

func (h *APIHandler) GetSession(c *gin.Context) {
	session, err := h.storefront.Session(c.Request.Context(), c.GetHeader(SessionHeader))
	if err != nil {
		respondError(c, err)
		return
	}
	writeSession(c, session)
}

func (h *APIHandler) Navigate(c *gin.Context) {
	var action checkout.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	session, err := h.storefront.Navigate(c.Request.Context(), c.GetHeader(SessionHeader), action)
	if err != nil {
		respondError(c, err)
		return
	}
	writeSession(c, session)
}

// Cart endpoints

func (h *APIHandler) AddToCart(c *gin.Context) {
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	session, err := h.storefront.AddProduct(c.Request.Context(), c.GetHeader(SessionHeader), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	writeSession(c, session)
}

func (h *APIHandler) AddConfiguredToCart(c *gin.Context) {
	var req struct {
		ProductID uint                       `json:"product_id" binding:"required"`
		Config    pricing.ConfigurationInput `json:"config"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	session, err := h.storefront.AddConfigured(c.Request.Context(), c.GetHeader(SessionHeader), req.ProductID, req.Config)
	if err != nil {
		respondError(c, err)
		return
	}
	writeSession(c, session)
}

func (h *APIHandler) UpdateCartItem(c *gin.Context) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	session, err := h.storefront.UpdateQuantity(c.Request.Context(), c.GetHeader(SessionHeader), c.Param("id"), req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	writeSession(c, session)
}

func (h *APIHandler) RemoveCartItem(c *gin.Context) {
	session, err := h.storefront.RemoveItem(c.Request.Context(), c.GetHeader(SessionHeader), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	writeSession(c, session)
}

// Checkout endpoints

func (h *APIHandler) Checkout(c *gin.Context) {
	var form checkout.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	receipt, err := h.storefront.Checkout(c.Request.Context(), c.GetHeader(SessionHeader), form)
	if err != nil {
		respondError(c, err)
		return
	}
	query, err := receipt.Query()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"receipt":     receipt,
		"receipt_url": "/receipt?" + query,
	})
}

func (h *APIHandler) Receipt(c *gin.Context) {
	receipt, err := checkout.DecodeReceipt(c.Query("data"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *APIHandler) RequestQuote(c *gin.Context) {
	var req services.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	quote, err := h.quotes.CreateQuote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func writeSession(c *gin.Context, session *checkout.Session) {
	c.Header(SessionHeader, session.ID)
	c.JSON(http.StatusOK, gin.H{
		"session":   session,
		"breakdown": pricing.Compute(session.Config),
	})
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
