package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	productsvc "storefront/internal/service/product"
)

func (h *handlers) listProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		CategoryID:    strings.TrimSpace(c.Query("categoryId")),
		SubcategoryID: strings.TrimSpace(c.Query("subcategoryId")),
	}
	list, err := h.deps.ProductSvc.List(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, "list products", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.ProductSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "product", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) createProduct(c *gin.Context) {
	var in productsvc.CreateInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.deps.ProductSvc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, "product", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) updateProduct(c *gin.Context) {
	var in productsvc.UpdateInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.deps.ProductSvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, "product", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	if err := h.deps.ProductSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "product", err)
		return
	}
	c.Status(http.StatusNoContent)
}
