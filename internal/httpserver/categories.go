package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	categorysvc "storefront/internal/service/category"
	subcategorysvc "storefront/internal/service/subcategory"
)

func (h *handlers) listCategories(c *gin.Context) {
	list, err := h.deps.CategorySvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, "list categories", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) getCategory(c *gin.Context) {
	cat, err := h.deps.CategorySvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "category", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *handlers) createCategory(c *gin.Context) {
	var in categorysvc.CreateInput
	if !bindJSON(c, &in) {
		return
	}
	cat, err := h.deps.CategorySvc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, "category", err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *handlers) updateCategory(c *gin.Context) {
	var in categorysvc.UpdateInput
	if !bindJSON(c, &in) {
		return
	}
	cat, err := h.deps.CategorySvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, "category", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *handlers) deleteCategory(c *gin.Context) {
	if err := h.deps.CategorySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "category", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listSubcategories(c *gin.Context) {
	list, err := h.deps.SubcategorySvc.List(c.Request.Context(), strings.TrimSpace(c.Query("categoryId")))
	if err != nil {
		h.writeError(c, "list subcategories", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) getSubcategory(c *gin.Context) {
	sub, err := h.deps.SubcategorySvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "subcategory", err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *handlers) createSubcategory(c *gin.Context) {
	var in subcategorysvc.CreateInput
	if !bindJSON(c, &in) {
		return
	}
	sub, err := h.deps.SubcategorySvc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, "subcategory", err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *handlers) updateSubcategory(c *gin.Context) {
	var in subcategorysvc.UpdateInput
	if !bindJSON(c, &in) {
		return
	}
	sub, err := h.deps.SubcategorySvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, "subcategory", err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *handlers) deleteSubcategory(c *gin.Context) {
	if err := h.deps.SubcategorySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "subcategory", err)
		return
	}
	c.Status(http.StatusNoContent)
}
