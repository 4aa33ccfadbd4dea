package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordersvc "storefront/internal/service/order"
)

func (h *handlers) listOrders(c *gin.Context) {
	list, err := h.deps.OrderSvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, "list orders", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) getOrder(c *gin.Context) {
	o, err := h.deps.OrderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "order", err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *handlers) createOrder(c *gin.Context) {
	var in ordersvc.CreateInput
	if !bindJSON(c, &in) {
		return
	}
	o, err := h.deps.OrderSvc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, "order", err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *handlers) updateOrder(c *gin.Context) {
	var in ordersvc.UpdateInput
	if !bindJSON(c, &in) {
		return
	}
	o, err := h.deps.OrderSvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, "order", err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *handlers) listOrderItems(c *gin.Context) {
	items, err := h.deps.OrderSvc.ListItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "order", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *handlers) getOrderItem(c *gin.Context) {
	item, err := h.deps.OrderSvc.GetItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		h.writeError(c, "order item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) createOrderItem(c *gin.Context) {
	var in ordersvc.ItemInput
	if !bindJSON(c, &in) {
		return
	}
	item, err := h.deps.OrderSvc.CreateItem(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, "order item", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *handlers) updateOrderItem(c *gin.Context) {
	var in ordersvc.ItemUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	item, err := h.deps.OrderSvc.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), in)
	if err != nil {
		h.writeError(c, "order item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}
