package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	"storefront/internal/storefront"
)

func (h *handlers) browseCatalog(c *gin.Context) {
	sf := h.deps.Storefront
	q := catalog.Query{
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Sort:        catalog.ParseSortKey(c.Query("sort")),
		Locale:      c.DefaultQuery("locale", sf.Locale),
	}
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", sf.PageSize)
	if pageSize > catalog.MaxPageSize {
		pageSize = catalog.MaxPageSize
	}

	result, err := h.deps.ProductSvc.Browse(c.Request.Context(), q, page, pageSize)
	if err != nil {
		h.writeError(c, "browse catalog", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type storefrontResponse struct {
	Name                  string       `json:"name"`
	HighlightColor        string       `json:"highlightColor"`
	Locale                string       `json:"locale"`
	Locales               []string     `json:"locales"`
	Categories            []string     `json:"categories"`
	VirtualCategories     []string     `json:"virtualCategories"`
	FreeShippingThreshold domain.Money `json:"freeShippingThreshold"`
	FlatShippingRate      domain.Money `json:"flatShippingRate"`
	PageSize              int          `json:"pageSize"`
}

// storefrontSettings serves branding, navigation and pricing. Without
// configured categories the navigation lists the live category names.
func (h *handlers) storefrontSettings(c *gin.Context) {
	sf := h.deps.Storefront
	var names []string
	if len(sf.Categories) == 0 {
		cats, err := h.deps.CategorySvc.List(c.Request.Context())
		if err != nil {
			h.writeError(c, "storefront", err)
			return
		}
		for _, cat := range cats {
			names = append(names, cat.Name)
		}
	}
	pricing := sf.Pricing()
	c.JSON(http.StatusOK, storefrontResponse{
		Name:                  sf.Name,
		HighlightColor:        sf.HighlightColor,
		Locale:                sf.Locale,
		Locales:               storefront.SupportedLocales,
		Categories:            sf.NavCategories(names),
		VirtualCategories:     storefront.VirtualCategories(),
		FreeShippingThreshold: pricing.FreeShippingThreshold,
		FlatShippingRate:      pricing.FlatShippingRate,
		PageSize:              sf.PageSize,
	})
}

func (h *handlers) quoteCart(c *gin.Context) {
	var in cartsvc.QuoteInput
	if !bindJSON(c, &in) {
		return
	}
	q, err := h.deps.CartSvc.Quote(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, "cart", err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *handlers) checkout(c *gin.Context) {
	var in cartsvc.CheckoutInput
	if !bindJSON(c, &in) {
		return
	}
	o, err := h.deps.CartSvc.Checkout(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, "checkout", err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
