// Package catalog selects the page of products shown in the storefront grid.
//
// Select is a pure function: it never mutates its input and can be called from
// any goroutine.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"storefront/internal/domain"
)

// DefaultPageSize matches the storefront grid (two rows of four).
const DefaultPageSize = 8

// MaxPageSize caps the page size accepted from requests.
const MaxPageSize = 100

// Virtual categories are computed from product flags, not stored category names.
const (
	CategoryNewArrivals = "New Arrivals"
	CategorySale        = "Sale"
)

// allToken is the legacy "no filter" value sent by the category dropdown.
const allToken = "all"

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
)

// ParseSortKey maps unknown or empty values to SortNewest.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceLow, SortPriceHigh, SortName:
		return k
	default:
		return SortNewest
	}
}

// Entry is a product joined with the display names of its category and subcategory.
type Entry struct {
	Product     domain.Product `json:"product"`
	Category    string         `json:"category"`
	Subcategory string         `json:"subcategory"`
}

type Query struct {
	Search      string
	Category    string
	Subcategory string
	Sort        SortKey
	// Locale drives name collation; empty means English.
	Locale string
}

type Page struct {
	Items      []Entry `json:"items"`
	TotalCount int     `json:"totalCount"`
	TotalPages int     `json:"totalPages"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
}

// Select filters, sorts and paginates entries. page is 1-based; pages outside
// [1, TotalPages] produce an empty Items slice rather than an error.
func Select(entries []Entry, q Query, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := Filter(entries, q)
	Sort(filtered, q.Sort, q.Locale)

	total := len(filtered)
	out := Page{
		Items:      []Entry{},
		TotalCount: total,
		TotalPages: total / pageSize,
		Page:       page,
		PageSize:   pageSize,
	}
	if total%pageSize != 0 {
		out.TotalPages++
	}
	if page < 1 || page > out.TotalPages {
		return out
	}
	start := (page - 1) * pageSize
	end := total
	if total-start > pageSize {
		end = start + pageSize
	}
	out.Items = filtered[start:end]
	return out
}

// Filter returns a new slice with the entries matching every axis of q.
func Filter(entries []Entry, q Query) []Entry {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if matchesSearch(e, search) && matchesCategory(e, q.Category) && matchesSubcategory(e, q.Subcategory) {
			out = append(out, e)
		}
	}
	return out
}

func matchesSearch(e Entry, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Product.Name), needle) ||
		strings.Contains(strings.ToLower(e.Category), needle) ||
		strings.Contains(strings.ToLower(e.Subcategory), needle)
}

func matchesCategory(e Entry, category string) bool {
	switch category {
	case "", allToken:
		return true
	case CategoryNewArrivals:
		return e.Product.IsNew
	case CategorySale:
		return e.Product.OnSale
	default:
		return e.Category == category
	}
}

func matchesSubcategory(e Entry, subcategory string) bool {
	if subcategory == "" || subcategory == allToken {
		return true
	}
	return e.Subcategory == subcategory
}

// Sort orders entries in place. SortNewest keeps the incoming order, which is
// already newest-first when entries come from the product repository.
func Sort(entries []Entry, key SortKey, locale string) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Product.Price < entries[j].Product.Price
		})
	case SortPriceHigh:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Product.Price > entries[j].Product.Price
		})
	case SortName:
		col := collate.New(parseLocale(locale), collate.IgnoreCase)
		sort.SliceStable(entries, func(i, j int) bool {
			return col.CompareString(entries[i].Product.Name, entries[j].Product.Name) < 0
		})
	}
}

func parseLocale(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}

// Join builds entries from products and the category/subcategory lists they reference.
// Unknown references yield empty names rather than dropping the product.
func Join(products []domain.Product, categories []domain.Category, subcategories []domain.Subcategory) []Entry {
	catNames := make(map[string]string, len(categories))
	for _, c := range categories {
		catNames[c.ID] = c.Name
	}
	subNames := make(map[string]string, len(subcategories))
	for _, s := range subcategories {
		subNames[s.ID] = s.Name
	}
	out := make([]Entry, 0, len(products))
	for _, p := range products {
		out = append(out, Entry{
			Product:     p,
			Category:    catNames[p.CategoryID],
			Subcategory: subNames[p.SubcategoryID],
		})
	}
	return out
}
