// Package importer loads products from CSV exports into the catalog.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"storefront/internal/domain"
	productsvc "storefront/internal/service/product"
)

// Columns lists the accepted CSV header. Only name, price, category and
// subcategory are mandatory.
var Columns = []string{
	"name", "description", "price", "original_price", "category", "subcategory",
	"images", "sizes", "colors", "stock", "is_new", "on_sale", "rating", "review_count",
}

var requiredColumns = []string{"name", "price", "category", "subcategory"}

type CategoryStore interface {
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type SubcategoryStore interface {
	GetByName(ctx context.Context, categoryID, name string) (*domain.Subcategory, error)
	Create(ctx context.Context, s domain.Subcategory) (*domain.Subcategory, error)
}

type ProductFinder interface {
	FindByName(ctx context.Context, subcategoryID, name string) (*domain.Product, error)
}

// ProductCreator validates and stores a product; the product service satisfies it.
type ProductCreator interface {
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
}

type Deps struct {
	Categories    CategoryStore
	Subcategories SubcategoryStore
	Finder        ProductFinder
	Products      ProductCreator
}

// Result summarises an import run.
type Result struct {
	Imported             int
	Skipped              int
	CreatedCategories    int
	CreatedSubcategories int
}

// CSVImporter reads product rows and creates missing categories and
// subcategories on the way.
type CSVImporter struct {
	reader *csv.Reader
	deps   Deps
	logger *log.Logger
	dryRun bool

	categories    map[string]string
	subcategories map[string]string
}

func NewCSVImporter(r io.Reader, deps Deps, logger *log.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &CSVImporter{
		reader:        csvr,
		deps:          deps,
		logger:        logger,
		categories:    map[string]string{},
		subcategories: map[string]string{},
	}
}

// DryRun makes Run parse and validate rows without writing anything.
func (i *CSVImporter) DryRun(enabled bool) *CSVImporter {
	i.dryRun = enabled
	return i
}

type csvRow struct {
	line        int
	category    string
	subcategory string
	input       productsvc.CreateInput
}

// Run imports every row. It stops at the first failing row and reports its line.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result
	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return res, fmt.Errorf("missing required column %q", col)
		}
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)
		if blank(record) {
			continue
		}

		row, err := parseRow(record, index)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		row.line = line
		if i.dryRun {
			res.Imported++
			continue
		}
		imported, err := i.save(ctx, row, &res)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		if imported {
			res.Imported++
		} else {
			res.Skipped++
		}
	}
	return res, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow, res *Result) (bool, error) {
	categoryID, err := i.categoryID(ctx, row.category, res)
	if err != nil {
		return false, fmt.Errorf("category %q: %w", row.category, err)
	}
	subcategoryID, err := i.subcategoryID(ctx, categoryID, row.subcategory, res)
	if err != nil {
		return false, fmt.Errorf("subcategory %q: %w", row.subcategory, err)
	}

	_, err = i.deps.Finder.FindByName(ctx, subcategoryID, row.input.Name)
	if err == nil {
		i.logger.Printf("importer: skip existing product %q (line %d)", row.input.Name, row.line)
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	in := row.input
	in.CategoryID = categoryID
	in.SubcategoryID = subcategoryID
	if _, err := i.deps.Products.Create(ctx, in); err != nil {
		return false, fmt.Errorf("create product %q: %w", in.Name, err)
	}
	return true, nil
}

func (i *CSVImporter) categoryID(ctx context.Context, name string, res *Result) (string, error) {
	if id, ok := i.categories[name]; ok {
		return id, nil
	}
	c, err := i.deps.Categories.GetByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		c, err = i.deps.Categories.Create(ctx, domain.Category{Name: name})
		if err == nil {
			res.CreatedCategories++
			i.logger.Printf("importer: created category %q", name)
		}
	}
	if err != nil {
		return "", err
	}
	i.categories[name] = c.ID
	return c.ID, nil
}

func (i *CSVImporter) subcategoryID(ctx context.Context, categoryID, name string, res *Result) (string, error) {
	key := categoryID + "/" + name
	if id, ok := i.subcategories[key]; ok {
		return id, nil
	}
	s, err := i.deps.Subcategories.GetByName(ctx, categoryID, name)
	if errors.Is(err, domain.ErrNotFound) {
		s, err = i.deps.Subcategories.Create(ctx, domain.Subcategory{Name: name, CategoryID: categoryID})
		if err == nil {
			res.CreatedSubcategories++
			i.logger.Printf("importer: created subcategory %q", name)
		}
	}
	if err != nil {
		return "", err
	}
	i.subcategories[key] = s.ID
	return s.ID, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*csvRow, error) {
	row := &csvRow{
		category:    pick(record, index, "category"),
		subcategory: pick(record, index, "subcategory"),
		input: productsvc.CreateInput{
			Name:        pick(record, index, "name"),
			Description: pick(record, index, "description"),
			Images:      domain.NormalizeImages(splitList(pick(record, index, "images"))),
			Sizes:       splitList(pick(record, index, "sizes")),
			Colors:      splitList(pick(record, index, "colors")),
		},
	}
	if row.input.Name == "" {
		return nil, errors.New("name is required")
	}
	if row.category == "" || row.subcategory == "" {
		return nil, errors.New("category and subcategory are required")
	}
	if row.input.Description == "" {
		row.input.Description = row.input.Name
	}

	price, err := domain.ParseMoney(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	row.input.Price = &price
	if v := pick(record, index, "original_price"); v != "" {
		orig, err := domain.ParseMoney(v)
		if err != nil {
			return nil, fmt.Errorf("original_price: %w", err)
		}
		row.input.OriginalPrice = &orig
	}

	if row.input.Stock, err = intField(record, index, "stock"); err != nil {
		return nil, err
	}
	if row.input.ReviewCount, err = intField(record, index, "review_count"); err != nil {
		return nil, err
	}
	if row.input.IsNew, err = boolField(record, index, "is_new"); err != nil {
		return nil, err
	}
	if row.input.OnSale, err = boolField(record, index, "on_sale"); err != nil {
		return nil, err
	}
	if v := pick(record, index, "rating"); v != "" {
		if row.input.Rating, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("rating: %w", err)
		}
	}
	return row, nil
}

// splitList accepts "a|b" or "a;b" cells.
func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	parts := strings.FieldsFunc(cell, func(r rune) bool { return r == '|' || r == ';' })
	return domain.NormalizeSet(parts)
}

func intField(record []string, index map[string]int, key string) (int, error) {
	v := pick(record, index, key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func boolField(record []string, index map[string]int, key string) (bool, error) {
	v := pick(record, index, key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
