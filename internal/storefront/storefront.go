// Package storefront holds the shop-wide presentation and pricing settings
// that are injected into the HTTP layer.
package storefront

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/domain"
)

const (
	defaultName           = "Storefront"
	defaultHighlightColor = "#edadff"
	defaultLocale         = "en"
)

// SupportedLocales are the UI languages with translation tables.
var SupportedLocales = []string{"en", "ru", "az"}

// Config is the parsed storefront file. Amounts are decimal strings ("100.00")
// so the YAML stays human-editable.
type Config struct {
	Name                  string   `yaml:"name" json:"name"`
	HighlightColor        string   `yaml:"highlight_color" json:"highlightColor"`
	Locale                string   `yaml:"locale" json:"locale"`
	Categories            []string `yaml:"categories" json:"categories"`
	FreeShippingThreshold string   `yaml:"free_shipping_threshold" json:"-"`
	FlatShippingRate      string   `yaml:"flat_shipping_rate" json:"-"`
	PageSize              int      `yaml:"page_size" json:"pageSize"`

	pricing cart.Pricing
}

// Default returns the built-in storefront settings.
func Default() *Config {
	c := &Config{}
	if err := applyDefaults(c); err != nil {
		panic(err)
	}
	return c
}

// LoadFile reads and parses a storefront YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read storefront file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML and fills in defaults for omitted fields.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse storefront YAML: %w", err)
	}
	if err := applyDefaults(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load builds the storefront settings from the runtime config: the optional
// YAML file first, then the env overrides for pricing and page size.
func Load(cfg config.Config) (*Config, error) {
	sf := Default()
	if cfg.StorefrontFile != "" {
		var err error
		if sf, err = LoadFile(cfg.StorefrontFile); err != nil {
			return nil, err
		}
	}
	if cfg.FreeShippingThresholdCents > 0 {
		sf.pricing.FreeShippingThreshold = domain.Cents(cfg.FreeShippingThresholdCents)
		sf.FreeShippingThreshold = sf.pricing.FreeShippingThreshold.String()
	}
	if cfg.FlatShippingRateCents > 0 {
		sf.pricing.FlatShippingRate = domain.Cents(cfg.FlatShippingRateCents)
		sf.FlatShippingRate = sf.pricing.FlatShippingRate.String()
	}
	if cfg.CatalogPageSize > 0 {
		sf.PageSize = cfg.CatalogPageSize
	}
	return sf, nil
}

func applyDefaults(c *Config) error {
	if strings.TrimSpace(c.Name) == "" {
		c.Name = defaultName
	}
	if strings.TrimSpace(c.HighlightColor) == "" {
		c.HighlightColor = defaultHighlightColor
	}
	c.Locale = normalizeLocale(c.Locale)
	if c.PageSize <= 0 {
		c.PageSize = catalog.DefaultPageSize
	}
	c.Categories = domain.NormalizeSet(c.Categories)

	c.pricing = cart.DefaultPricing
	if c.FreeShippingThreshold != "" {
		m, err := domain.ParseMoney(c.FreeShippingThreshold)
		if err != nil {
			return fmt.Errorf("free_shipping_threshold: %w", err)
		}
		c.pricing.FreeShippingThreshold = m
	}
	if c.FlatShippingRate != "" {
		m, err := domain.ParseMoney(c.FlatShippingRate)
		if err != nil {
			return fmt.Errorf("flat_shipping_rate: %w", err)
		}
		c.pricing.FlatShippingRate = m
	}
	if c.pricing.FreeShippingThreshold < 0 || c.pricing.FlatShippingRate < 0 {
		return fmt.Errorf("shipping amounts must not be negative")
	}
	c.FreeShippingThreshold = c.pricing.FreeShippingThreshold.String()
	c.FlatShippingRate = c.pricing.FlatShippingRate.String()
	return nil
}

// normalizeLocale reduces a tag to its base language and falls back to the
// default when it has no translation table.
func normalizeLocale(locale string) string {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return defaultLocale
	}
	base, _ := tag.Base()
	for _, l := range SupportedLocales {
		if base.String() == l {
			return l
		}
	}
	return defaultLocale
}

// Pricing returns the shipping rules for new cart ledgers.
func (c *Config) Pricing() cart.Pricing {
	return c.pricing
}

// NewLedger starts an empty cart priced with these settings.
func (c *Config) NewLedger() *cart.Ledger {
	return cart.New(c.pricing)
}

// VirtualCategories are the computed navigation entries shown after the real ones.
func VirtualCategories() []string {
	return []string{catalog.CategoryNewArrivals, catalog.CategorySale}
}

// NavCategories returns the configured category names, or fallback when the
// file lists none, followed by the virtual categories.
func (c *Config) NavCategories(fallback []string) []string {
	names := c.Categories
	if len(names) == 0 {
		names = fallback
	}
	out := make([]string, 0, len(names)+2)
	out = append(out, names...)
	return append(out, VirtualCategories()...)
}
