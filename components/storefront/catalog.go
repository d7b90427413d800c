package storefront

import "fmt"

// CategoryAll is the pass-through filter value.
const CategoryAll = "all"

// Catalog holds the immutable product list rendered on the portfolio grid.
type Catalog struct {
	products []Product
	byID     map[string]int
	byTitle  map[string]int
}

// NewCatalog builds a catalog from the given products. Duplicate identifiers
// are rejected so lookups stay unambiguous.
func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
		byTitle:  make(map[string]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		if p.ID == "" {
			return nil, fmt.Errorf("storefront: product at index %d is missing an id", i)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("storefront: duplicate product id %s", p.ID)
		}
		c.byID[p.ID] = i
		if p.Title != "" {
			c.byTitle[p.Title] = i
		}
	}
	return c, nil
}

// Products returns the full catalog in declaration order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// FilterByCategory returns the subset whose category matches, preserving the
// original relative order. CategoryAll passes the full list through.
func (c *Catalog) FilterByCategory(category string) []Product {
	if category == CategoryAll || category == "" {
		return c.Products()
	}
	var out []Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Find looks a product up by identifier.
func (c *Catalog) Find(id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// FindByTitle resolves a product from its display title. Kept for callers
// that only carry the project name on the wire.
func (c *Catalog) FindByTitle(title string) (Product, bool) {
	idx, ok := c.byTitle[title]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Len reports the number of products.
func (c *Catalog) Len() int { return len(c.products) }
