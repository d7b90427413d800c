package storefront

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// productSchema is the JSON Schema every catalog product must satisfy.
// Category is constrained to the storefront's filter chips.
const productSchema = `{
  "type": "object",
  "required": ["id", "title", "price", "category"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "price": {"type": "integer", "minimum": 1},
    "category": {"type": "string", "enum": ["E-commerce", "Landing Pages", "Web Apps"]},
    "image": {"type": "string"},
    "technologies": {"type": "array", "items": {"type": "string"}},
    "features": {"type": "array", "items": {"type": "string"}}
  }
}`

// ProductValidator checks catalog products against the product schema.
type ProductValidator struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewProductValidator builds a validator backed by jsonschema v5. The schema
// compiles lazily on first use.
func NewProductValidator() *ProductValidator {
	return &ProductValidator{}
}

// Validate ensures the product satisfies the catalog schema.
func (v *ProductValidator) Validate(product Product) error {
	schema, err := v.compiled()
	if err != nil {
		return err
	}
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("storefront: marshal product %s: %w", product.ID, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("storefront: normalize product %s: %w", product.ID, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("storefront: product %s failed validation: %w", product.ID, err)
	}
	return nil
}

// ValidateManifest runs every product in the document through the schema.
func (v *ProductValidator) ValidateManifest(doc *CatalogManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("storefront: manifest document is nil")
	}
	for _, product := range doc.Products {
		if err := v.Validate(product); err != nil {
			return err
		}
	}
	return nil
}

func (v *ProductValidator) compiled() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("product.json", strings.NewReader(productSchema)); err != nil {
			v.err = fmt.Errorf("storefront: load product schema: %w", err)
			return
		}
		v.schema, v.err = compiler.Compile("product.json")
		if v.err != nil {
			v.err = fmt.Errorf("storefront: compile product schema: %w", v.err)
		}
	})
	return v.schema, v.err
}
