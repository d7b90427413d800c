package storefront

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// CatalogManifestDocument models a YAML/JSON manifest describing the product
// catalog. Deployments edit this file and restart; the catalog never changes
// at runtime.
type CatalogManifestDocument struct {
	Version  string    `json:"version" yaml:"version"`
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Products []Product `json:"products" yaml:"products"`
	Source   string    `json:"-" yaml:"-"`
}

// LoadCatalogFile reads a manifest from disk and builds the catalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(doc.Products)
}

// ReadManifest loads a manifest file from disk without building a catalog.
func ReadManifest(path string) (*CatalogManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("storefront: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("storefront: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader. Unknown fields are
// rejected so typos surface at startup rather than as silently missing
// products.
func DecodeManifest(r io.Reader) (*CatalogManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc CatalogManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("storefront: manifest is empty")
		}
		return nil, fmt.Errorf("storefront: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *CatalogManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("storefront: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Products))
	for idx, product := range doc.Products {
		if product.ID == "" {
			return fmt.Errorf("storefront: manifest product at index %d is missing id", idx)
		}
		if product.Title == "" {
			return fmt.Errorf("storefront: manifest product %s missing title", product.ID)
		}
		if product.Price <= 0 {
			return fmt.Errorf("storefront: manifest product %s has non-positive price", product.ID)
		}
		if _, exists := seen[product.ID]; exists {
			return fmt.Errorf("storefront: manifest duplicates product id %s", product.ID)
		}
		seen[product.ID] = struct{}{}
	}
	return nil
}

func (doc *CatalogManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}
