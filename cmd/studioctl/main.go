package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-studio/components/storefront"
)

type cli struct {
	Add      addCmd      `cmd:"" help:"Add a product to the catalog manifest."`
	Validate validateCmd `cmd:"" help:"Validate a catalog manifest against the product schema."`
}

type addCmd struct {
	ManifestPath string   `required:"" type:"path" help:"Path to the catalog manifest YAML file to update."`
	Title        string   `required:"" help:"Product title shown on the storefront."`
	Price        int      `required:"" help:"Full project price in rupees."`
	Category     string   `required:"" enum:"E-commerce,Landing Pages,Web Apps" help:"Storefront category."`
	Description  string   `help:"One-line description for the product card."`
	ID           string   `help:"Product id (defaults to a kebab-case slug of the title)."`
	Image        string   `help:"Image path served under /static."`
	Tech         []string `help:"Technology labels (use multiple --tech flags)."`
	Feature      []string `help:"Feature bullet points."`
	Overwrite    bool     `help:"Replace an existing product with the same id."`
}

type validateCmd struct {
	ManifestPath string `arg:"" type:"path" help:"Path to the catalog manifest YAML file."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Catalog maintenance utility for go-studio manifests."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *addCmd) Run(_ context.Context) error {
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("studioctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}

	id := cmd.ID
	if id == "" {
		id = strcase.ToKebab(cmd.Title)
	}

	product := storefront.Product{
		ID:           id,
		Title:        cmd.Title,
		Description:  cmd.Description,
		Price:        cmd.Price,
		Category:     cmd.Category,
		Image:        cmd.Image,
		Technologies: cmd.Tech,
		Features:     cmd.Feature,
	}
	if err := storefront.NewProductValidator().Validate(product); err != nil {
		return err
	}

	replaced := false
	for idx := range doc.Products {
		if doc.Products[idx].ID == id {
			if !cmd.Overwrite {
				return fmt.Errorf("studioctl: manifest already defines product %s (use --overwrite to replace)", id)
			}
			doc.Products[idx] = product
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Products = append(doc.Products, product)
	}

	sort.Slice(doc.Products, func(i, j int) bool {
		return doc.Products[i].ID < doc.Products[j].ID
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s (%s) to %s\n", id, storefront.FormatINR(cmd.Price), manifestPath)
	return nil
}

func (cmd *validateCmd) Run(_ context.Context) error {
	doc, err := storefront.ReadManifest(cmd.ManifestPath)
	if err != nil {
		return err
	}
	if err := storefront.NewProductValidator().ValidateManifest(doc); err != nil {
		return err
	}
	if _, err := storefront.NewCatalog(doc.Products); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ %s: %d products OK\n", cmd.ManifestPath, len(doc.Products))
	return nil
}

func loadOrInitManifest(path string) (*storefront.CatalogManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &storefront.CatalogManifestDocument{
				Version:  storefront.ManifestVersion,
				Products: []storefront.Product{},
				Source:   path,
			}, nil
		}
		return nil, fmt.Errorf("studioctl: stat manifest: %w", err)
	}
	return storefront.ReadManifest(path)
}

func writeManifest(path string, doc *storefront.CatalogManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("studioctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("studioctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("studioctl: write manifest: %w", err)
	}
	return nil
}
