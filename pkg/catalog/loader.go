package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// InventoryFileName is the one file in a catalog directory that is not a
// product definition.
const InventoryFileName = "inventory.json"

// FindCatalogFiles walks the catalog directory and returns all product
// definition files plus the inventory file path (empty when absent).
// Hidden directories and non-JSON files are skipped.
func FindCatalogFiles(root string) (products []string, inventory string, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ".json" {
			return nil
		}

		if d.Name() == InventoryFileName {
			inventory = path
			return nil
		}

		products = append(products, path)
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("walking catalog directory: %w", err)
	}

	return products, inventory, nil
}

// LoadProductFile decodes a single product definition file. Loosely typed
// fields (numeric ids, float prices) are coerced here; the configurator
// assumes well-typed data from this point on.
func LoadProductFile(path string) (*Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading product file: %w", err)
	}

	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	if p.ID == "" {
		return nil, fmt.Errorf("product in %s has no id", filepath.Base(path))
	}
	if p.BasePrice < 0 {
		return nil, fmt.Errorf("product %s has negative base price", p.ID)
	}
	for _, c := range p.Components {
		for _, o := range c.Options {
			if o.Price < 0 {
				return nil, fmt.Errorf("option %s/%s in product %s has negative price", c.ID, o.ID, p.ID)
			}
		}
	}
	for _, r := range p.PriceRules {
		if r.Price < 0 {
			return nil, fmt.Errorf("price rule %s/%s+%s/%s in product %s has negative price",
				r.ComponentID, r.OptionID, r.DependentComponentID, r.DependentOptionID, p.ID)
		}
	}

	return &p, nil
}

// LoadInventoryFile decodes the inventory file and fills in derived statuses.
func LoadInventoryFile(path string) ([]InventoryRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory file: %w", err)
	}

	var records []InventoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding inventory: %w", err)
	}

	for i := range records {
		records[i].Status = records[i].DeriveStatus()
	}

	return records, nil
}

// LoadDir loads a full catalog from a directory of product files plus an
// optional inventory.json. Product files that fail to decode abort the load;
// a catalog with a half-applied definition is worse than a stale one.
func LoadDir(root string) (*Catalog, error) {
	productFiles, inventoryFile, err := FindCatalogFiles(root)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{}
	for _, path := range productFiles {
		p, err := LoadProductFile(path)
		if err != nil {
			return nil, err
		}
		cat.Products = append(cat.Products, p)
	}

	if inventoryFile != "" {
		records, err := LoadInventoryFile(inventoryFile)
		if err != nil {
			return nil, err
		}
		cat.Inventory = records
		applyInventory(cat)
	}

	return cat, nil
}

// applyInventory flips option InStock flags from inventory records. Records
// referencing unknown options are ignored, mirroring how dependency and rule
// references to missing ids degrade to inactive.
func applyInventory(cat *Catalog) {
	status := make(map[ID]StockStatus, len(cat.Inventory))
	for _, r := range cat.Inventory {
		status[r.OptionID] = r.DeriveStatus()
	}

	for _, p := range cat.Products {
		for i := range p.Components {
			for j := range p.Components[i].Options {
				opt := &p.Components[i].Options[j]
				if s, ok := status[opt.ID]; ok {
					opt.InStock = s != StockOutOfStock
				}
			}
		}
	}
}
