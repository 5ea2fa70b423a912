package foodrec

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed catalog.json
var defaultCatalog []byte

// Nutrients are per-100-unit values (per 100 g or 100 ml).
type Nutrients struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// PredefinedFoodItem is a read-only catalog entry.
type PredefinedFoodItem struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Per100      Nutrients `json:"per_100"`
	ServingSize float64   `json:"serving_size"`
	ServingUnit string    `json:"serving_unit"`
	MaxQuantity float64   `json:"max_quantity"`
}

// ServingCalories returns the calories of one standard serving.
func (f PredefinedFoodItem) ServingCalories() float64 {
	return f.Per100.Calories * f.ServingSize / 100
}

// Catalog is the loaded food catalog. It is loaded once by its owner and
// passed to whoever needs it; items are never modified after loading.
type Catalog struct {
	items []PredefinedFoodItem
}

// NewCatalog wraps an already-materialized item list.
func NewCatalog(items []PredefinedFoodItem) *Catalog {
	return &Catalog{items: append([]PredefinedFoodItem(nil), items...)}
}

// LoadCatalog decodes a JSON array of items.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var items []PredefinedFoodItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &Catalog{items: items}, nil
}

// LoadCatalogFile loads the catalog at path, or the embedded default catalog
// when path is empty.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		var items []PredefinedFoodItem
		if err := json.Unmarshal(defaultCatalog, &items); err != nil {
			return nil, fmt.Errorf("decode embedded catalog: %w", err)
		}
		return &Catalog{items: items}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Items returns a copy of the catalog in its original order.
func (c *Catalog) Items() []PredefinedFoodItem {
	return append([]PredefinedFoodItem(nil), c.items...)
}

// Len is the number of catalog items.
func (c *Catalog) Len() int { return len(c.items) }
