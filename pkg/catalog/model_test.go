package catalog

import (
	"encoding/json"
	"testing"
)

func TestID_UnmarshalJSON(t *testing.T) {
	// Catalog files sometimes carry ids as numbers, sometimes as strings
	var fromNumber ID
	if err := json.Unmarshal([]byte(`42`), &fromNumber); err != nil {
		t.Fatalf("Unmarshal number: %v", err)
	}
	if fromNumber != "42" {
		t.Errorf("Unmarshal number = %q, want %q", fromNumber, "42")
	}

	var fromString ID
	if err := json.Unmarshal([]byte(`"frame"`), &fromString); err != nil {
		t.Fatalf("Unmarshal string: %v", err)
	}
	if fromString != "frame" {
		t.Errorf("Unmarshal string = %q, want %q", fromString, "frame")
	}

	var fromNull ID
	if err := json.Unmarshal([]byte(`null`), &fromNull); err != nil {
		t.Fatalf("Unmarshal null: %v", err)
	}
	if fromNull != "" {
		t.Errorf("Unmarshal null = %q, want empty", fromNull)
	}
}

func TestMakeID(t *testing.T) {
	if got := MakeID(17); got != "17" {
		t.Errorf("MakeID(17) = %q, want %q", got, "17")
	}
}

func TestProduct_FindOption(t *testing.T) {
	p := &Product{
		Components: []Component{
			{ID: "frame", Options: []Option{{ID: "diamond", Price: 13000}}},
		},
	}

	opt, ok := p.FindOption("frame", "diamond")
	if !ok {
		t.Fatal("Expected to find frame/diamond")
	}
	if opt.Price != 13000 {
		t.Errorf("Price = %d, want 13000", opt.Price)
	}

	if _, ok := p.FindOption("frame", "missing"); ok {
		t.Error("Expected frame/missing to not resolve")
	}
	if _, ok := p.FindOption("missing", "diamond"); ok {
		t.Error("Expected missing/diamond to not resolve")
	}
}

func TestInventoryRecord_DeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		want      StockStatus
	}{
		{"zero quantity", 0, 0, StockOutOfStock},
		{"negative quantity", -1, 0, StockOutOfStock},
		{"at default threshold", 5, 0, StockLimited},
		{"above default threshold", 6, 0, StockInStock},
		{"custom threshold", 10, 10, StockLimited},
		{"above custom threshold", 11, 10, StockInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := InventoryRecord{Quantity: tt.quantity, LowStockThreshold: tt.threshold}
			if got := rec.DeriveStatus(); got != tt.want {
				t.Errorf("DeriveStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCatalog_Categories(t *testing.T) {
	cat := &Catalog{
		Products: []*Product{
			{ID: "1", Category: CategoryBicycle},
			{ID: "2", Category: CategorySki},
			{ID: "3", Category: CategoryBicycle},
		},
	}

	got := cat.Categories()
	if len(got) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(got))
	}
	if got[0] != CategoryBicycle || got[1] != CategorySki {
		t.Errorf("Categories() = %v, want [bicycle ski]", got)
	}
}
